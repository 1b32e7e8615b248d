// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/docs.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/profiles": {
            "get": {
                "description": "Get every risk profile",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "profiles"
                ],
                "summary": "List risk profiles",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/handler.ProfileResponse"
                            }
                        }
                    }
                }
            },
            "post": {
                "description": "Create a profile; decimal fields are sent as strings",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "profiles"
                ],
                "summary": "Create a risk profile",
                "parameters": [
                    {
                        "description": "Profile creation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.CreateProfileRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.ProfileResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/active": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "profiles"
                ],
                "summary": "Get the active profile",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ProfileResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "profiles"
                ],
                "summary": "Get a risk profile",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ProfileResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            },
            "put": {
                "description": "Partial update; omitted fields keep their value",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "profiles"
                ],
                "summary": "Update a risk profile",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Profile update request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateProfileRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ProfileResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/{id}/activate": {
            "post": {
                "description": "Dashboards watching the previously active profile are disconnected",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "profiles"
                ],
                "summary": "Make a profile the active one",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ProfileResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/{id}/sync-config": {
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "profiles"
                ],
                "summary": "Update sync settings",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Sync settings update",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.UpdateSyncConfigRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.ProfileResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/{id}/dashboard": {
            "get": {
                "description": "Derived metrics, breakdowns and the discipline alert of a profile",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "dashboard"
                ],
                "summary": "Get dashboard statistics",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.DashboardResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/{id}/journal": {
            "get": {
                "description": "Entries of a profile in ascending date order",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "journal"
                ],
                "summary": "List journal entries",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/handler.JournalEntryResponse"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            },
            "post": {
                "description": "Append a day result and report whether it breached the daily risk limit",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "journal"
                ],
                "summary": "Log a journal entry",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Journal entry",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.LogEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.LogEntryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/{id}/journal/{entryId}": {
            "delete": {
                "description": "Reverses the entry's P&L; an unknown entry is ignored",
                "tags": [
                    "journal"
                ],
                "summary": "Delete a journal entry",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Entry ID",
                        "name": "entryId",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/{id}/sync": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sync"
                ],
                "summary": "Get sync status",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.SyncStatus"
                        }
                    }
                }
            }
        },
        "/profiles/{id}/sync/pull": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sync"
                ],
                "summary": "Pull the remote snapshot",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.PullResult"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/{id}/sync/push": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sync"
                ],
                "summary": "Push the profile and journal to the remote endpoint",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.SyncStatus"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "429": {
                        "description": "Too Many Requests",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        },
        "/profiles/{id}/sync/visibility": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sync"
                ],
                "summary": "Pull after the dashboard regains visibility",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Profile ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/service.PullResult"
                        }
                    },
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/handler.ProblemDetails"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.AlertMessage": {
            "type": "object",
            "properties": {
                "en": {
                    "type": "string"
                },
                "ru": {
                    "type": "string"
                }
            }
        },
        "handler.AlertResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "message": {
                    "$ref": "#/definitions/domain.AlertMessage"
                }
            }
        },
        "handler.AllocationSliceResponse": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                }
            }
        },
        "handler.BreakdownEntryResponse": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "value": {
                    "type": "string"
                }
            }
        },
        "handler.TickerStatResponse": {
            "type": "object",
            "properties": {
                "ticker": {
                    "type": "string"
                },
                "pnl": {
                    "type": "string"
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "handler.DashboardResponse": {
            "type": "object",
            "properties": {
                "profileId": {
                    "type": "string"
                },
                "currentCapital": {
                    "type": "string"
                },
                "annualGoalAmount": {
                    "type": "string"
                },
                "currentProgressAmount": {
                    "type": "string"
                },
                "remainingGoal": {
                    "type": "string"
                },
                "daysLeft": {
                    "type": "string"
                },
                "dailyRiskLimit": {
                    "type": "string"
                },
                "requiredDailyAvg": {
                    "type": "string"
                },
                "missedDaysPercent": {
                    "type": "string"
                },
                "daysTraded": {
                    "type": "string"
                },
                "daysSkipped": {
                    "type": "integer"
                },
                "disciplineAlert": {
                    "type": "boolean"
                },
                "categoryBreakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.BreakdownEntryResponse"
                    }
                },
                "strategyBreakdown": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.BreakdownEntryResponse"
                    }
                },
                "tickerPerformance": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.TickerStatResponse"
                    }
                },
                "allocation": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.AllocationSliceResponse"
                    }
                }
            }
        },
        "handler.JournalEntryResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "profileId": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "pnlAmount": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "subCategory": {
                    "type": "string"
                },
                "strategy": {
                    "type": "string"
                },
                "ticker": {
                    "type": "string"
                },
                "startOfDayBalance": {
                    "type": "string"
                },
                "riskLimitSnapshot": {
                    "type": "string"
                }
            }
        },
        "handler.LogEntryRequest": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "pnlAmount": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "subCategory": {
                    "type": "string"
                },
                "strategy": {
                    "type": "string"
                },
                "ticker": {
                    "type": "string"
                }
            }
        },
        "handler.LogEntryResponse": {
            "type": "object",
            "properties": {
                "entry": {
                    "$ref": "#/definitions/handler.JournalEntryResponse"
                },
                "breach": {
                    "type": "boolean"
                },
                "alert": {
                    "$ref": "#/definitions/handler.AlertResponse"
                },
                "dashboard": {
                    "$ref": "#/definitions/handler.DashboardResponse"
                }
            }
        },
        "handler.ValidationError": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "handler.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                },
                "detail": {
                    "type": "string"
                },
                "instance": {
                    "type": "string"
                },
                "errors": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/handler.ValidationError"
                    }
                }
            }
        },
        "handler.SyncConfigResponse": {
            "type": "object",
            "properties": {
                "sheetId": {
                    "type": "string"
                },
                "scriptUrl": {
                    "type": "string"
                },
                "isEnabled": {
                    "type": "boolean"
                }
            }
        },
        "handler.SheetStatsResponse": {
            "type": "object",
            "properties": {
                "targetAmountDollar": {
                    "type": "string"
                },
                "remainingGoal": {
                    "type": "string"
                },
                "dailyTarget": {
                    "type": "string"
                },
                "riskLimit": {
                    "type": "string"
                },
                "daysTraded": {
                    "type": "string"
                },
                "daysRemaining": {
                    "type": "string"
                },
                "totalDays": {
                    "type": "string"
                }
            }
        },
        "handler.ProfileResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "initialCapital": {
                    "type": "string"
                },
                "currentBalance": {
                    "type": "string"
                },
                "riskPerTradePct": {
                    "type": "string"
                },
                "targetAnnualReturnPct": {
                    "type": "string"
                },
                "totalEffectiveDays": {
                    "type": "string"
                },
                "maxMissedDaysPct": {
                    "type": "string"
                },
                "isActive": {
                    "type": "boolean"
                },
                "sync": {
                    "$ref": "#/definitions/handler.SyncConfigResponse"
                },
                "sheetStats": {
                    "$ref": "#/definitions/handler.SheetStatsResponse"
                }
            }
        },
        "handler.CreateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "initialCapital": {
                    "type": "string"
                },
                "currentBalance": {
                    "type": "string"
                },
                "riskPerTradePct": {
                    "type": "string"
                },
                "targetAnnualReturnPct": {
                    "type": "string"
                },
                "totalEffectiveDays": {
                    "type": "string"
                },
                "maxMissedDaysPct": {
                    "type": "string"
                },
                "activate": {
                    "type": "boolean"
                }
            }
        },
        "handler.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "initialCapital": {
                    "type": "string"
                },
                "currentBalance": {
                    "type": "string"
                },
                "riskPerTradePct": {
                    "type": "string"
                },
                "targetAnnualReturnPct": {
                    "type": "string"
                },
                "totalEffectiveDays": {
                    "type": "string"
                },
                "maxMissedDaysPct": {
                    "type": "string"
                }
            }
        },
        "handler.UpdateSyncConfigRequest": {
            "type": "object",
            "properties": {
                "sheetId": {
                    "type": "string"
                },
                "scriptUrl": {
                    "type": "string"
                },
                "isEnabled": {
                    "type": "boolean"
                }
            }
        },
        "service.PullResult": {
            "type": "object",
            "properties": {
                "journalReplaced": {
                    "type": "boolean"
                },
                "entries": {
                    "type": "integer"
                },
                "profileUpdated": {
                    "type": "boolean"
                }
            }
        },
        "service.SyncStatus": {
            "type": "object",
            "properties": {
                "profileId": {
                    "type": "string"
                },
                "isSyncing": {
                    "type": "boolean"
                },
                "lastPullAt": {
                    "type": "string"
                },
                "lastPushAt": {
                    "type": "string"
                },
                "lastError": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Risk Manager API",
	Description:      "Trading risk dashboard: profiles, journal, derived metrics and spreadsheet sync.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MikhailONe12/App-Risk-Manager/docs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/swaggo/swag"
)

// OpenAPISpec is the OpenAPI 3.0 rendering of the registered Swagger 2.0 document
type OpenAPISpec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []OpenAPIServer        `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// OpenAPIServer is one entry of the servers list
type OpenAPIServer struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// convertRefs rewrites #/definitions/ references to #/components/schemas/ and
// moves parameter type fields under a schema object
func convertRefs(node interface{}) interface{} {
	switch v := node.(type) {
	case map[string]interface{}:
		if _, hasIn := v["in"]; hasIn {
			if _, hasName := v["name"]; hasName {
				return convertParameter(v)
			}
		}
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[key] = convertRefs(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = convertRefs(item)
		}
		return out
	default:
		return node
	}
}

func convertParameter(param map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			out[field] = val
		}
	}

	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = convertRefs(val)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

// convertOperations lifts Swagger 2.0 body parameters into an OpenAPI 3.0 requestBody
func convertOperations(paths map[string]interface{}) {
	for _, item := range paths {
		operations, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		for _, raw := range operations {
			op, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			params, _ := op["parameters"].([]interface{})
			kept := make([]interface{}, 0, len(params))
			for _, p := range params {
				param, ok := p.(map[string]interface{})
				if ok && param["in"] == "body" {
					op["requestBody"] = map[string]interface{}{
						"description": param["description"],
						"required":    param["required"],
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{"schema": param["schema"]},
						},
					}
					continue
				}
				kept = append(kept, p)
			}
			if len(kept) > 0 {
				op["parameters"] = kept
			} else {
				delete(op, "parameters")
			}
			delete(op, "consumes")
			delete(op, "produces")
		}
	}
}

// ServeOpenAPISpec handles GET /api/v1/openapi.json with the document converted to
// OpenAPI 3.0 and the requesting host as its server
func ServeOpenAPISpec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read swagger doc")
		return NewInternalError(c, "Failed to read API document")
	}

	var swagger2 map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		log.Error().Err(err).Msg("Failed to parse swagger doc")
		return NewInternalError(c, "Failed to parse API document")
	}

	info, _ := swagger2["info"].(map[string]interface{})
	paths, _ := swagger2["paths"].(map[string]interface{})
	convertOperations(paths)
	converted, _ := convertRefs(paths).(map[string]interface{})

	components := make(map[string]interface{})
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = convertRefs(definitions)
	}

	return c.JSON(http.StatusOK, OpenAPISpec{
		OpenAPI: "3.0.3",
		Info:    info,
		Servers: []OpenAPIServer{{
			URL:         c.Scheme() + "://" + c.Request().Host + docs.SwaggerInfo.BasePath,
			Description: "This server",
		}},
		Paths:      converted,
		Components: components,
	})
}

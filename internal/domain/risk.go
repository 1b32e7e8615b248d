package domain

import "github.com/shopspring/decimal"

// IsRiskBreach reports whether a day's outcome is a loss larger than the limit.
// A loss exactly equal to the limit does not breach.
func IsRiskBreach(pnl, limit decimal.Decimal) bool {
	return pnl.IsNegative() && pnl.Abs().GreaterThan(limit)
}

// AlertType classifies user-facing alerts
type AlertType string

const (
	AlertTypeRisk       AlertType = "RISK"
	AlertTypeDiscipline AlertType = "DISCIPLINE"
	AlertTypeInfo       AlertType = "INFO"
)

// AlertMessage carries the alert text in every supported language
type AlertMessage struct {
	En string `json:"en"`
	Ru string `json:"ru"`
}

// Alert is raised after logging an entry; it does not affect stored data
type Alert struct {
	ID        string       `json:"id"`
	ProfileID string       `json:"profileId"`
	Type      AlertType    `json:"type"`
	Message   AlertMessage `json:"message"`
}

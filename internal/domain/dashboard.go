package domain

import "github.com/shopspring/decimal"

// BreakdownEntry is one accumulated P&L bucket. Breakdowns keep first-seen key order.
type BreakdownEntry struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
}

// TickerStat accumulates P&L and trade count for one ticker
type TickerStat struct {
	Ticker string          `json:"ticker"`
	Pnl    decimal.Decimal `json:"pnl"`
	Count  int             `json:"count"`
}

// AllocationSlice is the absolute P&L volume of one top-level category
type AllocationSlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Allocation group names
const (
	AllocationStocks  = "Stocks"
	AllocationOptions = "Options"
)

// DashboardStats is a projection of a profile and its journal. It is never persisted.
type DashboardStats struct {
	ProfileID             string            `json:"profileId"`
	CurrentCapital        decimal.Decimal   `json:"currentCapital"`
	AnnualGoalAmount      decimal.Decimal   `json:"annualGoalAmount"`
	CurrentProgressAmount decimal.Decimal   `json:"currentProgressAmount"`
	RemainingGoal         decimal.Decimal   `json:"remainingGoal"`
	DaysLeft              decimal.Decimal   `json:"daysLeft"`
	DailyRiskLimit        decimal.Decimal   `json:"dailyRiskLimit"`
	RequiredDailyAvg      decimal.Decimal   `json:"requiredDailyAvg"`
	MissedDaysPercent     decimal.Decimal   `json:"missedDaysPercent"`
	DaysTraded            decimal.Decimal   `json:"daysTraded"`
	DaysSkipped           int               `json:"daysSkipped"`
	CategoryBreakdown     []BreakdownEntry  `json:"categoryBreakdown"`
	StrategyBreakdown     []BreakdownEntry  `json:"strategyBreakdown"`
	TickerPerformance     []TickerStat      `json:"tickerPerformance"`
	Allocation            []AllocationSlice `json:"allocation"`
}

// ExceedsMissedDays reports whether the share of skipped days is above the profile's allowance
func (s *DashboardStats) ExceedsMissedDays(maxMissedDaysPct decimal.Decimal) bool {
	return s.MissedDaysPercent.GreaterThan(maxMissedDaysPct)
}

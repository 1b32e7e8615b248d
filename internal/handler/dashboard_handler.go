package handler

import (
	"net/http"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	metricsService *service.MetricsService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(metricsService *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{
		metricsService: metricsService,
	}
}

// BreakdownEntryResponse is one P&L bucket of a breakdown
type BreakdownEntryResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TickerStatResponse is the accumulated result of one ticker
type TickerStatResponse struct {
	Ticker string `json:"ticker"`
	Pnl    string `json:"pnl"`
	Count  int    `json:"count"`
}

// AllocationSliceResponse is the absolute P&L volume of one category group
type AllocationSliceResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DashboardResponse represents the dashboard API response
type DashboardResponse struct {
	ProfileID             string                    `json:"profileId"`
	CurrentCapital        string                    `json:"currentCapital"`
	AnnualGoalAmount      string                    `json:"annualGoalAmount"`
	CurrentProgressAmount string                    `json:"currentProgressAmount"`
	RemainingGoal         string                    `json:"remainingGoal"`
	DaysLeft              string                    `json:"daysLeft"`
	DailyRiskLimit        string                    `json:"dailyRiskLimit"`
	RequiredDailyAvg      string                    `json:"requiredDailyAvg"`
	MissedDaysPercent     string                    `json:"missedDaysPercent"`
	DaysTraded            string                    `json:"daysTraded"`
	DaysSkipped           int                       `json:"daysSkipped"`
	DisciplineAlert       bool                      `json:"disciplineAlert"`
	CategoryBreakdown     []BreakdownEntryResponse  `json:"categoryBreakdown"`
	StrategyBreakdown     []BreakdownEntryResponse  `json:"strategyBreakdown"`
	TickerPerformance     []TickerStatResponse      `json:"tickerPerformance"`
	Allocation            []AllocationSliceResponse `json:"allocation"`
}

func toBreakdownResponse(entries []domain.BreakdownEntry) []BreakdownEntryResponse {
	out := make([]BreakdownEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, BreakdownEntryResponse{Key: e.Key, Value: e.Value.StringFixed(2)})
	}
	return out
}

func toDashboardResponse(s domain.DashboardStats, disciplineAlert bool) DashboardResponse {
	tickers := make([]TickerStatResponse, 0, len(s.TickerPerformance))
	for _, t := range s.TickerPerformance {
		tickers = append(tickers, TickerStatResponse{Ticker: t.Ticker, Pnl: t.Pnl.StringFixed(2), Count: t.Count})
	}
	allocation := make([]AllocationSliceResponse, 0, len(s.Allocation))
	for _, a := range s.Allocation {
		allocation = append(allocation, AllocationSliceResponse{Name: a.Name, Value: a.Value.StringFixed(2)})
	}

	return DashboardResponse{
		ProfileID:             s.ProfileID,
		CurrentCapital:        s.CurrentCapital.StringFixed(2),
		AnnualGoalAmount:      s.AnnualGoalAmount.StringFixed(2),
		CurrentProgressAmount: s.CurrentProgressAmount.StringFixed(2),
		RemainingGoal:         s.RemainingGoal.StringFixed(2),
		DaysLeft:              s.DaysLeft.StringFixed(1),
		DailyRiskLimit:        s.DailyRiskLimit.StringFixed(2),
		RequiredDailyAvg:      s.RequiredDailyAvg.StringFixed(2),
		MissedDaysPercent:     s.MissedDaysPercent.StringFixed(2),
		DaysTraded:            s.DaysTraded.String(),
		DaysSkipped:           s.DaysSkipped,
		DisciplineAlert:       disciplineAlert,
		CategoryBreakdown:     toBreakdownResponse(s.CategoryBreakdown),
		StrategyBreakdown:     toBreakdownResponse(s.StrategyBreakdown),
		TickerPerformance:     tickers,
		Allocation:            allocation,
	}
}

// GetDashboard godoc
// @Summary Get dashboard statistics
// @Description Derived metrics, breakdowns and the discipline alert of a profile
// @Tags dashboard
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} DashboardResponse
// @Failure 404 {object} ProblemDetails
// @Router /profiles/{id}/dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	view, err := h.metricsService.GetDashboard(c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get dashboard")
	}
	return c.JSON(http.StatusOK, toDashboardResponse(view.Stats, view.DisciplineAlert))
}

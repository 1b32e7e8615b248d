package handler

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard_FreshProfile(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/profiles/p1/dashboard", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[DashboardResponse](t, rec)
	assert.Equal(t, "p1", resp.ProfileID)
	assert.Equal(t, "10000.00", resp.CurrentCapital)
	assert.Equal(t, "1000.00", resp.AnnualGoalAmount)
	assert.Equal(t, "0.00", resp.CurrentProgressAmount)
	assert.Equal(t, "1000.00", resp.RemainingGoal)
	assert.Equal(t, "100.0", resp.DaysLeft)
	assert.Equal(t, "100.00", resp.DailyRiskLimit)
	assert.Equal(t, "10.00", resp.RequiredDailyAvg)
	assert.Equal(t, "0.00", resp.MissedDaysPercent)
	assert.Equal(t, "0", resp.DaysTraded)
	assert.False(t, resp.DisciplineAlert)

	assert.Contains(t, rec.Body.String(), `"categoryBreakdown":[]`)
	assert.Contains(t, rec.Body.String(), `"allocation":[]`)
}

func TestGetDashboard_Breakdowns(t *testing.T) {
	api := setupAPI(t)

	for _, body := range []string{
		`{"date": "2025-03-10", "pnlAmount": "200", "category": "STOCKS", "subCategory": "SELF_WORK", "ticker": "AAPL"}`,
		`{"date": "2025-03-11", "pnlAmount": "-50", "category": "OPTIONS", "subCategory": "ZERO_DTE", "strategy": "IRON_CONDOR", "ticker": "SPX"}`,
	} {
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/profiles/p1/journal", body).Code)
	}

	rec := api.do(http.MethodGet, "/api/v1/profiles/p1/dashboard", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[DashboardResponse](t, rec)
	assert.Equal(t, "10150.00", resp.CurrentCapital)
	assert.Equal(t, "2", resp.DaysTraded)
	assert.Len(t, resp.CategoryBreakdown, 2)
	assert.Len(t, resp.TickerPerformance, 2)
	assert.NotEmpty(t, resp.StrategyBreakdown)
}

func TestGetDashboard_DisciplineAlert(t *testing.T) {
	profile := testProfile("p1")
	profile.TotalEffectiveDays = decimal.NewFromInt(10)
	api := setupAPI(t, profile)

	rec := api.do(http.MethodPost, "/api/v1/profiles/p1/journal", `{"date": "2025-03-10", "status": "SKIPPED"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.False(t, decodeJSON[LogEntryResponse](t, rec).Dashboard.DisciplineAlert)

	rec = api.do(http.MethodPost, "/api/v1/profiles/p1/journal", `{"date": "2025-03-11", "status": "SKIPPED"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/profiles/p1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeJSON[DashboardResponse](t, rec)
	assert.Equal(t, "20.00", resp.MissedDaysPercent)
	assert.True(t, resp.DisciplineAlert)
}

func TestGetDashboard_NotFound(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/profiles/ghost/dashboard", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrorTypeNotFound, decodeJSON[ProblemDetails](t, rec).Type)
}

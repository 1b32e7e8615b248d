package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEntry_Breach(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/profiles/p1/journal", `{
		"date": "2025-03-14",
		"pnlAmount": "-150",
		"category": "stocks",
		"subCategory": "self_work",
		"ticker": "aapl"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeJSON[LogEntryResponse](t, rec)
	assert.Equal(t, "-150.00", resp.Entry.PnlAmount)
	assert.Equal(t, "TRADED", resp.Entry.Status)
	assert.Equal(t, "STOCKS", resp.Entry.Category)
	assert.Equal(t, "AAPL", resp.Entry.Ticker)
	assert.Equal(t, "10000.00", resp.Entry.StartOfDayBalance)
	assert.Equal(t, "100.00", resp.Entry.RiskLimitSnapshot)

	assert.True(t, resp.Breach)
	require.NotNil(t, resp.Alert)
	assert.Equal(t, "RISK", resp.Alert.Type)
	assert.Equal(t, "RISK BREACH: Loss $150.00 > limit $100.00", resp.Alert.Message.En)
	assert.NotEmpty(t, resp.Alert.Message.Ru)

	assert.Equal(t, "9850.00", resp.Dashboard.CurrentCapital)
	assert.Equal(t, "-150.00", resp.Dashboard.CurrentProgressAmount)
	assert.Equal(t, "1", resp.Dashboard.DaysTraded)

	assert.Equal(t, []string{"journal.created", "risk.breached"}, api.publisher.EventTypes())
}

func TestLogEntry_WithinLimit(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/profiles/p1/journal",
		`{"date": "2025-03-14", "pnlAmount": "-100", "category": "STOCKS", "subCategory": "SELF_WORK"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeJSON[LogEntryResponse](t, rec)
	assert.False(t, resp.Breach)
	assert.Nil(t, resp.Alert)
}

func TestLogEntry_SkippedDay(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/profiles/p1/journal",
		`{"date": "2025-03-14", "status": "skipped", "category": "OPTIONS", "ticker": "SPX"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeJSON[LogEntryResponse](t, rec)
	assert.Equal(t, "SKIPPED", resp.Entry.Status)
	assert.Equal(t, "NONE", resp.Entry.Category)
	assert.Empty(t, resp.Entry.Ticker)
	assert.Equal(t, 1, resp.Dashboard.DaysSkipped)
	assert.Equal(t, "1.00", resp.Dashboard.MissedDaysPercent)
}

func TestLogEntry_Validation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad pnl", `{"date": "2025-03-14", "pnlAmount": "ten"}`, "pnlAmount"},
		{"bad date", `{"date": "14/03/2025", "pnlAmount": "1"}`, "date"},
		{"bad status", `{"date": "2025-03-14", "status": "HOLIDAY"}`, "status"},
		{"bad category", `{"date": "2025-03-14", "category": "CRYPTO"}`, "category"},
		{"bad strategy", `{"date": "2025-03-14", "category": "OPTIONS", "strategy": "WHEEL"}`, "strategy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := setupAPI(t)

			rec := api.do(http.MethodPost, "/api/v1/profiles/p1/journal", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			problem := decodeJSON[ProblemDetails](t, rec)
			require.NotEmpty(t, problem.Errors)
			assert.Equal(t, tt.field, problem.Errors[0].Field)
			assert.Empty(t, api.store.Journal("p1"))
		})
	}
}

func TestLogEntry_UnknownProfile(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/profiles/ghost/journal", `{"pnlAmount": "1"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogEntry_PushesWhenSyncEnabled(t *testing.T) {
	api := setupAPI(t, syncedProfile("p1"))

	rec := api.do(http.MethodPost, "/api/v1/profiles/p1/journal",
		`{"date": "2025-03-14", "pnlAmount": "25", "category": "STOCKS", "subCategory": "FULL_TIME"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	api.reconciler.Wait()
	payload, ok := api.client.LastPayload()
	require.True(t, ok)
	require.Len(t, payload.Journal, 1)
	assert.Equal(t, "p1", payload.Profile.ID)
}

func TestGetJournal(t *testing.T) {
	api := setupAPI(t)

	for _, body := range []string{
		`{"date": "2025-03-12", "pnlAmount": "10", "category": "STOCKS", "subCategory": "SELF_WORK"}`,
		`{"date": "2025-03-10", "pnlAmount": "-5", "category": "STOCKS", "subCategory": "SELF_WORK"}`,
	} {
		require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/v1/profiles/p1/journal", body).Code)
	}

	rec := api.do(http.MethodGet, "/api/v1/profiles/p1/journal", "")

	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeJSON[[]JournalEntryResponse](t, rec)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-03-10", entries[0].Date)
	assert.Equal(t, "2025-03-12", entries[1].Date)
}

func TestGetJournal_Empty(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/profiles/p1/journal", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDeleteEntry(t *testing.T) {
	api := setupAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/profiles/p1/journal",
		`{"date": "2025-03-14", "pnlAmount": "-40", "category": "STOCKS", "subCategory": "SELF_WORK"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	entry := decodeJSON[LogEntryResponse](t, rec).Entry

	rec = api.do(http.MethodDelete, "/api/v1/profiles/p1/journal/"+entry.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, api.store.Journal("p1"))

	profile, err := api.store.Profile("p1")
	require.NoError(t, err)
	assert.Equal(t, "10000.00", profile.CurrentBalance.StringFixed(2))

	rec = api.do(http.MethodDelete, "/api/v1/profiles/p1/journal/"+entry.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

package handler

import (
	"net/http"
	"strings"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// JournalHandler handles journal entry HTTP requests
type JournalHandler struct {
	journalService *service.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// JournalEntryResponse represents a journal entry in API responses
type JournalEntryResponse struct {
	ID                string `json:"id"`
	ProfileID         string `json:"profileId"`
	Date              string `json:"date"`
	PnlAmount         string `json:"pnlAmount"`
	Status            string `json:"status"`
	Category          string `json:"category"`
	SubCategory       string `json:"subCategory"`
	Strategy          string `json:"strategy"`
	Ticker            string `json:"ticker,omitempty"`
	StartOfDayBalance string `json:"startOfDayBalance"`
	RiskLimitSnapshot string `json:"riskLimitSnapshot"`
}

// AlertResponse represents a user-facing alert
type AlertResponse struct {
	ID      string              `json:"id"`
	Type    string              `json:"type"`
	Message domain.AlertMessage `json:"message"`
}

// LogEntryRequest represents the log entry request body
type LogEntryRequest struct {
	Date        string `json:"date"`
	PnlAmount   string `json:"pnlAmount"`
	Status      string `json:"status"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Strategy    string `json:"strategy"`
	Ticker      string `json:"ticker"`
}

// LogEntryResponse is the stored entry, the breach outcome and the refreshed dashboard
type LogEntryResponse struct {
	Entry     JournalEntryResponse `json:"entry"`
	Breach    bool                 `json:"breach"`
	Alert     *AlertResponse       `json:"alert,omitempty"`
	Dashboard DashboardResponse    `json:"dashboard"`
}

func toJournalEntryResponse(e domain.DailyStat) JournalEntryResponse {
	return JournalEntryResponse{
		ID:                e.ID,
		ProfileID:         e.ProfileID,
		Date:              e.Date,
		PnlAmount:         e.PnlAmount.StringFixed(2),
		Status:            string(e.Status),
		Category:          string(e.Category),
		SubCategory:       string(e.SubCategory),
		Strategy:          string(e.Strategy),
		Ticker:            e.Ticker,
		StartOfDayBalance: e.StartOfDayBalance.StringFixed(2),
		RiskLimitSnapshot: e.RiskLimitSnapshot.StringFixed(2),
	}
}

// GetJournal godoc
// @Summary List journal entries
// @Description Entries of a profile in ascending date order
// @Tags journal
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {array} JournalEntryResponse
// @Failure 404 {object} ProblemDetails
// @Router /profiles/{id}/journal [get]
func (h *JournalHandler) GetJournal(c echo.Context) error {
	entries, err := h.journalService.List(c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get journal")
	}

	resp := make([]JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toJournalEntryResponse(e))
	}
	return c.JSON(http.StatusOK, resp)
}

// LogEntry godoc
// @Summary Log a journal entry
// @Description Append a day result and report whether it breached the daily risk limit
// @Tags journal
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body LogEntryRequest true "Journal entry"
// @Success 201 {object} LogEntryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /profiles/{id}/journal [post]
func (h *JournalHandler) LogEntry(c echo.Context) error {
	var req LogEntryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	pnl := decimal.Zero
	if strings.TrimSpace(req.PnlAmount) != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(req.PnlAmount))
		if err != nil {
			return NewValidationError(c, "Invalid pnlAmount", []ValidationError{
				{Field: "pnlAmount", Message: "Must be a valid decimal number"},
			})
		}
		pnl = parsed
	}

	result, err := h.journalService.LogRecord(c.Request().Context(), c.Param("id"), service.LogRecordInput{
		Date:        req.Date,
		PnlAmount:   pnl,
		Status:      domain.DayStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		Category:    domain.TradeCategory(strings.ToUpper(strings.TrimSpace(req.Category))),
		SubCategory: domain.TradeSubCategory(strings.ToUpper(strings.TrimSpace(req.SubCategory))),
		Strategy:    domain.OptionStrategy(strings.ToUpper(strings.TrimSpace(req.Strategy))),
		Ticker:      req.Ticker,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to log entry")
	}

	resp := LogEntryResponse{
		Entry:     toJournalEntryResponse(result.Record),
		Breach:    result.Breach,
		Dashboard: toDashboardResponse(result.Stats, result.DisciplineAlert),
	}
	if result.Alert != nil {
		resp.Alert = &AlertResponse{
			ID:      result.Alert.ID,
			Type:    string(result.Alert.Type),
			Message: result.Alert.Message,
		}
	}
	return c.JSON(http.StatusCreated, resp)
}

// DeleteEntry godoc
// @Summary Delete a journal entry
// @Description Reverses the entry's P&L; an unknown entry is ignored
// @Tags journal
// @Param id path string true "Profile ID"
// @Param entryId path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /profiles/{id}/journal/{entryId} [delete]
func (h *JournalHandler) DeleteEntry(c echo.Context) error {
	if _, err := h.journalService.DeleteRecord(c.Request().Context(), c.Param("id"), c.Param("entryId")); err != nil {
		return handleServiceError(c, err, "Failed to delete entry")
	}
	return c.NoContent(http.StatusNoContent)
}

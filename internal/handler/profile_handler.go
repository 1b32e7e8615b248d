package handler

import (
	"net/http"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProfileHandler handles risk profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// SyncConfigResponse represents a profile's sync settings
type SyncConfigResponse struct {
	SheetID   string `json:"sheetId"`
	ScriptURL string `json:"scriptUrl"`
	IsEnabled bool   `json:"isEnabled"`
}

// SheetStatsResponse carries the remote override values; absent ones are omitted
type SheetStatsResponse struct {
	TargetAmountDollar *string `json:"targetAmountDollar,omitempty"`
	RemainingGoal      *string `json:"remainingGoal,omitempty"`
	DailyTarget        *string `json:"dailyTarget,omitempty"`
	RiskLimit          *string `json:"riskLimit,omitempty"`
	DaysTraded         *string `json:"daysTraded,omitempty"`
	DaysRemaining      *string `json:"daysRemaining,omitempty"`
	TotalDays          *string `json:"totalDays,omitempty"`
}

// ProfileResponse represents a risk profile in API responses
type ProfileResponse struct {
	ID                    string              `json:"id"`
	Name                  string              `json:"name"`
	InitialCapital        string              `json:"initialCapital"`
	CurrentBalance        string              `json:"currentBalance"`
	RiskPerTradePct       string              `json:"riskPerTradePct"`
	TargetAnnualReturnPct string              `json:"targetAnnualReturnPct"`
	TotalEffectiveDays    string              `json:"totalEffectiveDays"`
	MaxMissedDaysPct      string              `json:"maxMissedDaysPct"`
	IsActive              bool                `json:"isActive"`
	Sync                  SyncConfigResponse  `json:"sync"`
	SheetStats            *SheetStatsResponse `json:"sheetStats,omitempty"`
}

// CreateProfileRequest represents the create profile request body
type CreateProfileRequest struct {
	Name                  string  `json:"name"`
	InitialCapital        string  `json:"initialCapital"`
	CurrentBalance        *string `json:"currentBalance,omitempty"`
	RiskPerTradePct       string  `json:"riskPerTradePct"`
	TargetAnnualReturnPct string  `json:"targetAnnualReturnPct"`
	TotalEffectiveDays    string  `json:"totalEffectiveDays"`
	MaxMissedDaysPct      string  `json:"maxMissedDaysPct"`
	Activate              bool    `json:"activate"`
}

// UpdateProfileRequest represents a partial profile update; omitted fields are kept
type UpdateProfileRequest struct {
	Name                  *string `json:"name,omitempty"`
	InitialCapital        *string `json:"initialCapital,omitempty"`
	CurrentBalance        *string `json:"currentBalance,omitempty"`
	RiskPerTradePct       *string `json:"riskPerTradePct,omitempty"`
	TargetAnnualReturnPct *string `json:"targetAnnualReturnPct,omitempty"`
	TotalEffectiveDays    *string `json:"totalEffectiveDays,omitempty"`
	MaxMissedDaysPct      *string `json:"maxMissedDaysPct,omitempty"`
}

// UpdateSyncConfigRequest represents a partial sync settings update
type UpdateSyncConfigRequest struct {
	SheetID   *string `json:"sheetId,omitempty"`
	ScriptURL *string `json:"scriptUrl,omitempty"`
	IsEnabled *bool   `json:"isEnabled,omitempty"`
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func toProfileResponse(p domain.RiskProfile) ProfileResponse {
	resp := ProfileResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		InitialCapital:        p.InitialCapital.StringFixed(2),
		CurrentBalance:        p.CurrentBalance.StringFixed(2),
		RiskPerTradePct:       p.RiskPerTradePct.String(),
		TargetAnnualReturnPct: p.TargetAnnualReturnPct.String(),
		TotalEffectiveDays:    p.TotalEffectiveDays.String(),
		MaxMissedDaysPct:      p.MaxMissedDaysPct.String(),
		IsActive:              p.IsActive,
		Sync: SyncConfigResponse{
			SheetID:   p.Sync.SheetID,
			ScriptURL: p.Sync.ScriptURL,
			IsEnabled: p.Sync.IsEnabled,
		},
	}
	if s := p.SheetStats; !s.IsEmpty() {
		resp.SheetStats = &SheetStatsResponse{
			TargetAmountDollar: decimalString(s.TargetAmountDollar),
			RemainingGoal:      decimalString(s.RemainingGoal),
			DailyTarget:        decimalString(s.DailyTarget),
			RiskLimit:          decimalString(s.RiskLimit),
			DaysTraded:         decimalString(s.DaysTraded),
			DaysRemaining:      decimalString(s.DaysRemaining),
			TotalDays:          decimalString(s.TotalDays),
		}
	}
	return resp
}

// parseDecimalField parses a required or optional decimal request field.
// An empty value yields zero.
func parseDecimalField(field, raw string, errs *[]ValidationError) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		*errs = append(*errs, ValidationError{Field: field, Message: "Must be a valid number"})
		return decimal.Zero
	}
	return d
}

func parseOptionalDecimal(field string, raw *string, errs *[]ValidationError) *decimal.Decimal {
	if raw == nil {
		return nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		*errs = append(*errs, ValidationError{Field: field, Message: "Must be a valid number"})
		return nil
	}
	return &d
}

// ListProfiles godoc
// @Summary List risk profiles
// @Description Get every risk profile
// @Tags profiles
// @Produce json
// @Success 200 {array} ProfileResponse
// @Router /profiles [get]
func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	profiles := h.profileService.ListProfiles()
	resp := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		resp = append(resp, toProfileResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetActiveProfile godoc
// @Summary Get the active profile
// @Tags profiles
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} ProblemDetails
// @Router /profiles/active [get]
func (h *ProfileHandler) GetActiveProfile(c echo.Context) error {
	profile, err := h.profileService.GetActiveProfile()
	if err != nil {
		return handleServiceError(c, err, "Failed to get active profile")
	}
	return c.JSON(http.StatusOK, toProfileResponse(*profile))
}

// GetProfile godoc
// @Summary Get a risk profile
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} ProblemDetails
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profileService.GetProfile(c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get profile")
	}
	return c.JSON(http.StatusOK, toProfileResponse(*profile))
}

// CreateProfile godoc
// @Summary Create a risk profile
// @Description Create a profile; decimal fields are sent as strings
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body CreateProfileRequest true "Profile creation request"
// @Success 201 {object} ProfileResponse
// @Failure 400 {object} ProblemDetails
// @Router /profiles [post]
func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	var req CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	input := service.CreateProfileInput{
		Name:                  req.Name,
		InitialCapital:        parseDecimalField("initialCapital", req.InitialCapital, &errs),
		CurrentBalance:        parseOptionalDecimal("currentBalance", req.CurrentBalance, &errs),
		RiskPerTradePct:       parseDecimalField("riskPerTradePct", req.RiskPerTradePct, &errs),
		TargetAnnualReturnPct: parseDecimalField("targetAnnualReturnPct", req.TargetAnnualReturnPct, &errs),
		TotalEffectiveDays:    parseDecimalField("totalEffectiveDays", req.TotalEffectiveDays, &errs),
		MaxMissedDaysPct:      parseDecimalField("maxMissedDaysPct", req.MaxMissedDaysPct, &errs),
		Activate:              req.Activate,
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	profile, err := h.profileService.CreateProfile(c.Request().Context(), input)
	if err != nil {
		return handleServiceError(c, err, "Failed to create profile")
	}
	return c.JSON(http.StatusCreated, toProfileResponse(*profile))
}

// UpdateProfile godoc
// @Summary Update a risk profile
// @Description Partial update; omitted fields keep their value
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body UpdateProfileRequest true "Profile update request"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /profiles/{id} [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	patch := domain.ProfilePatch{
		Name:                  req.Name,
		InitialCapital:        parseOptionalDecimal("initialCapital", req.InitialCapital, &errs),
		CurrentBalance:        parseOptionalDecimal("currentBalance", req.CurrentBalance, &errs),
		RiskPerTradePct:       parseOptionalDecimal("riskPerTradePct", req.RiskPerTradePct, &errs),
		TargetAnnualReturnPct: parseOptionalDecimal("targetAnnualReturnPct", req.TargetAnnualReturnPct, &errs),
		TotalEffectiveDays:    parseOptionalDecimal("totalEffectiveDays", req.TotalEffectiveDays, &errs),
		MaxMissedDaysPct:      parseOptionalDecimal("maxMissedDaysPct", req.MaxMissedDaysPct, &errs),
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Validation failed", errs)
	}

	profile, err := h.profileService.UpdateProfile(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return handleServiceError(c, err, "Failed to update profile")
	}
	return c.JSON(http.StatusOK, toProfileResponse(*profile))
}

// UpdateSyncConfig godoc
// @Summary Update sync settings
// @Tags profiles
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body UpdateSyncConfigRequest true "Sync settings update"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /profiles/{id}/sync-config [put]
func (h *ProfileHandler) UpdateSyncConfig(c echo.Context) error {
	var req UpdateSyncConfigRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	profile, err := h.profileService.UpdateSyncConfig(c.Request().Context(), c.Param("id"), service.SyncConfigPatch{
		SheetID:   req.SheetID,
		ScriptURL: req.ScriptURL,
		IsEnabled: req.IsEnabled,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to update sync settings")
	}
	return c.JSON(http.StatusOK, toProfileResponse(*profile))
}

// ActivateProfile godoc
// @Summary Make a profile the active one
// @Description Dashboards watching the previously active profile are disconnected
// @Tags profiles
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} ProfileResponse
// @Failure 404 {object} ProblemDetails
// @Router /profiles/{id}/activate [post]
func (h *ProfileHandler) ActivateProfile(c echo.Context) error {
	profile, err := h.profileService.SetActiveProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to activate profile")
	}
	return c.JSON(http.StatusOK, toProfileResponse(*profile))
}

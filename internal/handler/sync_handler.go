package handler

import (
	"errors"
	"net/http"

	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SyncHandler exposes the manual and visibility-triggered sync operations
type SyncHandler struct {
	reconciler *service.ReconcileService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(reconciler *service.ReconcileService) *SyncHandler {
	return &SyncHandler{reconciler: reconciler}
}

// handleSyncError maps domain errors as usual and reports remote failures as 502
func handleSyncError(c echo.Context, err error, operation string) error {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrSyncInProgress),
		errors.Is(err, domain.ErrSyncDisabled):
		return handleServiceError(c, err, operation+" failed")
	}
	log.Warn().Err(err).Str("profile_id", c.Param("id")).Str("operation", operation).Msg("Sync request failed")
	return NewSyncError(c, err.Error())
}

// GetStatus godoc
// @Summary Get sync status
// @Tags sync
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} service.SyncStatus
// @Router /profiles/{id}/sync [get]
func (h *SyncHandler) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reconciler.SyncStatus(c.Param("id")))
}

// Pull godoc
// @Summary Pull the remote snapshot
// @Tags sync
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} service.PullResult
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /profiles/{id}/sync/pull [post]
func (h *SyncHandler) Pull(c echo.Context) error {
	result, err := h.reconciler.ManualPull(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleSyncError(c, err, service.SyncOperationPull)
	}
	return c.JSON(http.StatusOK, result)
}

// Push godoc
// @Summary Push the profile and journal to the remote endpoint
// @Tags sync
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} service.SyncStatus
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /profiles/{id}/sync/push [post]
func (h *SyncHandler) Push(c echo.Context) error {
	if err := h.reconciler.ManualPush(c.Request().Context(), c.Param("id")); err != nil {
		return handleSyncError(c, err, service.SyncOperationPush)
	}
	return c.JSON(http.StatusOK, h.reconciler.SyncStatus(c.Param("id")))
}

// Visibility handles POST /api/v1/profiles/:id/sync/visibility, sent when the dashboard
// becomes visible again. It pulls even while another sync is running; a profile without
// sync configured answers 204.
// @Summary Pull after the dashboard regains visibility
// @Tags sync
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} service.PullResult
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /profiles/{id}/sync/visibility [post]
func (h *SyncHandler) Visibility(c echo.Context) error {
	result, err := h.reconciler.Pull(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrSyncDisabled) {
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		return handleSyncError(c, err, service.SyncOperationPull)
	}
	return c.JSON(http.StatusOK, result)
}

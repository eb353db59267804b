package controllers

import (
	"log/slog"
	"net/http"

	"tickx/internal/delivery/http/helpers"
	"tickx/internal/domain"
)

type SyncController struct {
	Logger *slog.Logger
	Sync   domain.SyncService
}

func NewSyncController(logger *slog.Logger, sync domain.SyncService) *SyncController {
	return &SyncController{
		Logger: logger,
		Sync:   sync,
	}
}

// TriggerSync godoc
// @Summary Trigger a catalog sync run
// @Description Runs a full ingestion cycle across all configured city partitions and returns the aggregated result. Per-city failures appear as zero-count entries; only a setup failure (e.g. API key resolution) makes the run unsuccessful.
// @Tags sync
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.DataResponse "data contains the sync result"
// @Failure 401 {object} helpers.ErrorResponse "error: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "error: internal_error"
// @Router /sync [post]
func (c *SyncController) TriggerSync(w http.ResponseWriter, r *http.Request) {
	result := c.Sync.Run(r.Context())
	if !result.Success {
		c.Logger.ErrorContext(r.Context(), "sync run failed", "run_id", result.RunID, "err", result.Error)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, result.Error)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

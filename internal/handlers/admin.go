package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/copyforge/apiserver/internal/services"
)

// AdminHandler provides the administrative endpoints.
type AdminHandler struct {
	statsService  *services.StatsService
	backupService *services.BackupService
}

// NewAdminHandler constructs an AdminHandler. backupService may be nil when
// no object storage is configured.
func NewAdminHandler(statsService *services.StatsService, backupService *services.BackupService) *AdminHandler {
	return &AdminHandler{
		statsService:  statsService,
		backupService: backupService,
	}
}

// AdminRouter registers admin routes on the given router.
func AdminRouter(r chi.Router, statsService *services.StatsService, backupService *services.BackupService) {
	handler := NewAdminHandler(statsService, backupService)

	r.Get("/stats", handler.Stats)
	r.Post("/backup", handler.Backup)
}

// Stats returns the usage overview across all collections.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Overview(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Backup snapshots the collections to object storage.
func (h *AdminHandler) Backup(w http.ResponseWriter, r *http.Request) {
	if h.backupService == nil {
		writeError(w, http.StatusServiceUnavailable, "no backup storage configured")
		return
	}

	prefix, err := h.backupService.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "backup failed")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"prefix": prefix})
}

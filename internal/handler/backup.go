package handler

import (
	"net/http"

	"github.com/mystock-app/mystock/internal/backup"
)

// BackupHandler exposes snapshot status and the manual trigger.
type BackupHandler struct {
	mgr *backup.Manager
}

func NewBackupHandler(mgr *backup.Manager) *BackupHandler {
	return &BackupHandler{mgr: mgr}
}

func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.mgr.Status())
}

func (h *BackupHandler) RunNow(w http.ResponseWriter, r *http.Request) {
	if !h.mgr.Enabled() {
		writeError(w, http.StatusConflict, "backup not configured")
		return
	}

	key, err := h.mgr.RunNow(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key})
}

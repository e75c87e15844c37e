package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *HTTPTransport) getAuditLogs(w http.ResponseWriter, r *http.Request) {
	module := chi.URLParam(r, "module")
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	logs, err := h.audits.GetLogs(r.Context(), module, id, queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

package handlers

import (
	"net/http"

	"github.com/jayjaychukwu/reconcilation/internal/server/response"
	"github.com/jayjaychukwu/reconcilation/pkg/errors"
)

// HandleHealth reports process liveness.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// HandleReady reports whether the service can accept work. The store is
// probed with a cheap lookup; a NotFoundError still means the database
// answered.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Get(r.Context(), "readiness-probe"); err != nil && !errors.IsNotFound(err) {
		response.JSON(w, http.StatusServiceUnavailable,
			response.Fail("NOT_READY", "job store unavailable", err.Error()))
		return
	}
	response.OK(w, map[string]string{"status": "ready"})
}

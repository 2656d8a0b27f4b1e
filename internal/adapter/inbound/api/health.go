package api

import (
	"fmt"
	"net/http"
	"time"
)

// statusResponse is the JSON response from the root sanity endpoint.
type statusResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// handleStatus reports process liveness and uptime in whole seconds.
// GET /
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	h.respondJSON(w, http.StatusOK, statusResponse{
		Status: "ok",
		Uptime: fmt.Sprintf("%d seconds", int64(uptime.Seconds())),
	})
}

package handlers

import "net/http"

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, jsonResponse{"status": "healthy"}, nil)
}

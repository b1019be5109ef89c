package handlers

import (
	"net/http"

	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/pkg/httputil"
)

// HandleHealth is the liveness probe.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}

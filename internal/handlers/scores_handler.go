package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/internal/services"
	"sportsgpt-backend/internal/sports"
	"sportsgpt-backend/pkg/httputil"
)

const defaultSport = "nfl"

// ScoresHandler serves GET /api/scores.
type ScoresHandler struct {
	scores services.ScoreFetcher
	log    logrus.FieldLogger
}

func NewScoresHandler(scores services.ScoreFetcher, log logrus.FieldLogger) *ScoresHandler {
	return &ScoresHandler{scores: scores, log: log.WithField("component", "ScoresHandler")}
}

// HandleGetScores returns {sport, games}, or {error, supported} with status 200
// for an unknown sport.
func (h *ScoresHandler) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	sport := strings.TrimSpace(r.URL.Query().Get("sport"))
	if sport == "" {
		sport = defaultSport
	}

	result, err := h.scores.GetScores(r.Context(), sport)
	if err != nil {
		if errors.Is(err, sports.ErrUnsupportedSport) {
			httputil.RespondJSON(w, http.StatusOK, models.UnsupportedSportResponse{
				Error:     "Unsupported sport: " + sport,
				Supported: sports.SupportedIDs(),
			})
			return
		}
		h.log.WithField("sport", sport).WithError(err).Error("failed to fetch scores")
		httputil.RespondError(w, http.StatusBadGateway, "Failed to fetch scores")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	api_models "sportsgpt-backend/internal/models"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger sets the logger used to report response encoding failures.
func SetLogger(l logrus.FieldLogger) {
	logger = l
}

// RespondJSON writes a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Can't write header again here, just log the error
		logger.WithError(err).Error("error encoding JSON response")
	}
}

// RespondError writes a JSON error response with the given status code and message.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, api_models.ErrorResponse{Error: message})
}

// DecodeJSON decodes the request body into dst, rejecting unknown trailing data.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}

var errTrailingData = errors.New("request body must contain a single JSON object")

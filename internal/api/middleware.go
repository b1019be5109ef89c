package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/auth"
	"sportsgpt-backend/pkg/httputil"
)

// --- Auth Middleware ---

// RequireAuth resolves the bearer token to a user ID and injects it into the
// request context. Requests without a usable token get 401 before any handler runs.
func RequireAuth(verifier auth.Verifier, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return authMiddleware(verifier, log, true)
}

// OptionalAuth behaves like RequireAuth when an Authorization header is present
// and passes anonymous requests through untouched.
func OptionalAuth(verifier auth.Verifier, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return authMiddleware(verifier, log, false)
}

func authMiddleware(verifier auth.Verifier, log logrus.FieldLogger, required bool) func(http.Handler) http.Handler {
	log = log.WithField("component", "AuthMiddleware")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" && !required {
				next.ServeHTTP(w, r)
				return
			}

			token, err := auth.BearerToken(header)
			if err != nil {
				log.WithField("path", r.URL.Path).Debug("missing or malformed Authorization header")
				httputil.RespondError(w, http.StatusUnauthorized, "Missing auth token")
				return
			}

			userID, err := verifier.UserID(token)
			if err != nil {
				log.WithError(err).Warn("invalid bearer token")
				httputil.RespondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			log.WithField("user_id", userID.String()[:8]).Debug("authenticated user")
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

// --- Request Logging ---

// statusWriter records the status code and byte count of a response.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying Flusher.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// RequestLogger logs one structured line per request.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	log = log.WithField("component", "http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}
			entry := log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      sw.bytes,
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
				"remote":     r.RemoteAddr,
			})
			if status >= http.StatusInternalServerError {
				entry.Error("request completed")
			} else {
				entry.Info("request completed")
			}
		})
	}
}

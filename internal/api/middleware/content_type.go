package middleware

import (
	"net/http"
	"strings"

	"github.com/Yoloholoknow/Respire/internal/api/models"
)

// ContentTypeJSON defaults responses to application/json. Handlers that
// set their own Content-Type (problem+json, for instance) win.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// RequireJSON rejects bodied requests that declare a non-JSON payload.
// Requests with no Content-Type pass through: GETs and the empty-bodied
// ops POSTs carry none.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				problem := models.NewUnsupportedMediaType(
					GetRequestID(r.Context()),
					"Content-Type must be application/json",
				)
				problem.Instance = r.URL.Path
				problem.Write(w)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// RequireDocID rejects requests whose path parameter is not a syntactically
// valid UUID before any query runs.
func RequireDocID(param string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := mux.Vars(r)[param]
			if _, err := uuid.Parse(id); err != nil {
				log.Warn().
					Str("param", param).
					Str("value", id).
					Str("path", r.URL.Path).
					Msg("Rejected request with malformed document id")
				writeMessage(w, http.StatusBadRequest, "Invalid id format")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

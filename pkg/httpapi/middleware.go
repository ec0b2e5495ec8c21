package httpapi

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/recordkit/pkg/logger"
)

// RunIDHeader carries the run id of a request in both directions.
const RunIDHeader = "X-Run-ID"

const maxRunIDLength = 128

var validRunID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// RunID stores a run id in the request context for logging, reusing the
// client's X-Run-ID when it is well formed.
func RunID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RunIDHeader)
		if len(id) == 0 || len(id) > maxRunIDLength || !validRunID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RunIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRunID(r.Context(), id)))
	})
}

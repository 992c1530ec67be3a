package api

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/scanner"
)

const (
	// RequestIDHeader carries the correlation id. The same id is used as the
	// scan id, so client, access logs and scan logs line up.
	RequestIDHeader = "X-Request-ID"
	maxIDLength     = 128
)

var validID = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// RequestID accepts a well formed X-Request-ID or generates a UUID, echoes it
// in the response and stores it as the scan id of the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if !isValidRequestID(id) {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(scanner.WithScanID(r.Context(), id)))
	})
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}

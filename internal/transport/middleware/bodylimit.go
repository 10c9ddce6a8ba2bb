package middleware

import "net/http"

// DefaultMaxBodyBytes applies when no positive limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimit makes reads past limit bytes of a request body fail with
// *http.MaxBytesError.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

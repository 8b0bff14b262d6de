package middleware

import "net/http"

// MaxBodySize caps ingestion bodies at 1MB.
const MaxBodySize int64 = 1 << 20

// RequestSize limits the size of incoming request bodies. The body is wrapped
// with http.MaxBytesReader, so reads past the limit fail and the connection
// is closed.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

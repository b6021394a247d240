package middleware

import (
	"net/http"

	apperrors "securebook/pkg/errors"
	httputil "securebook/pkg/http"
)

// MaxRequestSize caps request bodies at limit bytes. Declared oversize
// bodies are refused up front; the rest fail on read.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, apperrors.PayloadTooLarge(limit))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

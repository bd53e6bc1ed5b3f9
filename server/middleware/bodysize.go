package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chatly/authkit/util"
)

// Signup avatars are the largest thing this service accepts.
const defaultMaxBodySize = 10 * 1024 * 1024

// BodySizeLimit restricts request bodies to the given size string
// (e.g. "10MB", "512KB").
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}

// GinBodySizeLimit returns a Gin middleware for body size limiting.
func GinBodySizeLimit(maxSize string) gin.HandlerFunc {
	return GinWrap(BodySizeLimit(maxSize))
}

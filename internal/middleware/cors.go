package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows local development hosts, Netlify and Cloudflare Pages
// previews, and the configured frontend origins. Other origins get 403.
func CORS(frontendURLs []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(frontendURLs))
	for _, u := range frontendURLs {
		if u = normalizeOrigin(u); u != "" {
			allowed[u] = struct{}{}
		}
	}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return isAllowedOrigin(normalizeOrigin(origin), allowed)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.TrimSpace(origin), "/")
}

func isAllowedOrigin(origin string, allowed map[string]struct{}) bool {
	switch {
	case strings.HasPrefix(origin, "http://localhost"), strings.HasPrefix(origin, "http://127.0.0.1"):
		return true
	case strings.HasSuffix(origin, ".netlify.app"), strings.HasSuffix(origin, ".pages.dev"):
		return true
	}
	_, ok := allowed[origin]
	return ok
}

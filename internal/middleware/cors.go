package middleware

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CORSMiddleware admits the configured client origins with credentials.
// Development additionally admits any localhost origin so the client dev
// server works without configuration.
func CORSMiddleware(allowedOrigins []string, isDevelopment bool) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if isDevelopment {
		configured := make(map[string]bool, len(allowedOrigins))
		for _, o := range allowedOrigins {
			configured[o] = true
		}
		opts.AllowOriginFunc = func(r *http.Request, origin string) bool {
			if configured[origin] {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && (u.Hostname() == "localhost" || u.Hostname() == "127.0.0.1")
		}
	}

	return cors.Handler(opts)
}

// DefaultMiddlewareStack returns the chi middleware every route shares.
func DefaultMiddlewareStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.CleanPath,
	}
}

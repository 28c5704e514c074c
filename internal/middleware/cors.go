package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to call the API. Entries may
	// use one wildcard, e.g. "https://*.example.com". Empty disables CORS.
	AllowedOrigins []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// DefaultCORSConfig returns a config with CORS disabled.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{MaxAge: 300}
}

// CORS returns a middleware handling cross-origin requests. With no
// allowed origins it passes requests through untouched.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         cfg.MaxAge,
	})
}

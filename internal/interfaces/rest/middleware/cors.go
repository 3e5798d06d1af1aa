package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS lets the listed browser origins call the API with credentials.
// Requests from other origins are served without CORS headers.
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
	})
	return c.Handler
}

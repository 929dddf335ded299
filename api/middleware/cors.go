package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Local dev servers plus the hosted ordering surfaces.
var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:19006",
	"https://app.steakaway.pk",
	"https://order.steakaway.pk",
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

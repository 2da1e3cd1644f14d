package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",            // admin dashboard local dev
	"http://localhost:5173",            // Vite dev server
	"https://corneye-admin.vercel.app", // admin dashboard
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CE-Token", "X-Requested-With"},
		ExposedHeaders:   []string{"X-CE-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

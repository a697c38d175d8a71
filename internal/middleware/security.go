package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
)

// SecurityHeaders sets the usual hardening headers (X-Frame-Options,
// X-Content-Type-Options, Referrer-Policy, ...) on every response.
func SecurityHeaders() fiber.Handler {
	return helmet.New()
}

// CORS allows cross-origin requests from any origin.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
	})
}

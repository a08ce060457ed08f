package middleware

import (
	"time"

	"khadija-recipes/pkg/page"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		LanguageMiddleware() fiber.Handler
		RedirectMiddleware() fiber.Handler
	}

	middleware struct {
		redirectService page.RedirectService
	}
)

func NewMiddleware(redirectService page.RedirectService) Middleware {
	return &middleware{redirectService: redirectService}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Authorization,Content-Type,Accept-Language",
		ExposeHeaders: "Content-Length,Content-Language",
		MaxAge:        int((12 * time.Hour).Seconds()),
	})
}

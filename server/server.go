// Package server assembles the fiber application: explicit route table,
// explicit middleware chains, and one error renderer at the boundary.
package server

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/kokomiu/kokomiu-api/admin"
	"github.com/kokomiu/kokomiu-api/auth"
	"github.com/kokomiu/kokomiu-api/gpt"
	"github.com/kokomiu/kokomiu-api/user"
)

// Dependencies carries every service the route table needs. It is built once
// at startup and passed in whole; handlers never resolve services lazily.
type Dependencies struct {
	Logger auth.Logger

	Auth  *auth.Controller
	Admin *admin.Controller
	User  *user.Controller
	Gpt   *gpt.Controller
}

// New builds the fiber app with all routes mounted.
func New(deps Dependencies) *fiber.App {
	logger := deps.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: NewErrorRenderer(logger).Render,
	})

	deps.Auth.RegisterRoutes(app.Group("/auth"))
	deps.Admin.RegisterRoutes(app.Group("/admin"))
	deps.User.RegisterRoutes(app.Group("/user"))
	deps.Gpt.RegisterRoutes(app.Group("/gpt"))

	return app
}

// NopLogger drops everything; tests use it to keep output quiet.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// StdLogger writes leveled lines through the standard log package.
type StdLogger struct{}

func (StdLogger) Debug(format string, args ...any) { log.Printf("[DBG] "+format, args...) }
func (StdLogger) Info(format string, args ...any)  { log.Printf("[INF] "+format, args...) }
func (StdLogger) Warn(format string, args ...any)  { log.Printf("[WRN] "+format, args...) }
func (StdLogger) Error(format string, args ...any) { log.Printf("[ERR] "+format, args...) }

// Package httpapi serves the user commands over HTTP with fiber. Routes
// mirror the REST surface the service has always exposed under /api/users.
package httpapi

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/httpapi/presenter"
	"github.com/gofiber/fiber/v2"
)

type userService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)
	Authenticate(ctx context.Context, req models.AuthenticateRequest) (models.PublicUser, error)
	ChangeEmail(ctx context.Context, req models.ChangeEmailRequest) (models.ChangeEmailResponse, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.ChangePasswordResponse, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewApp builds the fiber app with every route registered.
func NewApp(users userService, store Pinger, logger logging.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "usermanager",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(requestLogger(logger))

	Register(app, NewUserHandler(users, logger), NewHealthHandler(store))
	return app
}

// Register wires all HTTP routes onto app.
func Register(app *fiber.App, users *UserHandler, health *HealthHandler) {
	h := app.Group("/health")
	h.Get("/live", health.Live)
	h.Get("/ready", health.Ready)

	u := app.Group("/api/users")
	u.Post("/", users.Register)
	u.Get("/", users.Authenticate)
	u.Post("/authenticate", users.Authenticate)
	u.Put("/email", users.ChangeEmail)
	u.Put("/password", users.ChangePassword)
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return presenter.Error(c, fe.Code, fe.Message)
	}
	return presenter.Error(c, fiber.StatusInternalServerError, "internal server error")
}

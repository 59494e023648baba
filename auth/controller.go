package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Controller exposes the auth operations over HTTP. Routes are registered
// with an explicit middleware chain; no handler wrapping.
type Controller struct {
	Logger  Logger
	Service *Service
}

type ControllerOption func(*Controller)

func WithControllerLogger(l Logger) ControllerOption {
	return func(c *Controller) {
		c.Logger = l
	}
}

func NewController(svc *Service, opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger:  defLogger{},
		Service: svc,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// RegisterRoutes mounts the auth endpoints on the given router group.
func (a *Controller) RegisterRoutes(app fiber.Router) {
	app.Post("/google", a.GoogleLogin)
	app.Post("/refresh_token", a.RefreshToken)
	app.Post("/logout", RequireLogin(), a.Logout)
}

// GoogleLoginRequest payload
type GoogleLoginRequest struct {
	Code string `json:"code" form:"code"`
}

// Validate will run validation rules
func (r GoogleLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required),
	)
}

func (a *Controller) GoogleLogin(c *fiber.Ctx) error {
	payload := new(GoogleLoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "code is required")
	}

	if _, err := a.Service.LoginWithGoogle(c, payload.Code); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "user login successful",
	})
}

func (a *Controller) RefreshToken(c *fiber.Ctx) error {
	if _, err := a.Service.Refresh(c); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "user login successful",
	})
}

func (a *Controller) Logout(c *fiber.Ctx) error {
	a.Service.Logout(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "user logout successful",
	})
}

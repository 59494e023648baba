package admin

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/kokomiu/kokomiu-api/auth"
)

// Controller serves the admin login/logout endpoints.
type Controller struct {
	Logger  auth.Logger
	Service *Service
	Issuer  *auth.SessionIssuer
}

type ControllerOption func(*Controller)

func WithControllerLogger(l auth.Logger) ControllerOption {
	return func(c *Controller) {
		c.Logger = l
	}
}

func NewController(svc *Service, issuer *auth.SessionIssuer, opts ...ControllerOption) *Controller {
	c := &Controller{
		Service: svc,
		Issuer:  issuer,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// RegisterRoutes mounts the admin endpoints on the given router group.
func (a *Controller) RegisterRoutes(app fiber.Router) {
	app.Post("/login", a.Login)
	app.Post("/logout", a.Logout)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"admin_email" form:"admin_email"`
	Password string `json:"admin_password" form:"admin_password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *Controller) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "admin_email and admin_password are required")
	}

	record, err := a.Service.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	if err := a.Issuer.Issue(c, Principal(record), auth.RoleAdmin); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "admin login successful",
	})
}

func (a *Controller) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookies(c, a.Issuer.Policy())

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "admin logout successful",
	})
}

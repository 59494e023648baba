package user

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kokomiu/kokomiu-api/auth"
)

// Controller serves the user-facing endpoints.
type Controller struct {
	Repo *Repository
}

func NewController(repo *Repository) *Controller {
	return &Controller{Repo: repo}
}

// RegisterRoutes mounts the user endpoints on the given router group.
func (a *Controller) RegisterRoutes(app fiber.Router) {
	app.Get("/me", auth.RequireLogin(), a.Me)
}

// Me returns the authenticated user's record.
func (a *Controller) Me(c *fiber.Ctx) error {
	id, ok := auth.PrincipalID(c)
	if !ok {
		return auth.ErrUnauthorized
	}

	record, err := a.Repo.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(record)
}

package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"

	"github.com/kokomiu/kokomiu-api/auth"
)

// ErrorRenderer converts the error taxonomy into HTTP responses at the
// orchestration boundary. Nothing internal crosses it: auth failures carry a
// short message only, everything else gets a generic body with the detail
// confined to the log line.
type ErrorRenderer struct {
	logger auth.Logger
}

func NewErrorRenderer(logger auth.Logger) *ErrorRenderer {
	return &ErrorRenderer{logger: logger}
}

func (r *ErrorRenderer) Render(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"detail": fiberErr.Message,
			})
		}
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := statusFor(richErr)

	if status >= fiber.StatusInternalServerError {
		r.logger.Error(
			"request failed: %s category=%s details=%s",
			richErr.Message,
			richErr.Category,
			print.MaybePrettyJSON(richErr.Metadata),
		)
	} else {
		r.logger.Info(
			"request rejected: %s category=%s path=%s",
			richErr.Message,
			richErr.Category,
			c.OriginalURL(),
		)
	}

	body := fiber.Map{"detail": richErr.Message}
	if status >= fiber.StatusInternalServerError {
		body["detail"] = "internal server error"
	}

	return c.Status(status).JSON(body)
}

func statusFor(err *errors.Error) int {
	switch err.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return fiber.StatusUnauthorized
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryValidation:
		return fiber.StatusUnprocessableEntity
	case errors.CategoryBadInput:
		return fiber.StatusBadRequest
	}

	if err.Code >= fiber.StatusBadRequest {
		return err.Code
	}
	return fiber.StatusInternalServerError
}

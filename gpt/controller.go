package gpt

import (
	"io"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/kokomiu/kokomiu-api/auth"
)

// Controller serves the GPT-setting endpoints behind the session check.
type Controller struct {
	Logger  auth.Logger
	Service *Service
}

func NewController(svc *Service, logger auth.Logger) *Controller {
	return &Controller{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterRoutes mounts the setting endpoints on the given router group.
func (a *Controller) RegisterRoutes(app fiber.Router) {
	app.Get("/gpt_setting", auth.RequireLogin(), a.GetSetting)
	app.Post("/gpt_setting/save", auth.RequireLogin(), a.SaveSetting)
}

func (a *Controller) GetSetting(c *fiber.Ctx) error {
	record, err := a.Service.GetSetting(c.UserContext())
	if err != nil {
		return err
	}
	// No setting yet is a normal state, not an error.
	if record == nil {
		return c.Status(fiber.StatusOK).JSON(nil)
	}
	return c.Status(fiber.StatusOK).JSON(record)
}

// savePayload mirrors the multipart form fields.
type savePayload struct {
	Version      string
	DataType     string
	LearningText string
}

func (r savePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Version, validation.Required),
		validation.Field(&r.DataType, validation.Required, validation.In(DataTypeFile, DataTypeText)),
	)
}

func (a *Controller) SaveSetting(c *fiber.Ctx) error {
	in := SaveInput{
		Version:      c.FormValue("version"),
		Instruction:  c.FormValue("instruction"),
		DataType:     c.FormValue("data_type"),
		LearningText: c.FormValue("learning_text"),
		FallBackType: c.FormValue("fall_back_type") == "true",
		FallBackText: c.FormValue("fall_back_text"),
	}

	if raw := c.FormValue("gpt_setting_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errors.Wrap(err, errors.CategoryValidation, "gpt_setting_id must be numeric")
		}
		in.SettingID = id
	}

	payload := savePayload{
		Version:      in.Version,
		DataType:     in.DataType,
		LearningText: in.LearningText,
	}
	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid gpt setting payload")
	}

	uploads, err := readUploads(c)
	if err != nil {
		return err
	}
	in.Files = uploads

	if err := a.Service.Save(c.UserContext(), in); err != nil {
		a.Logger.Error("gpt setting save failed: %v", err)
		return err
	}

	return c.Status(fiber.StatusOK).JSON("gpt setting saved successfully")
}

func readUploads(c *fiber.Ctx) ([]Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Text-only saves may not be multipart at all.
		return nil, nil
	}

	var uploads []Upload
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to open uploaded file")
		}

		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to read uploaded file")
		}

		uploads = append(uploads, Upload{Name: header.Filename, Data: data})
	}

	return uploads, nil
}

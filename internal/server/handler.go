package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/beta3zer0/go-customfields/pkg/fieldinput"
	"github.com/beta3zer0/go-customfields/pkg/model"
	"github.com/beta3zer0/go-customfields/pkg/render"
	"github.com/beta3zer0/go-customfields/pkg/renderers/vanilla"
	"github.com/beta3zer0/go-customfields/pkg/typecheck"
)

// Handler serves the demo record-editing API: a rendered form per record plus
// JSON endpoints that drive the same widget semantics over HTTP. List
// mutations keep the widget's silent policy: duplicate adds and out-of-range
// removals answer 200 with the unchanged state.
type Handler struct {
	fields model.FieldSet
	store  *RecordStore
	html   render.Renderer
}

func NewHandler(fields model.FieldSet, store *RecordStore, html render.Renderer) *Handler {
	return &Handler{fields: fields, store: store, html: html}
}

// RegisterRoutes binds the API surface onto app.
func RegisterRoutes(app *fiber.App, h *Handler) {
	app.Get("/health", h.Health)
	app.Get("/fields", h.Fields)
	app.Get("/records/:id", h.GetRecord)
	app.Get("/records/:id/form", h.Form)
	app.Post("/records/:id/form", h.SubmitForm)
	app.Put("/records/:id/fields/:name", h.PutScalar)
	app.Post("/records/:id/fields/:name/values", h.AddListValue)
	app.Delete("/records/:id/fields/:name/values/:index", h.RemoveListValue)
}

// Health handles GET /health
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Fields handles GET /fields
func (h *Handler) Fields(c *fiber.Ctx) error {
	set := model.FieldSet{Name: h.fields.Name, Fields: h.fields.Sorted()}
	return c.JSON(fiber.Map{"data": set})
}

// GetRecord handles GET /records/:id
func (h *Handler) GetRecord(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.store.Record(c.Params("id"))})
}

// Form handles GET /records/:id/form
func (h *Handler) Form(c *fiber.Ctx) error {
	return h.renderForm(c, c.Params("id"), nil, fiber.StatusOK)
}

// SubmitForm handles POST /records/:id/form. The browser's hidden inputs are
// the committed list entries, so each list is rebuilt from them; text left in
// an add box is committed too, which keeps the form usable without the glue
// script. Scalar fields that fail their type hint leave the record untouched
// and re-render the form with per-field errors.
func (h *Handler) SubmitForm(c *fiber.Ctx) error {
	id := c.Params("id")
	payload := map[string][]string{}

	if _, err := h.store.Mutate(id, func(record model.Record) error {
		for _, field := range h.fields.Sorted() {
			input, err := fieldinput.New(field, record)
			if err != nil {
				return fmt.Errorf("bind field %q: %w", field.FieldName, err)
			}
			if field.FieldType.IsList() {
				h.applyListSubmission(c, input, field)
				continue
			}

			raw := strings.TrimSpace(c.FormValue(field.FieldName))
			if raw == "" {
				continue
			}
			if err := typecheck.Check(field, raw); err != nil {
				payload[field.FieldName] = append(payload[field.FieldName], err.Error())
				continue
			}
			if field.FieldType == model.FieldTypeInt {
				if n, ok := typecheck.ParseInt(raw); ok {
					input.SetScalar(n)
					continue
				}
			}
			input.SetScalar(raw)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("submit form %s: %w", id, err)
	}

	if len(payload) > 0 {
		mapping := render.MapErrorPayload(h.fields, payload)
		return h.renderForm(c, id, &mapping, fiber.StatusUnprocessableEntity)
	}
	return c.Redirect("/records/"+id+"/form", fiber.StatusSeeOther)
}

func (h *Handler) applyListSubmission(c *fiber.Ctx, input *fieldinput.Input, field model.FieldDescriptor) {
	for i := len(input.Entries()) - 1; i >= 0; i-- {
		input.RemoveValue(i)
	}
	for _, raw := range c.Request().PostArgs().PeekMulti(field.FieldName) {
		input.AddValue(string(raw))
	}
	input.SetPending(strings.TrimSpace(c.FormValue(vanilla.PendingInputName(field.FieldName))))
	input.AddValue(input.Pending())
}

type valuePayload struct {
	Value any `json:"value"`
}

// PutScalar handles PUT /records/:id/fields/:name
func (h *Handler) PutScalar(c *fiber.Ctx) error {
	field, appErr := h.resolveField(c)
	if appErr != nil {
		return appErr
	}
	if field.FieldType.IsList() {
		return BadRequestError(fmt.Sprintf("field %s holds a list; use the values endpoints", field.FieldName))
	}

	var payload valuePayload
	if err := c.BodyParser(&payload); err != nil {
		return BadRequestError("invalid request body")
	}

	value, appErr := scalarFromPayload(field, payload.Value)
	if appErr != nil {
		return appErr
	}

	record, err := h.store.Mutate(c.Params("id"), func(record model.Record) error {
		input, err := fieldinput.New(field, record)
		if err != nil {
			return err
		}
		input.SetScalar(value)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", field.FieldName, err)
	}
	return c.JSON(fiber.Map{"data": record})
}

// AddListValue handles POST /records/:id/fields/:name/values
func (h *Handler) AddListValue(c *fiber.Ctx) error {
	field, appErr := h.resolveField(c)
	if appErr != nil {
		return appErr
	}
	if !field.FieldType.IsList() {
		return BadRequestError(fmt.Sprintf("field %s is not list-typed", field.FieldName))
	}

	var payload valuePayload
	if err := c.BodyParser(&payload); err != nil {
		return BadRequestError("invalid request body")
	}
	value, ok := payload.Value.(string)
	if payload.Value != nil && !ok {
		return BadRequestError("value must be a string")
	}

	var added bool
	record, err := h.store.Mutate(c.Params("id"), func(record model.Record) error {
		input, err := fieldinput.New(field, record)
		if err != nil {
			return err
		}
		input.SetPending(value)
		added = input.AddValue(input.Pending())
		return nil
	})
	if err != nil {
		return fmt.Errorf("add value to %s: %w", field.FieldName, err)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"field":  field.FieldName,
		"added":  added,
		"values": record.Entries(field.StorageKey()),
	}})
}

// RemoveListValue handles DELETE /records/:id/fields/:name/values/:index
func (h *Handler) RemoveListValue(c *fiber.Ctx) error {
	field, appErr := h.resolveField(c)
	if appErr != nil {
		return appErr
	}
	if !field.FieldType.IsList() {
		return BadRequestError(fmt.Sprintf("field %s is not list-typed", field.FieldName))
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return BadRequestError("index must be an integer")
	}

	var removed bool
	record, err := h.store.Mutate(c.Params("id"), func(record model.Record) error {
		input, err := fieldinput.New(field, record)
		if err != nil {
			return err
		}
		removed = input.RemoveValue(index)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove value from %s: %w", field.FieldName, err)
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"field":   field.FieldName,
		"removed": removed,
		"values":  record.Entries(field.StorageKey()),
	}})
}

func (h *Handler) renderForm(c *fiber.Ctx, id string, errs *render.ErrorMapping, status int) error {
	options := render.RenderOptions{
		Action: "/records/" + id + "/form",
		Method: fiber.MethodPost,
		Record: h.store.Record(id),
	}
	if errs != nil {
		options.Errors = errs.Fields
		options.FormErrors = errs.Form
	}

	html, err := h.html.Render(c.Context(), h.fields, options)
	if err != nil {
		return fmt.Errorf("render form %s: %w", id, err)
	}
	c.Set(fiber.HeaderContentType, h.html.ContentType())
	return c.Status(status).Send(html)
}

func (h *Handler) resolveField(c *fiber.Ctx) (model.FieldDescriptor, *AppError) {
	name := c.Params("name")
	field, ok := h.fields.Field(name)
	if !ok {
		return model.FieldDescriptor{}, UnknownFieldError(name)
	}
	return field, nil
}

func scalarFromPayload(field model.FieldDescriptor, value any) (any, *AppError) {
	switch v := value.(type) {
	case string:
		raw := strings.TrimSpace(v)
		if err := typecheck.Check(field, raw); err != nil {
			return nil, ValidationError([]ErrorDetail{{Field: field.FieldName, Message: err.Error()}})
		}
		if field.FieldType == model.FieldTypeInt {
			if n, ok := typecheck.ParseInt(raw); ok {
				return n, nil
			}
		}
		return v, nil
	case float64:
		// JSON numbers decode as float64.
		if field.FieldType == model.FieldTypeInt {
			if v != float64(int(v)) {
				return nil, ValidationError([]ErrorDetail{{
					Field:   field.FieldName,
					Message: fmt.Sprintf("%v is not an integer", v),
				}})
			}
			return int(v), nil
		}
		return v, nil
	default:
		return v, nil
	}
}

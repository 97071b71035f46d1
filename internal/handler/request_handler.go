package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/AlissonS47/backend-assessment/internal/domain"
	"github.com/AlissonS47/backend-assessment/internal/middleware"
	"github.com/AlissonS47/backend-assessment/internal/service"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	auth, err := middleware.GetAuthContext(c)
	if err != nil {
		return err
	}

	var input domain.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.Create(c.Context(), auth, input)
	if err != nil {
		return mapRequestError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *RequestHandler) List(c *fiber.Ctx) error {
	auth, err := middleware.GetAuthContext(c)
	if err != nil {
		return err
	}

	var checked *bool
	if v := c.Query("checked"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return middleware.BadRequest("Invalid checked filter")
		}
		checked = &parsed
	}

	requests, err := h.requestService.List(c.Context(), auth, checked)
	if err != nil {
		return mapRequestError(err)
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	auth, err := middleware.GetAuthContext(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.requestService.GetByID(c.Context(), auth, id)
	if err != nil {
		return mapRequestError(err)
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	auth, err := middleware.GetAuthContext(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.UpdateRequestStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.UpdateStatus(c.Context(), auth, id, input)
	if err != nil {
		return mapRequestError(err)
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	auth, err := middleware.GetAuthContext(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	if err := h.requestService.Delete(c.Context(), auth, id); err != nil {
		return mapRequestError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Request successfully cancelled",
	})
}

func mapRequestError(err error) error {
	switch {
	case errors.Is(err, service.ErrActionDenied):
		return middleware.Unauthorized("Action denied")
	case errors.Is(err, service.ErrRequestNotFound):
		return middleware.NotFound("Request not found")
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrAlreadyReviewed):
		return middleware.UnprocessableEntity(err.Error())
	default:
		return err
	}
}

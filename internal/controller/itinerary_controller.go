package controller

import (
	"errors"

	"museum-itinerary-be/internal/dto"
	"museum-itinerary-be/internal/pkg/serverutils"
	"museum-itinerary-be/internal/repository/contract"
	"museum-itinerary-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IItineraryController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Progress(ctx *fiber.Ctx) error
	Hours(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type itineraryController struct {
	service service.IItineraryService
}

func NewItineraryController(service service.IItineraryService) IItineraryController {
	return &itineraryController{service: service}
}

func (c *itineraryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/itineraries")
	h.Post("/generate", c.Generate)
	h.Get("/:id/progress", c.Progress)

	r.Get("/museum/hours", c.Hours)
	r.Get("/ai/health", c.Health)
}

func (c *itineraryController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateItineraryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if req.VisitorName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "visitor_name is required"))
	}

	res, err := c.service.Generate(ctx.Context(), &req)
	if err != nil {
		var hoursErr *service.HoursClosedError
		if errors.As(err, &hoursErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(
				serverutils.ErrorResponseWithDetail(400, hoursErr.Message, fiber.Map{"schedule": hoursErr.Schedule}))
		}
		if errors.Is(err, service.ErrNoCandidates) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *itineraryController) Progress(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid itinerary id"))
	}

	res, err := c.service.Progress(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Itinerary not found"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}

func (c *itineraryController) Hours(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Hours())
}

func (c *itineraryController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Health(ctx.Context()))
}

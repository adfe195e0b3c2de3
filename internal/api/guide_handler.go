package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Bozotek/pickaguide-api/internal/service"
)

type GuideHandler struct {
	guideService service.GuideService
	validate     *validator.Validate
}

func NewGuideHandler(guideService service.GuideService) *GuideHandler {
	return &GuideHandler{
		guideService: guideService,
		validate:     validator.New(),
	}
}

func (h *GuideHandler) BecomeGuide(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.guideService.BecomeGuide(c.Context(), userID); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "You are now a guide"})
}

func (h *GuideHandler) Retire(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.guideService.Retire(c.Context(), userID); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "You are no longer a guide"})
}

func (h *GuideHandler) GuideStatus(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	isGuide, err := h.guideService.IsGuide(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	isBlocking, err := h.guideService.IsBlocking(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"isGuide":    isGuide,
		"isBlocking": isBlocking,
	})
}

type SetBlockingRequest struct {
	Blocking *bool `json:"blocking" validate:"required"`
}

func (h *GuideHandler) SetBlocking(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request SetBlockingRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	if err := h.guideService.SetBlocking(c.Context(), userID, *request.Blocking); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"isBlocking": *request.Blocking})
}

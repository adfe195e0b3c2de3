package api

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/service"
)

type VisitHandler struct {
	visitService service.VisitService
	validate     *validator.Validate
}

func NewVisitHandler(visitService service.VisitService) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
		validate:     validator.New(),
	}
}

type CreateVisitRequest struct {
	AdvertID string    `json:"advertId" validate:"required,uuid"`
	When     time.Time `json:"when" validate:"required"`
}

func (h *VisitHandler) CreateVisit(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request CreateVisitRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	advertID, err := uuid.Parse(request.AdvertID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid advert ID format"})
	}

	visit, err := h.visitService.Create(c.Context(), userID, advertID, request.When)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(visit)
}

func (h *VisitHandler) GetVisit(c *fiber.Ctx) error {
	visitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid visit ID format"})
	}

	visit, err := h.visitService.Get(c.Context(), visitID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(visit)
}

func (h *VisitHandler) ListAsVisitor(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	visits, err := h.visitService.ListForVisitor(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(visits)
}

func (h *VisitHandler) ListAsGuide(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	visits, err := h.visitService.ListForGuide(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(visits)
}

func (h *VisitHandler) AcceptVisit(c *fiber.Ctx) error {
	return h.transition(c, h.visitService.Accept, "Visit accepted")
}

func (h *VisitHandler) DenyVisit(c *fiber.Ctx) error {
	return h.transition(c, h.visitService.Deny, "Visit denied")
}

func (h *VisitHandler) FinishVisit(c *fiber.Ctx) error {
	return h.transition(c, h.visitService.Finish, "Visit finished")
}

func (h *VisitHandler) CancelVisit(c *fiber.Ctx) error {
	return h.transition(c, h.visitService.Cancel, "Visit cancelled")
}

func (h *VisitHandler) transition(
	c *fiber.Ctx,
	op func(ctx context.Context, userID, visitID uuid.UUID) error,
	message string,
) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	visitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid visit ID format"})
	}

	if err := op(c.Context(), userID, visitID); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

type RateVisitRequest struct {
	Rate *float64 `json:"rate" validate:"required,min=0,max=5"`
}

func (h *VisitHandler) RateAsVisitor(c *fiber.Ctx) error {
	return h.rate(c, h.visitService.RateByVisitor)
}

func (h *VisitHandler) RateAsGuide(c *fiber.Ctx) error {
	return h.rate(c, h.visitService.RateByGuide)
}

func (h *VisitHandler) rate(
	c *fiber.Ctx,
	op func(ctx context.Context, userID, visitID uuid.UUID, rate float64) error,
) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	visitID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid visit ID format"})
	}

	var request RateVisitRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	if err := op(c.Context(), userID, visitID, *request.Rate); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Rating saved"})
}

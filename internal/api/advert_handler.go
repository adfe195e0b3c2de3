package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/service"
)

type AdvertHandler struct {
	advertService  service.AdvertService
	commentService service.CommentService
	validate       *validator.Validate
}

func NewAdvertHandler(advertService service.AdvertService, commentService service.CommentService) *AdvertHandler {
	return &AdvertHandler{
		advertService:  advertService,
		commentService: commentService,
		validate:       validator.New(),
	}
}

type AdvertRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,max=1000"`
	City        *string  `json:"city"`
	Hourly      *float64 `json:"hourly"`
}

func (h *AdvertHandler) CreateAdvert(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request AdvertRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	advert, err := h.advertService.Create(c.Context(), userID, service.AdvertInput{
		Title:       request.Title,
		Description: request.Description,
		City:        request.City,
		Hourly:      request.Hourly,
	})

	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(advert)
}

func (h *AdvertHandler) GetAdvert(c *fiber.Ctx) error {
	advertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid advert ID format"})
	}

	advert, err := h.advertService.Get(c.Context(), advertID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(advert)
}

func (h *AdvertHandler) ListAdverts(c *fiber.Ctx) error {
	adverts, err := h.advertService.ListActive(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(adverts)
}

func (h *AdvertHandler) ListOwnAdverts(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	adverts, err := h.advertService.ListByOwner(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(adverts)
}

func (h *AdvertHandler) UpdateAdvert(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	advertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid advert ID format"})
	}

	var request AdvertRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	advert, err := h.advertService.Update(c.Context(), userID, advertID, service.AdvertInput{
		Title:       request.Title,
		Description: request.Description,
		City:        request.City,
		Hourly:      request.Hourly,
	})

	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(advert)
}

func (h *AdvertHandler) ToggleAdvert(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	advertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid advert ID format"})
	}

	active, err := h.advertService.ToggleActive(c.Context(), userID, advertID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"active": active})
}

func (h *AdvertHandler) DeleteAdvert(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	advertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid advert ID format"})
	}

	if err := h.advertService.Delete(c.Context(), userID, advertID); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Advert deleted"})
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}

func (h *AdvertHandler) CreateComment(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	advertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid advert ID format"})
	}

	var request CommentRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	comments, err := h.commentService.Create(c.Context(), userID, advertID, request.Content)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comments)
}

func (h *AdvertHandler) ListComments(c *fiber.Ctx) error {
	advertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid advert ID format"})
	}

	comments, err := h.commentService.ListForAdvert(c.Context(), advertID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

func (h *AdvertHandler) ToggleCommentLike(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	advertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid advert ID format"})
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid comment ID format"})
	}

	comments, err := h.commentService.ToggleLike(c.Context(), userID, advertID, commentID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

func (h *AdvertHandler) DeleteComment(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	advertID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid advert ID format"})
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid comment ID format"})
	}

	comments, err := h.commentService.Remove(c.Context(), userID, advertID, commentID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

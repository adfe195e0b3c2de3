package api

import (
	"bytes"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/model"
	"github.com/Bozotek/pickaguide-api/internal/service"
	"github.com/Bozotek/pickaguide-api/internal/storage"
)

type ProfileHandler struct {
	profileService service.ProfileService
	store          storage.ObjectStore
	validate       *validator.Validate
}

func NewProfileHandler(profileService service.ProfileService, store storage.ObjectStore) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		store:          store,
		validate:       validator.New(),
	}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := h.profileService.Get(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

// UpdateProfileRequest carries a partial update. Absent fields leave the
// stored value untouched; interests, when present, replace the stored
// list wholesale.
type UpdateProfileRequest struct {
	Email       *string    `json:"email" validate:"omitempty,email"`
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	City        *string    `json:"city"`
	Country     *string    `json:"country"`
	Phone       *string    `json:"phone"`
	Description *string    `json:"description"`
	Interests   *[]string  `json:"interests"`
	Birthdate   *time.Time `json:"birthdate"`
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request UpdateProfileRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	patch := service.UserPatch{
		Account: &service.AccountPatch{Email: request.Email},
		Profile: &service.ProfilePatch{
			FirstName:   request.FirstName,
			LastName:    request.LastName,
			City:        request.City,
			Country:     request.Country,
			Phone:       request.Phone,
			Description: request.Description,
			Birthdate:   request.Birthdate,
		},
	}
	if request.Interests != nil {
		interests := model.StringList(*request.Interests)
		patch.Profile.Interests = &interests
	}

	user, err := h.profileService.Update(c.Context(), userID, patch)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(user.Profile)
}

func (h *ProfileHandler) ListProfiles(c *fiber.Ctx) error {
	profiles, err := h.profileService.All(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profiles)
}

func (h *ProfileHandler) SearchProfiles(c *fiber.Ctx) error {
	terms := c.Query("q")

	profiles, err := h.profileService.Search(c.Context(), terms)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profiles)
}

type SetLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

func (h *ProfileHandler) SetLocation(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request SetLocationRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	if err := h.profileService.SetLocation(c.Context(), userID, *request.Latitude, *request.Longitude); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Location updated"})
}

func (h *ProfileHandler) FindNearbyGuides(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	// Distance in meters, defaults to city scale.
	maxDistance := c.QueryFloat("distance", 20000)

	guides, err := h.profileService.FindNear(c.Context(), userID, maxDistance)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(guides)
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty request body"})
	}

	contentType := c.Get("Content-Type", "application/octet-stream")

	key, err := h.profileService.UploadAvatar(c.Context(), userID, bytes.NewReader(body), contentType)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": key})
}

func (h *ProfileHandler) DownloadAvatar(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	body, contentType, err := h.profileService.DownloadAvatar(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	if contentType != "" {
		c.Set("Content-Type", contentType)
	}

	return c.SendStream(body)
}

func (h *ProfileHandler) DeleteAvatar(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.profileService.DeleteAvatar(c.Context(), userID); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Avatar removed"})
}

// PresignAvatarUpload hands out a short-lived direct upload URL so large
// avatars can skip the API.
func (h *ProfileHandler) PresignAvatarUpload(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	key := "avatars/" + userID.String() + "/" + uuid.New().String()

	url, err := h.store.PresignUpload(c.Context(), key)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create upload URL"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": url,
		"key": key,
	})
}

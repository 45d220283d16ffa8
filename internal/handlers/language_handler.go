package handlers

import (
	"pantry-backend/internal/services"
	"pantry-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LanguageHandler struct {
	service services.LanguageService
	logger  *logrus.Logger
}

func NewLanguageHandler(service services.LanguageService, logger *logrus.Logger) *LanguageHandler {
	return &LanguageHandler{
		service: service,
		logger:  logger,
	}
}

// GetLanguages godoc
// @Summary List languages
// @Tags languages
// @Produce json
// @Param active query bool false "Only active languages"
// @Success 200 {object} utils.StandardResponse "List of languages"
// @Router /languages [get]
func (h *LanguageHandler) GetLanguages(c *fiber.Ctx) error {
	ctx := c.Context()

	var (
		languages any
		err       error
	)
	if c.QueryBool("active", false) {
		languages, err = h.service.GetActiveLanguages(ctx)
	} else {
		languages, err = h.service.GetAllLanguages(ctx)
	}
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to retrieve languages")
	}

	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Languages retrieved successfully", languages,
		fiber.Map{"default_language": h.service.DefaultLanguage()})
}

// CreateLanguage godoc
// @Summary Add a language
// @Description The code is validated as a BCP 47 tag and reduced to its base language. An active language is swept for translations
// @Tags languages
// @Accept json
// @Produce json
// @Param language body LanguageRequest true "Language"
// @Success 201 {object} utils.StandardResponse "Language created"
// @Failure 400 {object} utils.StandardResponse "Invalid code"
// @Failure 409 {object} utils.StandardResponse "Language already exists"
// @Router /languages [post]
func (h *LanguageHandler) CreateLanguage(c *fiber.Ctx) error {
	var req LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	language, err := h.service.CreateLanguage(c.Context(), req.Code, req.Name, req.Active)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to create language")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Language created successfully", language)
}

// UpdateLanguages godoc
// @Summary Activate or deactivate languages
// @Description Newly activated languages get translations generated for every category and food item in the background. Deactivation keeps existing translations
// @Tags languages
// @Accept json
// @Produce json
// @Param languages body LanguageBulkRequest true "Activation states"
// @Success 200 {object} utils.StandardResponse "Languages updated"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Unknown language"
// @Router /languages [put]
func (h *LanguageHandler) UpdateLanguages(c *fiber.Ctx) error {
	var req LanguageBulkRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	languages, err := h.service.UpdateLanguages(c.Context(), req.Languages)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to update languages")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Languages updated successfully", languages)
}

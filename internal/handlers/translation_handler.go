package handlers

import (
	"pantry-backend/internal/models"
	"pantry-backend/internal/services"
	"pantry-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type TranslationHandler struct {
	service services.TranslationService
	logger  *logrus.Logger
}

func NewTranslationHandler(service services.TranslationService, logger *logrus.Logger) *TranslationHandler {
	return &TranslationHandler{
		service: service,
		logger:  logger,
	}
}

func entityParams(c *fiber.Ctx) (models.EntityType, uint, bool) {
	entityType := models.EntityType(c.Params("entityType"))
	id, ok := parseID(c, "entityId")
	if !entityType.Valid() || !ok {
		return "", 0, false
	}
	return entityType, id, true
}

// GetTranslations godoc
// @Summary List translations of a category or food item
// @Tags translations
// @Produce json
// @Param entityType path string true "Entity type" Enums(category, food_item)
// @Param entityId path int true "Entity ID"
// @Success 200 {object} utils.StandardResponse "Translations"
// @Failure 400 {object} utils.StandardResponse "Invalid entity"
// @Failure 404 {object} utils.StandardResponse "Entity not found"
// @Router /translations/{entityType}/{entityId} [get]
func (h *TranslationHandler) GetTranslations(c *fiber.Ctx) error {
	entityType, id, ok := entityParams(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entity type or ID")
	}

	rows, err := h.service.GetTranslations(c.Context(), entityType, id)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to retrieve translations")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Translations retrieved successfully", rows)
}

// SetManualTranslation godoc
// @Summary Set a translation by hand
// @Description Stores a manual translation that automatic runs will not overwrite
// @Tags translations
// @Accept json
// @Produce json
// @Param entityType path string true "Entity type" Enums(category, food_item)
// @Param entityId path int true "Entity ID"
// @Param languageCode path string true "Language code"
// @Param translation body ManualTranslationRequest true "Translation"
// @Success 200 {object} utils.StandardResponse "Translation saved"
// @Failure 400 {object} utils.StandardResponse "Invalid input"
// @Failure 404 {object} utils.StandardResponse "Entity or language not found"
// @Router /translations/{entityType}/{entityId}/{languageCode} [put]
func (h *TranslationHandler) SetManualTranslation(c *fiber.Ctx) error {
	entityType, id, ok := entityParams(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entity type or ID")
	}

	var req ManualTranslationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	row, err := h.service.SetManualTranslation(c.Context(), entityType, id, c.Params("languageCode"), req.TranslatedText)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to save translation")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Translation saved successfully", row)
}

// RegenerateTranslations godoc
// @Summary Regenerate automatic translations
// @Description Queues an automatic translation run for the entity and returns immediately
// @Tags translations
// @Produce json
// @Param entityType path string true "Entity type" Enums(category, food_item)
// @Param entityId path int true "Entity ID"
// @Success 202 {object} utils.StandardResponse "Regeneration queued"
// @Failure 404 {object} utils.StandardResponse "Entity not found"
// @Failure 503 {object} utils.StandardResponse "Translation queue unavailable"
// @Router /translations/{entityType}/{entityId}/regenerate [post]
func (h *TranslationHandler) RegenerateTranslations(c *fiber.Ctx) error {
	entityType, id, ok := entityParams(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entity type or ID")
	}

	if err := h.service.RegenerateTranslations(c.Context(), entityType, id); err != nil {
		return handleServiceError(c, h.logger, err, "Failed to queue translations")
	}
	return utils.SuccessResponse(c, fiber.StatusAccepted, "Translation regeneration queued", nil)
}

// DeleteTranslation godoc
// @Summary Delete a translation
// @Tags translations
// @Produce json
// @Param id path int true "Translation ID"
// @Success 200 {object} utils.StandardResponse "Translation deleted"
// @Failure 404 {object} utils.StandardResponse "Translation not found"
// @Router /translations/{id} [delete]
func (h *TranslationHandler) DeleteTranslation(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid translation ID")
	}

	if err := h.service.DeleteTranslation(c.Context(), id); err != nil {
		return handleServiceError(c, h.logger, err, "Failed to delete translation")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Translation deleted successfully", nil)
}

// Translate godoc
// @Summary Translate free text
// @Description Translates text on demand without storing it
// @Tags translations
// @Accept json
// @Produce json
// @Param request body TranslateRequest true "Text and target language"
// @Success 200 {object} utils.StandardResponse "Translated text"
// @Failure 400 {object} utils.StandardResponse "Invalid input"
// @Failure 502 {object} utils.StandardResponse "Translation provider error"
// @Router /translate [post]
func (h *TranslationHandler) Translate(c *fiber.Ctx) error {
	var req TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	translated, err := h.service.TranslateText(c.Context(), req.Text, req.LanguageCode)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to translate text")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Text translated successfully", TranslateResponse{
		Text:           req.Text,
		LanguageCode:   req.LanguageCode,
		TranslatedText: translated,
	})
}

// GetStatus godoc
// @Summary Translation pipeline status
// @Description Provider name and background queue counters
// @Tags translations
// @Produce json
// @Success 200 {object} utils.StandardResponse "Status"
// @Router /translations/status [get]
func (h *TranslationHandler) GetStatus(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, "Translation status retrieved successfully", h.service.GetStatus())
}

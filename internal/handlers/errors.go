package handlers

import (
	"errors"
	"strconv"

	"pantry-backend/internal/services"
	"pantry-backend/internal/translation"
	"pantry-backend/internal/utils"
	"pantry-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// handleServiceError maps service errors onto the response envelope. Errors
// that are not recognised are logged and reported as 500 with fallback.
func handleServiceError(c *fiber.Ctx, logger *logrus.Logger, err error, fallback string) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		code := fiber.StatusBadRequest
		if verr.Kind == validation.KindDuplicateName {
			code = fiber.StatusConflict
		}
		return utils.RuleErrorResponse(c, code, verr.Message, string(verr.Kind))
	case errors.Is(err, services.ErrInvalidInput):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		return utils.ErrorResponse(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrFoodItemNotFound),
		errors.Is(err, services.ErrLanguageNotFound),
		errors.Is(err, services.ErrTranslationNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrQueueUnavailable):
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, translation.ErrTranslationFailed):
		logger.WithError(err).WithField("path", c.Path()).Warn("Translation provider error")
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Translation failed, please try again later")
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(fallback)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback)
}

func parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

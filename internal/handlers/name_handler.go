package handlers

import (
	"pantry-backend/internal/utils"
	"pantry-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PreviewName godoc
// @Summary Preview a name while typing
// @Description Cleans up live input the way the admin form does and returns the Title Case preview with warnings. Nothing is stored; the name is validated again on save
// @Tags names
// @Accept json
// @Produce json
// @Param request body NamePreviewRequest true "Raw input"
// @Success 200 {object} utils.StandardResponse "Preview"
// @Router /names/preview [post]
func PreviewName(c *fiber.Ctx) error {
	var req NamePreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	preview := validation.SanitizeInput(req.Name)
	data := fiber.Map{
		"value":    preview.Value,
		"preview":  preview.Preview,
		"warnings": preview.Warnings,
	}
	if _, err := validation.CheckFormat(preview.Value); err != nil {
		data["error"] = err.Error()
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Name preview generated", data)
}

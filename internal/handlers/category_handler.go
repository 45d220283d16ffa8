package handlers

import (
	"pantry-backend/internal/services"
	"pantry-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	service services.CategoryService
	logger  *logrus.Logger
}

func NewCategoryHandler(service services.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllCategories godoc
// @Summary Get all categories
// @Description List categories ordered by name, with the number of food items in each
// @Tags categories
// @Produce json
// @Success 200 {object} utils.StandardResponse "List of categories"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /categories [get]
func (h *CategoryHandler) GetAllCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.Context())
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to retrieve categories")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Categories retrieved successfully", categories)
}

// GetCategoryByID godoc
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} utils.StandardResponse "Category details"
// @Failure 400 {object} utils.StandardResponse "Invalid category ID"
// @Failure 404 {object} utils.StandardResponse "Category not found"
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	category, err := h.service.GetCategoryByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to retrieve category")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category retrieved successfully", category)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Validates and normalizes the name, then queues automatic translations
// @Tags categories
// @Accept json
// @Produce json
// @Param category body CategoryRequest true "Category"
// @Success 201 {object} utils.StandardResponse "Category created"
// @Failure 400 {object} utils.StandardResponse "Name rule violated"
// @Failure 409 {object} utils.StandardResponse "Name already in use"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	category, err := h.service.CreateCategory(c.Context(), req.Name)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to create category")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Category created successfully", category)
}

// UpdateCategory godoc
// @Summary Rename a category
// @Description Translations are regenerated only when the normalized name changes
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body CategoryUpdateRequest true "Category"
// @Success 200 {object} utils.StandardResponse "Category updated"
// @Failure 400 {object} utils.StandardResponse "Name rule violated"
// @Failure 404 {object} utils.StandardResponse "Category not found"
// @Failure 409 {object} utils.StandardResponse "Name already in use"
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var req CategoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	category, err := h.service.UpdateCategory(c.Context(), id, req.Name)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to update category")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category updated successfully", category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Removes the category and its translations; its food items become uncategorized
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} utils.StandardResponse "Category deleted"
// @Failure 404 {object} utils.StandardResponse "Category not found"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	if err := h.service.DeleteCategory(c.Context(), id); err != nil {
		return handleServiceError(c, h.logger, err, "Failed to delete category")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category deleted successfully", nil)
}

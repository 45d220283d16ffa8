package handlers

import (
	"strconv"

	"pantry-backend/internal/repository"
	"pantry-backend/internal/services"
	"pantry-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const maxPageSize = 100

type FoodItemHandler struct {
	service services.FoodItemService
	logger  *logrus.Logger
}

func NewFoodItemHandler(service services.FoodItemService, logger *logrus.Logger) *FoodItemHandler {
	return &FoodItemHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllFoodItems godoc
// @Summary Get all food items
// @Description List food items with pagination, search, category filter and sorting
// @Tags food-items
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by name"
// @Param category_id query int false "Only items in this category"
// @Param sort_by query string false "Sort by field (id, name, quantity, created_at, updated_at)" default(name)
// @Param order query string false "Sort order (ASC/DESC)" default(ASC)
// @Success 200 {object} utils.StandardResponse "List of food items"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /food-items [get]
func (h *FoodItemHandler) GetAllFoodItems(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = 20
	}

	filter := repository.FoodItemFilter{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search", ""),
		SortBy: c.Query("sort_by", "name"),
		Order:  c.Query("order", "ASC"),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid category_id")
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}

	items, total, err := h.service.GetAllFoodItems(c.Context(), filter)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to retrieve food items")
	}

	out := make([]FoodItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newFoodItemResponse(item, h.service.DefaultItemLimit()))
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Food items retrieved successfully", out, meta)
}

// GetFoodItemByID godoc
// @Summary Get food item by ID
// @Tags food-items
// @Produce json
// @Param id path int true "Food item ID"
// @Success 200 {object} utils.StandardResponse "Food item details"
// @Failure 400 {object} utils.StandardResponse "Invalid food item ID"
// @Failure 404 {object} utils.StandardResponse "Food item not found"
// @Router /food-items/{id} [get]
func (h *FoodItemHandler) GetFoodItemByID(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid food item ID")
	}

	item, err := h.service.GetFoodItemByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to retrieve food item")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Food item retrieved successfully",
		newFoodItemResponse(*item, h.service.DefaultItemLimit()))
}

// CreateFoodItem godoc
// @Summary Create a food item
// @Description Validates and normalizes the name, then queues automatic translations
// @Tags food-items
// @Accept json
// @Produce json
// @Param item body FoodItemRequest true "Food item"
// @Success 201 {object} utils.StandardResponse "Food item created"
// @Failure 400 {object} utils.StandardResponse "Invalid input"
// @Failure 409 {object} utils.StandardResponse "Name already in use"
// @Router /food-items [post]
func (h *FoodItemHandler) CreateFoodItem(c *fiber.Ctx) error {
	var req FoodItemRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	item, err := h.service.CreateFoodItem(c.Context(), req.toInput())
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to create food item")
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, "Food item created successfully",
		newFoodItemResponse(*item, h.service.DefaultItemLimit()))
}

// UpdateFoodItem godoc
// @Summary Update a food item
// @Description Replaces the item's attributes; name is optional. Translations are regenerated only on rename
// @Tags food-items
// @Accept json
// @Produce json
// @Param id path int true "Food item ID"
// @Param item body FoodItemRequest true "Food item"
// @Success 200 {object} utils.StandardResponse "Food item updated"
// @Failure 400 {object} utils.StandardResponse "Invalid input"
// @Failure 404 {object} utils.StandardResponse "Food item not found"
// @Failure 409 {object} utils.StandardResponse "Name already in use"
// @Router /food-items/{id} [put]
func (h *FoodItemHandler) UpdateFoodItem(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid food item ID")
	}

	var req FoodItemRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	item, err := h.service.UpdateFoodItem(c.Context(), id, req.toInput())
	if err != nil {
		return handleServiceError(c, h.logger, err, "Failed to update food item")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Food item updated successfully",
		newFoodItemResponse(*item, h.service.DefaultItemLimit()))
}

// DeleteFoodItem godoc
// @Summary Delete a food item
// @Description Removes the item, its translations and its uploaded image
// @Tags food-items
// @Produce json
// @Param id path int true "Food item ID"
// @Success 200 {object} utils.StandardResponse "Food item deleted"
// @Failure 404 {object} utils.StandardResponse "Food item not found"
// @Router /food-items/{id} [delete]
func (h *FoodItemHandler) DeleteFoodItem(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid food item ID")
	}

	if err := h.service.DeleteFoodItem(c.Context(), id); err != nil {
		return handleServiceError(c, h.logger, err, "Failed to delete food item")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Food item deleted successfully", nil)
}

package repository

import (
	"context"
	"errors"
	"strings"

	"pantry-backend/internal/database"
	"pantry-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FoodItemFilter selects one page of food items.
type FoodItemFilter struct {
	Page       int
	Limit      int
	Search     string
	CategoryID *uint
	SortBy     string
	Order      string
}

var foodItemSortFields = map[string]bool{
	"id": true, "name": true, "quantity": true, "created_at": true, "updated_at": true,
}

type FoodItemRepository interface {
	Create(ctx context.Context, item *models.FoodItem) error
	Update(ctx context.Context, item *models.FoodItem) error
	// Delete removes the item and its translations in one transaction.
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.FoodItem, error)
	FindAll(ctx context.Context, filter FoodItemFilter) ([]models.FoodItem, int64, error)
	FindRecent(ctx context.Context, limit int) ([]models.FoodItem, error)
	Count(ctx context.Context) (int64, error)
}

type foodItemRepository struct {
	base
}

func NewFoodItemRepository(db *database.Database) FoodItemRepository {
	return &foodItemRepository{base: newBase(db)}
}

func (r *foodItemRepository) Create(ctx context.Context, item *models.FoodItem) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

func (r *foodItemRepository) Update(ctx context.Context, item *models.FoodItem) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error)
}

func (r *foodItemRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.FoodItem{}, id).Error; err != nil {
			return err
		}
		return deleteTranslations(tx, models.EntityTypeFoodItem, id)
	})
}

func (r *foodItemRepository) FindByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var item models.FoodItem
	err := r.db.WithContext(ctx).Preload("Category").First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *foodItemRepository) FindAll(ctx context.Context, filter FoodItemFilter) ([]models.FoodItem, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var items []models.FoodItem
	var total int64

	query := r.db.WithContext(ctx).Model(&models.FoodItem{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if !foodItemSortFields[sortBy] {
		sortBy = "name"
	}
	order := "ASC"
	if strings.EqualFold(filter.Order, "desc") {
		order = "DESC"
	}
	query = query.Order(sortBy + " " + order)

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	if err := query.Preload("Category").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *foodItemRepository) FindRecent(ctx context.Context, limit int) ([]models.FoodItem, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var items []models.FoodItem
	err := r.db.WithContext(ctx).Preload("Category").Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *foodItemRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&models.FoodItem{}).Count(&n).Error
	return n, err
}

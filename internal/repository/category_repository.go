package repository

import (
	"context"
	"errors"

	"pantry-backend/internal/database"
	"pantry-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	// Delete removes the category and its translations. Items in the category
	// are detached. Create and Update return ErrDuplicateName on a name clash.
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type categoryRepository struct {
	base
}

func NewCategoryRepository(db *database.Database) CategoryRepository {
	return &categoryRepository{base: newBase(db)}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error)
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return writeError(r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error)
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Postgres applies ON DELETE SET NULL; done explicitly so it also
		// holds for databases migrated without the constraint.
		if err := tx.Model(&models.FoodItem{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return err
		}
		return deleteTranslations(tx, models.EntityTypeCategory, id)
	})
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var category models.Category
	db := r.db.WithContext(ctx)
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if err := db.Model(&models.FoodItem{}).Where("category_id = ?", id).Count(&category.ItemCount).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var categories []models.Category
	db := r.db.WithContext(ctx)
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		CategoryID uint
		Count      int64
	}
	var counts []countRow
	if err := db.Model(&models.FoodItem{}).
		Select("category_id, COUNT(*) as count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byID[c.CategoryID] = c.Count
	}
	for i := range categories {
		categories[i].ItemCount = byID[categories[i].ID]
	}
	return categories, nil
}

func (r *categoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&n).Error
	return n, err
}

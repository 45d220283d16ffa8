package repository

import (
	"context"
	"errors"

	"pantry-backend/internal/database"
	"pantry-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LanguageRepository interface {
	Create(ctx context.Context, language *models.Language) error
	FindByCode(ctx context.Context, code string) (*models.Language, error)
	FindAll(ctx context.Context) ([]models.Language, error)
	// FindActive returns active languages ordered by code.
	FindActive(ctx context.Context) ([]models.Language, error)
	// SeedMissing inserts the given languages, leaving existing codes untouched.
	SeedMissing(ctx context.Context, languages []models.Language) error
	// SetActive applies all activation changes in one transaction.
	SetActive(ctx context.Context, states []models.LanguageState) error
	CountActive(ctx context.Context) (int64, error)
}

type languageRepository struct {
	base
}

func NewLanguageRepository(db *database.Database) LanguageRepository {
	return &languageRepository{base: newBase(db)}
}

func (r *languageRepository) Create(ctx context.Context, language *models.Language) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(language).Error
}

func (r *languageRepository) FindByCode(ctx context.Context, code string) (*models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var language models.Language
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&language).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &language, nil
}

func (r *languageRepository) FindAll(ctx context.Context) ([]models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var languages []models.Language
	err := r.db.WithContext(ctx).Order("code ASC").Find(&languages).Error
	return languages, err
}

func (r *languageRepository) FindActive(ctx context.Context) ([]models.Language, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var languages []models.Language
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("code ASC").Find(&languages).Error
	return languages, err
}

func (r *languageRepository) SeedMissing(ctx context.Context, languages []models.Language) error {
	if len(languages) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&languages).Error
}

func (r *languageRepository) SetActive(ctx context.Context, states []models.LanguageState) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range states {
			if err := tx.Model(&models.Language{}).Where("code = ?", s.Code).
				Update("active", s.Active).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *languageRepository) CountActive(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&models.Language{}).Where("active = ?", true).Count(&n).Error
	return n, err
}

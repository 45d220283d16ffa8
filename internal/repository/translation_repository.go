package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pantry-backend/internal/database"
	"pantry-backend/internal/models"
	"pantry-backend/internal/translation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TranslationRepository interface {
	FindByKey(ctx context.Context, entityType models.EntityType, entityID, languageID uint) (*models.Translation, error)
	FindByID(ctx context.Context, id uint) (*models.Translation, error)
	// ListForEntity returns an entity's translations with their language, ordered by code.
	ListForEntity(ctx context.Context, entityType models.EntityType, entityID uint) ([]models.Translation, error)
	UpsertAutomatic(ctx context.Context, t *models.Translation, preserveManual bool) (bool, error)
	UpsertManual(ctx context.Context, t *models.Translation) error
	DeleteByID(ctx context.Context, id uint) error
	Coverage(ctx context.Context) ([]models.TranslationCoverage, error)
}

type translationRepository struct {
	base
}

func NewTranslationRepository(db *database.Database) TranslationRepository {
	return &translationRepository{base: newBase(db)}
}

var translationKey = []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}, {Name: "language_id"}}

func (r *translationRepository) FindByKey(ctx context.Context, entityType models.EntityType, entityID, languageID uint) (*models.Translation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var t models.Translation
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND language_id = ?", entityType, entityID, languageID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *translationRepository) FindByID(ctx context.Context, id uint) (*models.Translation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var t models.Translation
	if err := r.db.WithContext(ctx).Preload("Language").First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *translationRepository) ListForEntity(ctx context.Context, entityType models.EntityType, entityID uint) ([]models.Translation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []models.Translation
	err := r.db.WithContext(ctx).
		Joins("Language").
		Where("translations.entity_type = ? AND translations.entity_id = ?", entityType, entityID).
		Order(`"Language"."code" ASC`).
		Find(&rows).Error
	return rows, err
}

const upsertAutomaticSQL = `INSERT INTO translations
(entity_type, entity_id, language_id, translated_text, is_automatic, created_at, updated_at)
SELECT ?, ?, ?, ?, true, ?, ?
WHERE EXISTS (SELECT 1 FROM %s WHERE id = ? FOR SHARE)
ON CONFLICT (entity_type, entity_id, language_id) DO UPDATE
SET translated_text = excluded.translated_text, is_automatic = true, updated_at = excluded.updated_at`

type upsertedRow struct {
	ID        uint
	CreatedAt time.Time
}

// UpsertAutomatic writes an automatic translation and reports whether a row
// was stored. The insert only happens while the entity row exists and holds
// a share lock on it, so it cannot outlive a concurrent delete; a missing
// entity returns translation.ErrEntityNotFound. With preserveManual the
// conflict update skips rows that are no longer automatic and reports false.
func (r *translationRepository) UpsertAutomatic(ctx context.Context, t *models.Translation, preserveManual bool) (bool, error) {
	table := tableFor(t.EntityType)
	if table == "" {
		return false, fmt.Errorf("%w: %s %d", translation.ErrEntityNotFound, t.EntityType, t.EntityID)
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf(upsertAutomaticSQL, table)
	if preserveManual {
		query += "\nWHERE translations.is_automatic = true"
	}
	query += "\nRETURNING id, created_at"

	now := r.db.NowFunc()
	t.IsAutomatic = true
	t.UpdatedAt = now

	var stored []upsertedRow
	err := r.db.WithContext(ctx).
		Raw(query, t.EntityType, t.EntityID, t.LanguageID, t.TranslatedText, now, now, t.EntityID).
		Scan(&stored).Error
	if err != nil {
		return false, err
	}
	if len(stored) > 0 {
		t.ID = stored[0].ID
		t.CreatedAt = stored[0].CreatedAt
		return true, nil
	}

	var ids []uint
	if err := r.db.WithContext(ctx).Table(table).Where("id = ?", t.EntityID).Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	if len(ids) == 0 {
		return false, fmt.Errorf("%w: %s %d", translation.ErrEntityNotFound, t.EntityType, t.EntityID)
	}
	return false, nil
}

func (r *translationRepository) UpsertManual(ctx context.Context, t *models.Translation) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	t.IsAutomatic = false
	return r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   translationKey,
		DoUpdates: clause.AssignmentColumns([]string{"translated_text", "is_automatic", "updated_at"}),
	}).Create(t).Error
}

func (r *translationRepository) DeleteByID(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&models.Translation{}, id).Error
}

func (r *translationRepository) Coverage(ctx context.Context) ([]models.TranslationCoverage, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var results []models.TranslationCoverage
	err := r.db.WithContext(ctx).Model(&models.Language{}).
		Select(`languages.code as code, languages.name as label,
			COUNT(translations.id) FILTER (WHERE translations.is_automatic) as automatic,
			COUNT(translations.id) FILTER (WHERE NOT translations.is_automatic) as manual`).
		Joins("LEFT JOIN translations ON translations.language_id = languages.id").
		Where("languages.active = ?", true).
		Group("languages.code, languages.name").
		Order("languages.code ASC").
		Scan(&results).Error
	return results, err
}

func deleteTranslations(tx *gorm.DB, entityType models.EntityType, entityID uint) error {
	return tx.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Delete(&models.Translation{}).Error
}

package repository

import (
	"context"

	"pantry-backend/internal/database"
	"pantry-backend/internal/models"
	"pantry-backend/internal/translation"
	"pantry-backend/internal/validation"
)

// EntityRepository reads categories and food items as translatable names and
// answers cross-collection name lookups for the validator.
type EntityRepository struct {
	base
}

func NewEntityRepository(db *database.Database) *EntityRepository {
	return &EntityRepository{base: newBase(db)}
}

type nameRow struct {
	ID   uint
	Name string
}

var entityTables = []struct {
	entityType models.EntityType
	table      string
}{
	{models.EntityTypeCategory, "categories"},
	{models.EntityTypeFoodItem, "food_items"},
}

func tableFor(entityType models.EntityType) string {
	for _, t := range entityTables {
		if t.entityType == entityType {
			return t.table
		}
	}
	return ""
}

func (r *EntityRepository) FindEntity(ctx context.Context, entityType models.EntityType, id uint) (*translation.Entity, error) {
	table := tableFor(entityType)
	if table == "" {
		return nil, nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []nameRow
	if err := r.db.WithContext(ctx).Table(table).Select("id, name").Where("id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &translation.Entity{Type: entityType, ID: rows[0].ID, Name: rows[0].Name}, nil
}

func (r *EntityRepository) ListEntities(ctx context.Context) ([]translation.Entity, error) {
	return r.list(ctx, 0)
}

func (r *EntityRepository) ListEntitiesMissingLanguage(ctx context.Context, languageID uint) ([]translation.Entity, error) {
	return r.list(ctx, languageID)
}

// list returns categories then food items, each ordered by id. A non-zero
// missingLanguage keeps only entities without a translation in that language.
func (r *EntityRepository) list(ctx context.Context, missingLanguage uint) ([]translation.Entity, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var out []translation.Entity
	for _, t := range entityTables {
		query := r.db.WithContext(ctx).Table(t.table).Select("id, name").Order("id ASC")
		if missingLanguage != 0 {
			query = query.Where(
				"NOT EXISTS (SELECT 1 FROM translations tr WHERE tr.entity_type = ? AND tr.entity_id = "+t.table+".id AND tr.language_id = ?)",
				t.entityType, missingLanguage,
			)
		}

		var rows []nameRow
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out = append(out, translation.Entity{Type: t.entityType, ID: row.ID, Name: row.Name})
		}
	}
	return out, nil
}

// FindNameMatches returns every category and food item whose name equals name ignoring case.
func (r *EntityRepository) FindNameMatches(ctx context.Context, name string) ([]validation.NameMatch, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var matches []validation.NameMatch
	for _, t := range entityTables {
		var rows []nameRow
		if err := r.db.WithContext(ctx).Table(t.table).Select("id, name").
			Where("LOWER(name) = LOWER(?)", name).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			matches = append(matches, validation.NameMatch{Type: t.entityType, ID: row.ID, Name: row.Name})
		}
	}
	return matches, nil
}

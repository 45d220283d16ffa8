package models

import "time"

// EntityType identifies which table a translated name belongs to.
type EntityType string

const (
	EntityTypeCategory EntityType = "category"
	EntityTypeFoodItem EntityType = "food_item"
)

// Valid reports whether t names a translatable entity.
func (t EntityType) Valid() bool {
	return t == EntityTypeCategory || t == EntityTypeFoodItem
}

// Label is the human-readable form used in messages ("category", "food item").
func (t EntityType) Label() string {
	if t == EntityTypeFoodItem {
		return "food item"
	}
	return string(t)
}

// Translation holds a name of a category or food item in one language.
// At most one row exists per (entity_type, entity_id, language_id).
type Translation struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	EntityType     EntityType `gorm:"not null;size:20;uniqueIndex:idx_translations_entity_language,priority:1" json:"entity_type"`
	EntityID       uint       `gorm:"not null;uniqueIndex:idx_translations_entity_language,priority:2" json:"entity_id"`
	LanguageID     uint       `gorm:"not null;uniqueIndex:idx_translations_entity_language,priority:3" json:"language_id"`
	Language       *Language  `gorm:"foreignKey:LanguageID;constraint:OnDelete:CASCADE" json:"language,omitempty"`
	TranslatedText string     `gorm:"not null" json:"translated_text"`
	IsAutomatic    bool       `gorm:"not null" json:"is_automatic"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Translation) TableName() string {
	return "translations"
}

// TranslationCoverage counts translations stored for one language.
type TranslationCoverage struct {
	Code      string `json:"code" example:"es"`
	Label     string `json:"label" example:"Spanish"`
	Automatic int64  `json:"automatic" example:"42"`
	Manual    int64  `json:"manual" example:"3"`
}

type DashboardStats struct {
	TotalCategories     int64                 `json:"total_categories" example:"12"`
	TotalFoodItems      int64                 `json:"total_food_items" example:"140"`
	ActiveLanguages     int64                 `json:"active_languages" example:"3"`
	TranslationCoverage []TranslationCoverage `json:"translation_coverage"`
	RecentlyAdded       []FoodItem            `json:"recently_added"`
}

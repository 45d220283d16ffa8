package models

import "time"

type FoodItem struct {
	ID         uint      `gorm:"primaryKey" json:"id" example:"1"`
	Name       string    `gorm:"not null;size:36;uniqueIndex" json:"name" example:"Black Beans"`
	CategoryID *uint     `gorm:"index" json:"category_id" example:"1"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	// ItemLimit caps how many units one client may take; nil falls back to the global default.
	ItemLimit  *int      `json:"item_limit" example:"2"`
	Quantity   int       `gorm:"not null;default:0" json:"quantity" example:"40"`
	ImageURL   string    `json:"image_url"`
	Vegetarian bool      `gorm:"not null;default:false" json:"vegetarian"`
	Vegan      bool      `gorm:"not null;default:false" json:"vegan"`
	GlutenFree bool      `gorm:"not null;default:false" json:"gluten_free"`
	Halal      bool      `gorm:"not null;default:false" json:"halal"`
	Kosher     bool      `gorm:"not null;default:false" json:"kosher"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`
}

func (FoodItem) TableName() string {
	return "food_items"
}

// EffectiveLimit returns the item's own limit or the provided default.
func (f *FoodItem) EffectiveLimit(defaultLimit int) int {
	if f.ItemLimit != nil {
		return *f.ItemLimit
	}
	return defaultLimit
}

package handlers

import (
	"pantry-backend/internal/models"
	"pantry-backend/internal/services"
)

type CategoryRequest struct {
	Name string `json:"name" example:"Canned Goods"`
}

// CategoryUpdateRequest renames a category; omit name to leave it unchanged.
type CategoryUpdateRequest struct {
	Name *string `json:"name" example:"Canned Vegetables"`
}

type FoodItemRequest struct {
	Name       *string `json:"name" example:"Black Beans"`
	CategoryID *uint   `json:"category_id" example:"1"`
	ItemLimit  *int    `json:"item_limit" example:"2"`
	Quantity   int     `json:"quantity" example:"40"`
	ImageURL   string  `json:"image_url"`
	Vegetarian bool    `json:"vegetarian"`
	Vegan      bool    `json:"vegan"`
	GlutenFree bool    `json:"gluten_free"`
	Halal      bool    `json:"halal"`
	Kosher     bool    `json:"kosher"`
}

func (r FoodItemRequest) toInput() services.FoodItemInput {
	return services.FoodItemInput{
		Name:       r.Name,
		CategoryID: r.CategoryID,
		ItemLimit:  r.ItemLimit,
		Quantity:   r.Quantity,
		ImageURL:   r.ImageURL,
		Vegetarian: r.Vegetarian,
		Vegan:      r.Vegan,
		GlutenFree: r.GlutenFree,
		Halal:      r.Halal,
		Kosher:     r.Kosher,
	}
}

// FoodItemResponse adds the limit that applies to the item after defaults.
type FoodItemResponse struct {
	models.FoodItem
	EffectiveLimit int `json:"effective_limit" example:"2"`
}

func newFoodItemResponse(item models.FoodItem, defaultLimit int) FoodItemResponse {
	return FoodItemResponse{FoodItem: item, EffectiveLimit: item.EffectiveLimit(defaultLimit)}
}

type LanguageRequest struct {
	Code   string `json:"code" example:"it"`
	Name   string `json:"name" example:"Italian"`
	Active bool   `json:"active" example:"true"`
}

type LanguageBulkRequest struct {
	Languages []models.LanguageState `json:"languages"`
}

type ManualTranslationRequest struct {
	TranslatedText string `json:"translated_text" example:"Frijoles negros"`
}

type TranslateRequest struct {
	Text         string `json:"text" example:"Please take one bag per family"`
	LanguageCode string `json:"language_code" example:"es"`
}

type TranslateResponse struct {
	Text           string `json:"text"`
	LanguageCode   string `json:"language_code"`
	TranslatedText string `json:"translated_text"`
}

type NamePreviewRequest struct {
	Name string `json:"name" example:"canned  beans"`
}

package routes

import (
	"pantry-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything mounted under /api/v1.
type Handlers struct {
	Category    *handlers.CategoryHandler
	FoodItem    *handlers.FoodItemHandler
	Language    *handlers.LanguageHandler
	Translation *handlers.TranslationHandler
	Dashboard   *handlers.DashboardHandler
	Upload      *handlers.UploadHandler
}

func Setup(app *fiber.App, h Handlers) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	categories := v1.Group("/categories")
	{
		categories.Get("/", h.Category.GetAllCategories)
		categories.Get("/:id", h.Category.GetCategoryByID)
		categories.Post("/", h.Category.CreateCategory)
		categories.Put("/:id", h.Category.UpdateCategory)
		categories.Delete("/:id", h.Category.DeleteCategory)
	}

	items := v1.Group("/food-items")
	{
		items.Get("/", h.FoodItem.GetAllFoodItems)
		items.Get("/:id", h.FoodItem.GetFoodItemByID)
		items.Post("/", h.FoodItem.CreateFoodItem)
		items.Put("/:id", h.FoodItem.UpdateFoodItem)
		items.Delete("/:id", h.FoodItem.DeleteFoodItem)
	}

	languages := v1.Group("/languages")
	{
		languages.Get("/", h.Language.GetLanguages)
		languages.Post("/", h.Language.CreateLanguage)
		languages.Put("/", h.Language.UpdateLanguages)
	}

	// Static segments are registered before the parameterised ones.
	translations := v1.Group("/translations")
	{
		translations.Get("/status", h.Translation.GetStatus)
		translations.Delete("/:id", h.Translation.DeleteTranslation)
		translations.Get("/:entityType/:entityId", h.Translation.GetTranslations)
		translations.Post("/:entityType/:entityId/regenerate", h.Translation.RegenerateTranslations)
		translations.Put("/:entityType/:entityId/:languageCode", h.Translation.SetManualTranslation)
	}
	v1.Post("/translate", h.Translation.Translate)

	v1.Post("/names/preview", handlers.PreviewName)

	dashboard := v1.Group("/dashboard")
	{
		dashboard.Get("/stats", h.Dashboard.GetDashboardStats)
	}

	upload := v1.Group("/upload")
	{
		upload.Get("/presign", h.Upload.GetPresignedURL)
	}
}

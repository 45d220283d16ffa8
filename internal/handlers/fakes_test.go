package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pantry-backend/internal/models"
	"pantry-backend/internal/repository"
	"pantry-backend/internal/services"
	"pantry-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type envelope struct {
	utils.StandardResponse
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = strings.NewReader(string(raw))
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type fakeCategoryService struct {
	create func(name string) (*models.Category, error)
	update func(id uint, name *string) (*models.Category, error)
	del    func(id uint) error
	get    func(id uint) (*models.Category, error)
	all    []models.Category
	allErr error
}

func (f *fakeCategoryService) CreateCategory(_ context.Context, name string) (*models.Category, error) {
	return f.create(name)
}

func (f *fakeCategoryService) UpdateCategory(_ context.Context, id uint, name *string) (*models.Category, error) {
	return f.update(id, name)
}

func (f *fakeCategoryService) DeleteCategory(_ context.Context, id uint) error {
	return f.del(id)
}

func (f *fakeCategoryService) GetCategoryByID(_ context.Context, id uint) (*models.Category, error) {
	return f.get(id)
}

func (f *fakeCategoryService) GetAllCategories(context.Context) ([]models.Category, error) {
	return f.all, f.allErr
}

type fakeFoodItemService struct {
	create     func(in services.FoodItemInput) (*models.FoodItem, error)
	update     func(id uint, in services.FoodItemInput) (*models.FoodItem, error)
	del        func(id uint) error
	get        func(id uint) (*models.FoodItem, error)
	items      []models.FoodItem
	total      int64
	lastFilter repository.FoodItemFilter
}

func (f *fakeFoodItemService) CreateFoodItem(_ context.Context, in services.FoodItemInput) (*models.FoodItem, error) {
	return f.create(in)
}

func (f *fakeFoodItemService) UpdateFoodItem(_ context.Context, id uint, in services.FoodItemInput) (*models.FoodItem, error) {
	return f.update(id, in)
}

func (f *fakeFoodItemService) DeleteFoodItem(_ context.Context, id uint) error {
	return f.del(id)
}

func (f *fakeFoodItemService) GetFoodItemByID(_ context.Context, id uint) (*models.FoodItem, error) {
	return f.get(id)
}

func (f *fakeFoodItemService) GetAllFoodItems(_ context.Context, filter repository.FoodItemFilter) ([]models.FoodItem, int64, error) {
	f.lastFilter = filter
	return f.items, f.total, nil
}

func (f *fakeFoodItemService) DefaultItemLimit() int { return 2 }

type fakeTranslationService struct {
	translate  func(text, code string) (string, error)
	regenerate func(t models.EntityType, id uint) error
	manual     func(t models.EntityType, id uint, code, text string) (*models.Translation, error)
	list       []models.Translation
	deleted    []uint
}

func (f *fakeTranslationService) GetTranslations(context.Context, models.EntityType, uint) ([]models.Translation, error) {
	return f.list, nil
}

func (f *fakeTranslationService) SetManualTranslation(_ context.Context, t models.EntityType, id uint, code, text string) (*models.Translation, error) {
	return f.manual(t, id, code, text)
}

func (f *fakeTranslationService) DeleteTranslation(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	if id == 404 {
		return services.ErrTranslationNotFound
	}
	return nil
}

func (f *fakeTranslationService) RegenerateTranslations(_ context.Context, t models.EntityType, id uint) error {
	return f.regenerate(t, id)
}

func (f *fakeTranslationService) TranslateText(_ context.Context, text, code string) (string, error) {
	return f.translate(text, code)
}

func (f *fakeTranslationService) GetStatus() services.TranslationStatus {
	return services.TranslationStatus{Provider: "fake", DefaultLanguage: "en"}
}

type fakePresigner struct {
	err error
}

func (f *fakePresigner) GeneratePresignedURL(_ context.Context, filename, _ string) (*services.PresignedUpload, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.PresignedUpload{
		UploadURL: "http://minio.test/upload/" + filename,
		PublicURL: "http://cdn.test/pantry/food-items/" + filename,
		ObjectKey: "food-items/" + filename,
	}, nil
}

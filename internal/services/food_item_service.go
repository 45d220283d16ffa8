package services

import (
	"context"
	"fmt"
	"strings"

	"pantry-backend/internal/config"
	"pantry-backend/internal/models"
	"pantry-backend/internal/repository"
	"pantry-backend/internal/translation"

	"github.com/sirupsen/logrus"
)

// FoodItemInput carries the writable attributes of a food item. Name is
// optional on update; every other field replaces the stored value.
type FoodItemInput struct {
	Name       *string
	CategoryID *uint
	ItemLimit  *int
	Quantity   int
	ImageURL   string
	Vegetarian bool
	Vegan      bool
	GlutenFree bool
	Halal      bool
	Kosher     bool
}

type FoodItemService interface {
	CreateFoodItem(ctx context.Context, in FoodItemInput) (*models.FoodItem, error)
	UpdateFoodItem(ctx context.Context, id uint, in FoodItemInput) (*models.FoodItem, error)
	DeleteFoodItem(ctx context.Context, id uint) error
	GetFoodItemByID(ctx context.Context, id uint) (*models.FoodItem, error)
	GetAllFoodItems(ctx context.Context, filter repository.FoodItemFilter) ([]models.FoodItem, int64, error)
	// DefaultItemLimit is the per-client limit applied to items without their own.
	DefaultItemLimit() int
}

type foodItemService struct {
	repo       repository.FoodItemRepository
	categories repository.CategoryRepository
	names      NameValidator
	scheduler  translation.Scheduler
	images     ImageStore
	limits     config.ItemsConfig
	logger     *logrus.Logger
}

func NewFoodItemService(
	repo repository.FoodItemRepository,
	categories repository.CategoryRepository,
	names NameValidator,
	scheduler translation.Scheduler,
	limits config.ItemsConfig,
	logger *logrus.Logger,
) FoodItemService {
	return &foodItemService{
		repo:       repo,
		categories: categories,
		names:      names,
		scheduler:  scheduler,
		limits:     limits,
		logger:     logger,
	}
}

// SetImageStore enables cleanup of replaced and deleted item images.
func (s *foodItemService) SetImageStore(images ImageStore) {
	s.images = images
}

func (s *foodItemService) DefaultItemLimit() int {
	return s.limits.DefaultLimit
}

func (s *foodItemService) CreateFoodItem(ctx context.Context, in FoodItemInput) (*models.FoodItem, error) {
	if in.Name == nil {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	name, err := s.names.Validate(ctx, *in.Name, models.EntityTypeFoodItem, 0)
	if err != nil {
		return nil, err
	}
	if err := s.checkAttributes(ctx, in); err != nil {
		return nil, err
	}

	item := &models.FoodItem{Name: name}
	applyInput(item, in)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, saveError(err, models.EntityTypeFoodItem, name, "failed to create food item")
	}

	s.logger.WithFields(logrus.Fields{"id": item.ID, "name": item.Name}).Info("Food item created")
	s.scheduler.ScheduleEntity(models.EntityTypeFoodItem, item.ID)

	return s.reload(ctx, item)
}

func (s *foodItemService) UpdateFoodItem(ctx context.Context, id uint, in FoodItemInput) (*models.FoodItem, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load food item: %w", err)
	}
	if existing == nil {
		return nil, ErrFoodItemNotFound
	}

	name := existing.Name
	if in.Name != nil {
		name, err = s.names.Validate(ctx, *in.Name, models.EntityTypeFoodItem, id)
		if err != nil {
			return nil, err
		}
	}
	if err := s.checkAttributes(ctx, in); err != nil {
		return nil, err
	}

	renamed := name != existing.Name
	previousImage := existing.ImageURL

	existing.Name = name
	applyInput(existing, in)
	existing.Category = nil
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, saveError(err, models.EntityTypeFoodItem, name, "failed to update food item")
	}

	if previousImage != existing.ImageURL {
		s.removeImage(ctx, previousImage)
	}
	if renamed {
		s.logger.WithFields(logrus.Fields{"id": id, "name": name}).Info("Food item renamed")
		s.scheduler.ScheduleEntity(models.EntityTypeFoodItem, id)
	}

	return s.reload(ctx, existing)
}

func (s *foodItemService) DeleteFoodItem(ctx context.Context, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load food item: %w", err)
	}
	if existing == nil {
		return ErrFoodItemNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}
	s.removeImage(ctx, existing.ImageURL)

	s.logger.WithField("id", id).Info("Food item deleted")
	return nil
}

func (s *foodItemService) GetFoodItemByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load food item: %w", err)
	}
	if item == nil {
		return nil, ErrFoodItemNotFound
	}
	return item, nil
}

func (s *foodItemService) GetAllFoodItems(ctx context.Context, filter repository.FoodItemFilter) ([]models.FoodItem, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *foodItemService) checkAttributes(ctx context.Context, in FoodItemInput) error {
	if in.ItemLimit != nil && (*in.ItemLimit < 1 || *in.ItemLimit > s.limits.MaxLimit) {
		return fmt.Errorf("%w: item limit must be between 1 and %d", ErrInvalidInput, s.limits.MaxLimit)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidInput)
	}
	if in.CategoryID != nil {
		ok, err := s.categories.Exists(ctx, *in.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to check category: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: category %d does not exist", ErrInvalidInput, *in.CategoryID)
		}
	}
	return nil
}

func applyInput(item *models.FoodItem, in FoodItemInput) {
	item.CategoryID = in.CategoryID
	item.ItemLimit = in.ItemLimit
	item.Quantity = in.Quantity
	item.ImageURL = strings.TrimSpace(in.ImageURL)
	item.Vegetarian = in.Vegetarian
	item.Vegan = in.Vegan
	item.GlutenFree = in.GlutenFree
	item.Halal = in.Halal
	item.Kosher = in.Kosher
}

// reload returns the stored item with its category, falling back to item.
func (s *foodItemService) reload(ctx context.Context, item *models.FoodItem) (*models.FoodItem, error) {
	stored, err := s.repo.FindByID(ctx, item.ID)
	if err != nil || stored == nil {
		return item, nil
	}
	return stored, nil
}

// removeImage deletes an uploaded image. Failures are logged only.
func (s *foodItemService) removeImage(ctx context.Context, imageURL string) {
	if s.images == nil || imageURL == "" {
		return
	}
	key, ok := s.images.ObjectKey(imageURL)
	if !ok {
		return
	}
	if err := s.images.DeleteFile(ctx, key); err != nil {
		s.logger.WithError(err).WithField("image_url", imageURL).Warn("Failed to delete old food item image")
	}
}

package services

import (
	"context"
	"errors"
	"fmt"

	"pantry-backend/internal/models"
	"pantry-backend/internal/repository"
	"pantry-backend/internal/translation"
	"pantry-backend/internal/validation"

	"github.com/sirupsen/logrus"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	// UpdateCategory renames a category. A nil name leaves it unchanged.
	UpdateCategory(ctx context.Context, id uint, name *string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	GetAllCategories(ctx context.Context) ([]models.Category, error)
}

type categoryService struct {
	repo      repository.CategoryRepository
	names     NameValidator
	scheduler translation.Scheduler
	logger    *logrus.Logger
}

func NewCategoryService(repo repository.CategoryRepository, names NameValidator, scheduler translation.Scheduler, logger *logrus.Logger) CategoryService {
	return &categoryService{
		repo:      repo,
		names:     names,
		scheduler: scheduler,
		logger:    logger,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	normalized, err := s.names.Validate(ctx, name, models.EntityTypeCategory, 0)
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: normalized}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, saveError(err, models.EntityTypeCategory, normalized, "failed to create category")
	}

	s.logger.WithFields(logrus.Fields{"id": category.ID, "name": category.Name}).Info("Category created")
	s.scheduler.ScheduleEntity(models.EntityTypeCategory, category.ID)
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uint, name *string) (*models.Category, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if existing == nil {
		return nil, ErrCategoryNotFound
	}
	if name == nil {
		return existing, nil
	}

	normalized, err := s.names.Validate(ctx, *name, models.EntityTypeCategory, id)
	if err != nil {
		return nil, err
	}

	renamed := normalized != existing.Name
	existing.Name = normalized
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, saveError(err, models.EntityTypeCategory, normalized, "failed to update category")
	}

	if renamed {
		s.logger.WithFields(logrus.Fields{"id": id, "name": normalized}).Info("Category renamed")
		s.scheduler.ScheduleEntity(models.EntityTypeCategory, id)
	}
	return existing, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}
	if existing == nil {
		return ErrCategoryNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"id": id, "items_detached": existing.ItemCount}).Info("Category deleted")
	return nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx)
}

// saveError turns a unique index violation into the same rule error the
// validator gives, for names saved concurrently after validation passed.
func saveError(err error, kind models.EntityType, name, action string) error {
	if errors.Is(err, repository.ErrDuplicateName) {
		return validation.DuplicateError(validation.NameMatch{Type: kind, Name: name}, kind)
	}
	return fmt.Errorf("%s: %w", action, err)
}

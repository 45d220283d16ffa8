package services

import (
	"context"
	"fmt"

	"pantry-backend/internal/models"
	"pantry-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

const recentItemsLimit = 10

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	categories   repository.CategoryRepository
	items        repository.FoodItemRepository
	languages    repository.LanguageRepository
	translations repository.TranslationRepository
	logger       *logrus.Logger
}

func NewDashboardService(
	categories repository.CategoryRepository,
	items repository.FoodItemRepository,
	languages repository.LanguageRepository,
	translations repository.TranslationRepository,
	logger *logrus.Logger,
) DashboardService {
	return &dashboardService{
		categories:   categories,
		items:        items,
		languages:    languages,
		translations: translations,
		logger:       logger,
	}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if stats.TotalFoodItems, err = s.items.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count food items: %w", err)
	}
	if stats.ActiveLanguages, err = s.languages.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("failed to count languages: %w", err)
	}
	if stats.TranslationCoverage, err = s.translations.Coverage(ctx); err != nil {
		return nil, fmt.Errorf("failed to load translation coverage: %w", err)
	}
	if stats.RecentlyAdded, err = s.items.FindRecent(ctx, recentItemsLimit); err != nil {
		return nil, fmt.Errorf("failed to load recent food items: %w", err)
	}

	return &stats, nil
}

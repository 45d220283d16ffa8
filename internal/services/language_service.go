package services

import (
	"context"
	"fmt"
	"strings"

	"pantry-backend/internal/models"
	"pantry-backend/internal/repository"
	"pantry-backend/internal/translation"

	"github.com/sirupsen/logrus"
)

type LanguageService interface {
	// EnsureSeeded inserts the built-in languages that are missing and makes
	// sure the default language is active. Safe to run on every start.
	EnsureSeeded(ctx context.Context) error
	GetAllLanguages(ctx context.Context) ([]models.Language, error)
	GetActiveLanguages(ctx context.Context) ([]models.Language, error)
	CreateLanguage(ctx context.Context, code, name string, active bool) (*models.Language, error)
	// UpdateLanguages applies activation toggles and queues a translation
	// sweep for each language that became active.
	UpdateLanguages(ctx context.Context, states []models.LanguageState) ([]models.Language, error)
	DefaultLanguage() string
}

type languageService struct {
	repo            repository.LanguageRepository
	scheduler       translation.Scheduler
	defaultLanguage string
	logger          *logrus.Logger
}

func NewLanguageService(repo repository.LanguageRepository, scheduler translation.Scheduler, defaultLanguage string, logger *logrus.Logger) LanguageService {
	return &languageService{
		repo:            repo,
		scheduler:       scheduler,
		defaultLanguage: strings.ToLower(strings.TrimSpace(defaultLanguage)),
		logger:          logger,
	}
}

func (s *languageService) DefaultLanguage() string {
	return s.defaultLanguage
}

func (s *languageService) EnsureSeeded(ctx context.Context) error {
	codes := translation.DefaultLanguages
	found := false
	for _, code := range codes {
		if code == s.defaultLanguage {
			found = true
			break
		}
	}
	if !found {
		codes = append([]string{s.defaultLanguage}, codes...)
	}

	seed := make([]models.Language, 0, len(codes))
	for _, code := range codes {
		seed = append(seed, models.Language{
			Code:   code,
			Name:   translation.LanguageName(code),
			Active: code == s.defaultLanguage,
		})
	}

	if err := s.repo.SeedMissing(ctx, seed); err != nil {
		return fmt.Errorf("failed to seed languages: %w", err)
	}
	if err := s.repo.SetActive(ctx, []models.LanguageState{{Code: s.defaultLanguage, Active: true}}); err != nil {
		return fmt.Errorf("failed to activate default language: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"languages": len(seed),
		"default":   s.defaultLanguage,
	}).Info("Languages seeded")
	return nil
}

func (s *languageService) GetAllLanguages(ctx context.Context) ([]models.Language, error) {
	return s.repo.FindAll(ctx)
}

func (s *languageService) GetActiveLanguages(ctx context.Context) ([]models.Language, error) {
	return s.repo.FindActive(ctx)
}

func (s *languageService) CreateLanguage(ctx context.Context, code, name string, active bool) (*models.Language, error) {
	normalized := translation.NormalizeCode(code)
	if normalized == "" {
		return nil, fmt.Errorf("%w: %q is not a valid language code", ErrInvalidInput, code)
	}

	existing, err := s.repo.FindByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check language: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("language %q %w", normalized, ErrConflict)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = translation.LanguageName(normalized)
	}

	language := &models.Language{Code: normalized, Name: name, Active: active}
	if err := s.repo.Create(ctx, language); err != nil {
		return nil, fmt.Errorf("failed to create language: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"code": normalized, "active": active}).Info("Language created")
	if active && normalized != s.defaultLanguage {
		s.scheduler.ScheduleLanguage(normalized)
	}
	return language, nil
}

func (s *languageService) UpdateLanguages(ctx context.Context, states []models.LanguageState) ([]models.Language, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("%w: no languages given", ErrInvalidInput)
	}

	current, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load languages: %w", err)
	}
	byCode := make(map[string]models.Language, len(current))
	for _, l := range current {
		byCode[l.Code] = l
	}

	normalized := make([]models.LanguageState, 0, len(states))
	var activated []string
	for _, st := range states {
		code := translation.NormalizeCode(st.Code)
		lang, ok := byCode[code]
		if code == "" || !ok {
			return nil, fmt.Errorf("%w: %q", ErrLanguageNotFound, st.Code)
		}
		if code == s.defaultLanguage && !st.Active {
			return nil, fmt.Errorf("%w: the default language %q cannot be deactivated", ErrInvalidInput, code)
		}
		if st.Active && !lang.Active && code != s.defaultLanguage {
			activated = append(activated, code)
		}
		lang.Active = st.Active
		byCode[code] = lang
		normalized = append(normalized, models.LanguageState{Code: code, Active: st.Active})
	}

	if err := s.repo.SetActive(ctx, normalized); err != nil {
		return nil, fmt.Errorf("failed to update languages: %w", err)
	}

	for _, code := range activated {
		s.logger.WithField("code", code).Info("Language activated, queueing translations")
		s.scheduler.ScheduleLanguage(code)
	}

	return s.repo.FindAll(ctx)
}

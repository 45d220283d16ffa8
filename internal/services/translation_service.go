package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"pantry-backend/internal/models"
	"pantry-backend/internal/repository"
	"pantry-backend/internal/translation"

	"github.com/sirupsen/logrus"
)

const maxTranslationLength = 255

// DispatcherStatus is satisfied by *translation.Dispatcher.
type DispatcherStatus interface {
	Stats() translation.DispatcherStats
}

// TranslationStatus describes the automatic translation pipeline.
type TranslationStatus struct {
	Provider        string                      `json:"provider"`
	DefaultLanguage string                      `json:"default_language"`
	Dispatcher      translation.DispatcherStats `json:"dispatcher"`
}

type TranslationService interface {
	GetTranslations(ctx context.Context, entityType models.EntityType, entityID uint) ([]models.Translation, error)
	// SetManualTranslation stores a human edit. Automatic runs leave it alone
	// while manual edits are preserved.
	SetManualTranslation(ctx context.Context, entityType models.EntityType, entityID uint, languageCode, text string) (*models.Translation, error)
	DeleteTranslation(ctx context.Context, id uint) error
	// RegenerateTranslations queues an automatic run for the entity.
	RegenerateTranslations(ctx context.Context, entityType models.EntityType, entityID uint) error
	// TranslateText translates free text on demand without storing it.
	TranslateText(ctx context.Context, text, languageCode string) (string, error)
	GetStatus() TranslationStatus
}

type translationService struct {
	repo            repository.TranslationRepository
	languages       repository.LanguageRepository
	entities        translation.EntitySource
	translator      translation.Translator
	scheduler       translation.Scheduler
	dispatcher      DispatcherStatus
	defaultLanguage string
	logger          *logrus.Logger
}

func NewTranslationService(
	repo repository.TranslationRepository,
	languages repository.LanguageRepository,
	entities translation.EntitySource,
	translator translation.Translator,
	scheduler translation.Scheduler,
	dispatcher DispatcherStatus,
	defaultLanguage string,
	logger *logrus.Logger,
) TranslationService {
	return &translationService{
		repo:            repo,
		languages:       languages,
		entities:        entities,
		translator:      translator,
		scheduler:       scheduler,
		dispatcher:      dispatcher,
		defaultLanguage: strings.ToLower(strings.TrimSpace(defaultLanguage)),
		logger:          logger,
	}
}

func (s *translationService) GetTranslations(ctx context.Context, entityType models.EntityType, entityID uint) ([]models.Translation, error) {
	if err := s.requireEntity(ctx, entityType, entityID); err != nil {
		return nil, err
	}
	return s.repo.ListForEntity(ctx, entityType, entityID)
}

func (s *translationService) SetManualTranslation(ctx context.Context, entityType models.EntityType, entityID uint, languageCode, text string) (*models.Translation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: translated text is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > maxTranslationLength {
		return nil, fmt.Errorf("%w: translated text must be at most %d characters", ErrInvalidInput, maxTranslationLength)
	}
	if err := s.requireEntity(ctx, entityType, entityID); err != nil {
		return nil, err
	}

	lang, err := s.findLanguage(ctx, languageCode)
	if err != nil {
		return nil, err
	}
	if lang.Code == s.defaultLanguage {
		return nil, fmt.Errorf("%w: the entity name is already in the default language", ErrInvalidInput)
	}

	row := &models.Translation{
		EntityType:     entityType,
		EntityID:       entityID,
		LanguageID:     lang.ID,
		TranslatedText: text,
	}
	if err := s.repo.UpsertManual(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to save translation: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"entity_type": entityType,
		"entity_id":   entityID,
		"language":    lang.Code,
	}).Info("Manual translation saved")

	stored, err := s.repo.FindByKey(ctx, entityType, entityID, lang.ID)
	if err != nil || stored == nil {
		row.Language = lang
		return row, nil
	}
	stored.Language = lang
	return stored, nil
}

func (s *translationService) DeleteTranslation(ctx context.Context, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load translation: %w", err)
	}
	if existing == nil {
		return ErrTranslationNotFound
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete translation: %w", err)
	}

	s.logger.WithField("id", id).Info("Translation deleted")
	return nil
}

func (s *translationService) RegenerateTranslations(ctx context.Context, entityType models.EntityType, entityID uint) error {
	if err := s.requireEntity(ctx, entityType, entityID); err != nil {
		return err
	}
	if !s.scheduler.ScheduleEntity(entityType, entityID) {
		return fmt.Errorf("%w, try again later", ErrQueueUnavailable)
	}
	return nil
}

func (s *translationService) TranslateText(ctx context.Context, text, languageCode string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > maxTranslationLength {
		return "", fmt.Errorf("%w: text must be at most %d characters", ErrInvalidInput, maxTranslationLength)
	}
	code := translation.NormalizeCode(languageCode)
	if code == "" {
		return "", fmt.Errorf("%w: %q is not a valid language code", ErrInvalidInput, languageCode)
	}
	if code == s.defaultLanguage {
		return text, nil
	}

	translated, err := s.translator.Translate(ctx, text, code, translation.ContextCustomInput)
	if err != nil {
		s.logger.WithError(err).WithField("language", code).Warn("Custom translation failed")
		return "", err
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		return "", fmt.Errorf("%w: empty translation", translation.ErrTranslationFailed)
	}
	return translated, nil
}

func (s *translationService) GetStatus() TranslationStatus {
	return TranslationStatus{
		Provider:        s.translator.Name(),
		DefaultLanguage: s.defaultLanguage,
		Dispatcher:      s.dispatcher.Stats(),
	}
}

func (s *translationService) requireEntity(ctx context.Context, entityType models.EntityType, entityID uint) error {
	if !entityType.Valid() {
		return fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, entityType)
	}
	entity, err := s.entities.FindEntity(ctx, entityType, entityID)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", entityType.Label(), err)
	}
	if entity == nil {
		if entityType == models.EntityTypeFoodItem {
			return ErrFoodItemNotFound
		}
		return ErrCategoryNotFound
	}
	return nil
}

func (s *translationService) findLanguage(ctx context.Context, raw string) (*models.Language, error) {
	code := translation.NormalizeCode(raw)
	if code == "" {
		return nil, fmt.Errorf("%w: %q", ErrLanguageNotFound, raw)
	}
	lang, err := s.languages.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to load language: %w", err)
	}
	if lang == nil {
		return nil, fmt.Errorf("%w: %q", ErrLanguageNotFound, code)
	}
	return lang, nil
}

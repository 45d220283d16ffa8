package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pantry-backend/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	// ErrEntityNotFound aborts an orchestration run: there is nothing to translate.
	// Stores also return it when the entity disappears before a row is written.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrLanguageNotFound is returned by language sweeps for unknown codes.
	ErrLanguageNotFound = errors.New("language not found")
)

// Entity is the part of a category or food item the pipeline needs.
type Entity struct {
	Type models.EntityType
	ID   uint
	Name string
}

type EntitySource interface {
	// FindEntity returns nil, nil when the entity does not exist.
	FindEntity(ctx context.Context, entityType models.EntityType, id uint) (*Entity, error)
	ListEntities(ctx context.Context) ([]Entity, error)
	ListEntitiesMissingLanguage(ctx context.Context, languageID uint) ([]Entity, error)
}

type LanguageSource interface {
	// FindActive returns active languages ordered by code.
	FindActive(ctx context.Context) ([]models.Language, error)
	FindByCode(ctx context.Context, code string) (*models.Language, error)
}

type Store interface {
	FindByKey(ctx context.Context, entityType models.EntityType, entityID, languageID uint) (*models.Translation, error)
	// UpsertAutomatic inserts or overwrites the row for the translation's key
	// and reports whether it was written. With preserveManual set it leaves
	// rows with is_automatic = false alone and returns false. It returns
	// ErrEntityNotFound when the entity no longer exists.
	UpsertAutomatic(ctx context.Context, t *models.Translation, preserveManual bool) (bool, error)
}

// Status is the result of translating one entity into one language.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusSkipped Status = "skipped"
)

const (
	reasonManualKept    = "manual translation kept"
	reasonEntityDeleted = "entity was deleted"
)

type Outcome struct {
	LanguageCode string              `json:"language_code"`
	Status       Status              `json:"status"`
	Translation  *models.Translation `json:"translation,omitempty"`
	Reason       string              `json:"reason,omitempty"`
}

// SweepStats summarises a language sweep across all entities.
type SweepStats struct {
	Language  string `json:"language"`
	Entities  int    `json:"entities"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
}

type Options struct {
	DefaultLanguage string
	// CallDelay is the minimum gap between two translator calls.
	CallDelay      time.Duration
	PreserveManual bool
}

// Orchestrator generates automatic translations for entity names. Languages
// are processed one at a time in the order the LanguageSource returns them,
// and a failure for one language never stops the others.
type Orchestrator struct {
	entities        EntitySource
	languages       LanguageSource
	store           Store
	translator      Translator
	defaultLanguage string
	preserveManual  bool
	limiter         *rate.Limiter
	logger          *logrus.Logger
}

func NewOrchestrator(entities EntitySource, languages LanguageSource, store Store, translator Translator, opts Options, logger *logrus.Logger) *Orchestrator {
	limit := rate.Inf
	if opts.CallDelay > 0 {
		limit = rate.Every(opts.CallDelay)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Orchestrator{
		entities:        entities,
		languages:       languages,
		store:           store,
		translator:      translator,
		defaultLanguage: strings.ToLower(strings.TrimSpace(opts.DefaultLanguage)),
		preserveManual:  opts.PreserveManual,
		limiter:         rate.NewLimiter(limit, 1),
		logger:          logger,
	}
}

func (o *Orchestrator) DefaultLanguage() string {
	return o.defaultLanguage
}

// Translator returns the provider used for automatic translations.
func (o *Orchestrator) Translator() Translator {
	return o.translator
}

// GenerateAutomaticTranslations translates one entity's name into every active
// non-default language. Only a missing entity or a failure to load the
// language list is returned as an error; per-language problems are reported
// as outcomes. When the entity is deleted mid-run the remaining languages are
// not attempted.
func (o *Orchestrator) GenerateAutomaticTranslations(ctx context.Context, entityType models.EntityType, entityID uint) ([]Outcome, error) {
	entity, err := o.entities.FindEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %d: %w", entityType, entityID, err)
	}
	if entity == nil {
		return nil, fmt.Errorf("%w: %s %d", ErrEntityNotFound, entityType, entityID)
	}

	languages, err := o.languages.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active languages: %w", err)
	}

	outcomes := make([]Outcome, 0, len(languages))
	for _, lang := range languages {
		if o.isDefault(lang.Code) {
			continue
		}
		outcome := o.translateOne(ctx, *entity, lang)
		outcomes = append(outcomes, outcome)
		if outcome.Status == StatusSkipped && outcome.Reason == reasonEntityDeleted {
			break
		}
	}

	o.logger.WithFields(logrus.Fields{
		"entity_type": entityType,
		"entity_id":   entityID,
		"languages":   len(outcomes),
		"failed":      countStatus(outcomes, StatusFailure),
	}).Info("Automatic translations generated")

	return outcomes, nil
}

// GenerateForLanguage translates every category and food item into one
// language. With onlyMissing set, entities that already have a row for the
// language are left out. One entity's failure does not stop the sweep.
func (o *Orchestrator) GenerateForLanguage(ctx context.Context, code string, onlyMissing bool) (SweepStats, error) {
	stats := SweepStats{Language: code}

	lang, err := o.languages.FindByCode(ctx, code)
	if err != nil {
		return stats, fmt.Errorf("failed to load language %q: %w", code, err)
	}
	if lang == nil {
		return stats, fmt.Errorf("%w: %s", ErrLanguageNotFound, code)
	}
	if !lang.Active || o.isDefault(lang.Code) {
		return stats, nil
	}

	var entities []Entity
	if onlyMissing {
		entities, err = o.entities.ListEntitiesMissingLanguage(ctx, lang.ID)
	} else {
		entities, err = o.entities.ListEntities(ctx)
	}
	if err != nil {
		return stats, fmt.Errorf("failed to list entities: %w", err)
	}

	stats.Entities = len(entities)
	for _, entity := range entities {
		switch o.translateOne(ctx, entity, *lang).Status {
		case StatusSuccess:
			stats.Succeeded++
		case StatusSkipped:
			stats.Skipped++
		default:
			stats.Failed++
		}
	}

	o.logger.WithFields(logrus.Fields{
		"language":     lang.Code,
		"only_missing": onlyMissing,
		"entities":     stats.Entities,
		"succeeded":    stats.Succeeded,
		"failed":       stats.Failed,
		"skipped":      stats.Skipped,
	}).Info("Language sweep completed")

	return stats, nil
}

func (o *Orchestrator) translateOne(ctx context.Context, entity Entity, lang models.Language) Outcome {
	outcome := Outcome{LanguageCode: lang.Code}
	log := o.logger.WithFields(logrus.Fields{
		"entity_type": entity.Type,
		"entity_id":   entity.ID,
		"language":    lang.Code,
	})

	if o.preserveManual {
		existing, err := o.store.FindByKey(ctx, entity.Type, entity.ID, lang.ID)
		if err != nil {
			return o.fail(log, outcome, fmt.Errorf("failed to look up existing translation: %w", err))
		}
		if existing != nil && !existing.IsAutomatic {
			log.Debug("Keeping manual translation")
			outcome.Status = StatusSkipped
			outcome.Translation = existing
			outcome.Reason = reasonManualKept
			return outcome
		}
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return o.fail(log, outcome, err)
	}

	text, err := o.translator.Translate(ctx, entity.Name, lang.Code, ContextFor(entity.Type))
	if err != nil {
		return o.fail(log, outcome, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return o.fail(log, outcome, failed("empty translation"))
	}

	row := &models.Translation{
		EntityType:     entity.Type,
		EntityID:       entity.ID,
		LanguageID:     lang.ID,
		TranslatedText: text,
		IsAutomatic:    true,
	}
	stored, err := o.store.UpsertAutomatic(ctx, row, o.preserveManual)
	switch {
	case errors.Is(err, ErrEntityNotFound):
		log.Info("Entity deleted during translation, result dropped")
		outcome.Status = StatusSkipped
		outcome.Reason = reasonEntityDeleted
		return outcome
	case err != nil:
		return o.fail(log, outcome, fmt.Errorf("failed to save translation: %w", err))
	case !stored:
		log.Debug("Manual translation saved during run, keeping it")
		outcome.Status = StatusSkipped
		outcome.Reason = reasonManualKept
		return outcome
	}

	outcome.Status = StatusSuccess
	outcome.Translation = row
	return outcome
}

func (o *Orchestrator) fail(log *logrus.Entry, outcome Outcome, err error) Outcome {
	log.WithError(err).Warn("Automatic translation failed")
	outcome.Status = StatusFailure
	outcome.Reason = err.Error()
	return outcome
}

func (o *Orchestrator) isDefault(code string) bool {
	return strings.EqualFold(code, o.defaultLanguage)
}

func countStatus(outcomes []Outcome, status Status) int {
	n := 0
	for _, oc := range outcomes {
		if oc.Status == status {
			n++
		}
	}
	return n
}

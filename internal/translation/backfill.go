package translation

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Backfiller periodically queues sweeps that fill in translations missing
// for active languages, e.g. after dropped jobs or provider outages.
type Backfiller struct {
	cron      *cron.Cron
	languages LanguageSource
	dispatch  *Dispatcher
	defLang   string
	logger    *logrus.Logger
}

func NewBackfiller(languages LanguageSource, dispatch *Dispatcher, defaultLanguage string, logger *logrus.Logger) *Backfiller {
	return &Backfiller{
		cron:      cron.New(),
		languages: languages,
		dispatch:  dispatch,
		defLang:   defaultLanguage,
		logger:    logger,
	}
}

// Start schedules the sweep using a standard cron expression or descriptor such as "@every 6h".
func (b *Backfiller) Start(schedule string) error {
	if _, err := b.cron.AddFunc(schedule, func() {
		if _, err := b.RunOnce(context.Background()); err != nil {
			b.logger.WithError(err).Error("Translation backfill failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid backfill schedule %q: %w", schedule, err)
	}

	b.cron.Start()
	b.logger.WithField("schedule", schedule).Info("Translation backfill scheduled")
	return nil
}

func (b *Backfiller) Stop() {
	ctx := b.cron.Stop()
	<-ctx.Done()
	b.logger.Info("Translation backfill stopped")
}

// RunOnce queues one missing-only sweep per active non-default language and
// returns how many were queued.
func (b *Backfiller) RunOnce(ctx context.Context) (int, error) {
	languages, err := b.languages.FindActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load active languages: %w", err)
	}

	queued := 0
	for _, lang := range languages {
		if lang.Code == b.defLang {
			continue
		}
		if b.dispatch.Submit(Job{Kind: JobLanguage, LanguageCode: lang.Code, OnlyMissing: true}) {
			queued++
		}
	}

	b.logger.WithField("queued", queued).Debug("Translation backfill queued")
	return queued, nil
}

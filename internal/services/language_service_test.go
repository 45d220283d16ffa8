package services

import (
	"context"
	"testing"

	"pantry-backend/internal/models"
	"pantry-backend/internal/translation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLanguageFixture(defaultLang string) (LanguageService, *memDB, *recordingScheduler) {
	db := newMemDB()
	sched := &recordingScheduler{}
	return NewLanguageService(memLanguages{db}, sched, defaultLang, quietLogger()), db, sched
}

func TestEnsureSeeded(t *testing.T) {
	svc, db, _ := newLanguageFixture("en")
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeeded(ctx))
	assert.Len(t, db.languages, len(translation.DefaultLanguages))

	active, err := svc.GetActiveLanguages(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "en", active[0].Code)
	assert.Equal(t, "English", active[0].Name)

	// A second run keeps admin choices.
	_, err = svc.UpdateLanguages(ctx, []models.LanguageState{{Code: "es", Active: true}})
	require.NoError(t, err)
	require.NoError(t, svc.EnsureSeeded(ctx))
	active, _ = svc.GetActiveLanguages(ctx)
	assert.Len(t, active, 2)
}

func TestEnsureSeeded_CustomDefault(t *testing.T) {
	svc, db, _ := newLanguageFixture("de")
	require.NoError(t, svc.EnsureSeeded(context.Background()))

	de, ok := db.languages["de"]
	require.True(t, ok)
	assert.True(t, de.Active)
	assert.False(t, db.languages["en"].Active)
}

func TestCreateLanguage(t *testing.T) {
	svc, _, sched := newLanguageFixture("en")
	ctx := context.Background()

	lang, err := svc.CreateLanguage(ctx, " IT ", "", true)
	require.NoError(t, err)
	assert.Equal(t, "it", lang.Code)
	assert.Equal(t, "Italian", lang.Name)
	assert.Equal(t, []scheduled{{language: "it"}}, sched.all())

	_, err = svc.CreateLanguage(ctx, "it", "Italiano", false)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateLanguage(ctx, "not a code", "", false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	inactive, err := svc.CreateLanguage(ctx, "ja", "Nihongo", false)
	require.NoError(t, err)
	assert.Equal(t, "Nihongo", inactive.Name)
	assert.Len(t, sched.all(), 1, "inactive languages are not swept")
}

func TestUpdateLanguages(t *testing.T) {
	svc, _, sched := newLanguageFixture("en")
	ctx := context.Background()
	require.NoError(t, svc.EnsureSeeded(ctx))

	langs, err := svc.UpdateLanguages(ctx, []models.LanguageState{
		{Code: "fr", Active: true},
		{Code: "es", Active: true},
		{Code: "en", Active: true},
	})
	require.NoError(t, err)
	assert.Len(t, langs, len(translation.DefaultLanguages))
	assert.Equal(t, []scheduled{{language: "fr"}, {language: "es"}}, sched.all(),
		"only newly active non-default languages are swept")

	sched.jobs = nil
	_, err = svc.UpdateLanguages(ctx, []models.LanguageState{{Code: "fr", Active: true}, {Code: "es", Active: false}})
	require.NoError(t, err)
	assert.Empty(t, sched.all(), "already active and deactivated languages queue nothing")
}

func TestUpdateLanguages_Rejections(t *testing.T) {
	svc, db, sched := newLanguageFixture("en")
	ctx := context.Background()
	require.NoError(t, svc.EnsureSeeded(ctx))

	_, err := svc.UpdateLanguages(ctx, []models.LanguageState{{Code: "fr", Active: true}, {Code: "en", Active: false}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, db.languages["fr"].Active, "nothing applied when one toggle is rejected")

	_, err = svc.UpdateLanguages(ctx, []models.LanguageState{{Code: "xx-unknown", Active: true}})
	assert.Error(t, err)

	_, err = svc.UpdateLanguages(ctx, []models.LanguageState{{Code: "sw", Active: true}})
	assert.ErrorIs(t, err, ErrLanguageNotFound)

	_, err = svc.UpdateLanguages(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, sched.all())
}

package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"pantry-backend/internal/config"
	"pantry-backend/internal/models"
	"pantry-backend/internal/repository"
	"pantry-backend/internal/translation"
	"pantry-backend/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// memDB backs every fake repository so cross-table behaviour (name
// uniqueness, cascades) matches the gorm implementation.
type memDB struct {
	mu           sync.Mutex
	categories   map[uint]models.Category
	items        map[uint]models.FoodItem
	languages    map[string]models.Language
	translations map[uint]models.Translation
	nextID       uint
	failWrites   error
}

func newMemDB() *memDB {
	return &memDB{
		categories:   map[uint]models.Category{},
		items:        map[uint]models.FoodItem{},
		languages:    map[string]models.Language{},
		translations: map[uint]models.Translation{},
	}
}

func (db *memDB) id() uint {
	db.nextID++
	return db.nextID
}

func (db *memDB) deleteTranslations(t models.EntityType, id uint) {
	for k, tr := range db.translations {
		if tr.EntityType == t && tr.EntityID == id {
			delete(db.translations, k)
		}
	}
}

// --- categories ---

type memCategories struct{ db *memDB }

func (r memCategories) Create(_ context.Context, c *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWrites != nil {
		return r.db.failWrites
	}
	c.ID = r.db.id()
	r.db.categories[c.ID] = *c
	return nil
}

func (r memCategories) Update(_ context.Context, c *models.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWrites != nil {
		return r.db.failWrites
	}
	r.db.categories[c.ID] = *c
	return nil
}

func (r memCategories) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.deleteTranslations(models.EntityTypeCategory, id)
	for k, it := range r.db.items {
		if it.CategoryID != nil && *it.CategoryID == id {
			it.CategoryID = nil
			r.db.items[k] = it
		}
	}
	delete(r.db.categories, id)
	return nil
}

func (r memCategories) FindByID(_ context.Context, id uint) (*models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	for _, it := range r.db.items {
		if it.CategoryID != nil && *it.CategoryID == id {
			c.ItemCount++
		}
	}
	return &c, nil
}

func (r memCategories) FindAll(_ context.Context) ([]models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Category
	for _, c := range r.db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCategories) Exists(_ context.Context, id uint) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	_, ok := r.db.categories[id]
	return ok, nil
}

func (r memCategories) Count(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.categories)), nil
}

// --- food items ---

type memItems struct{ db *memDB }

func (r memItems) Create(_ context.Context, it *models.FoodItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWrites != nil {
		return r.db.failWrites
	}
	it.ID = r.db.id()
	r.db.items[it.ID] = *it
	return nil
}

func (r memItems) Update(_ context.Context, it *models.FoodItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failWrites != nil {
		return r.db.failWrites
	}
	r.db.items[it.ID] = *it
	return nil
}

func (r memItems) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.deleteTranslations(models.EntityTypeFoodItem, id)
	delete(r.db.items, id)
	return nil
}

func (r memItems) FindByID(_ context.Context, id uint) (*models.FoodItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	it, ok := r.db.items[id]
	if !ok {
		return nil, nil
	}
	if it.CategoryID != nil {
		if c, ok := r.db.categories[*it.CategoryID]; ok {
			it.Category = &c
		}
	}
	return &it, nil
}

func (r memItems) FindAll(_ context.Context, f repository.FoodItemFilter) ([]models.FoodItem, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.FoodItem
	for _, it := range r.db.items {
		if f.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.Search)) {
			continue
		}
		if f.CategoryID != nil && (it.CategoryID == nil || *it.CategoryID != *f.CategoryID) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r memItems) FindRecent(_ context.Context, limit int) ([]models.FoodItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.FoodItem
	for _, it := range r.db.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memItems) Count(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.items)), nil
}

// --- languages ---

type memLanguages struct{ db *memDB }

func (r memLanguages) sorted(activeOnly bool) []models.Language {
	var out []models.Language
	for _, l := range r.db.languages {
		if activeOnly && !l.Active {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (r memLanguages) Create(_ context.Context, l *models.Language) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.languages[l.Code]; ok {
		return errors.New("duplicate key")
	}
	l.ID = r.db.id()
	r.db.languages[l.Code] = *l
	return nil
}

func (r memLanguages) FindByCode(_ context.Context, code string) (*models.Language, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	l, ok := r.db.languages[code]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r memLanguages) FindAll(_ context.Context) ([]models.Language, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.sorted(false), nil
}

func (r memLanguages) FindActive(_ context.Context) ([]models.Language, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.sorted(true), nil
}

func (r memLanguages) SeedMissing(_ context.Context, langs []models.Language) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, l := range langs {
		if _, ok := r.db.languages[l.Code]; ok {
			continue
		}
		l.ID = r.db.id()
		r.db.languages[l.Code] = l
	}
	return nil
}

func (r memLanguages) SetActive(_ context.Context, states []models.LanguageState) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range states {
		if l, ok := r.db.languages[s.Code]; ok {
			l.Active = s.Active
			r.db.languages[s.Code] = l
		}
	}
	return nil
}

func (r memLanguages) CountActive(_ context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.sorted(true))), nil
}

// --- translations ---

type memTranslations struct{ db *memDB }

func (r memTranslations) findKey(t models.EntityType, id, lang uint) (uint, bool) {
	for k, tr := range r.db.translations {
		if tr.EntityType == t && tr.EntityID == id && tr.LanguageID == lang {
			return k, true
		}
	}
	return 0, false
}

func (r memTranslations) FindByKey(_ context.Context, t models.EntityType, id, lang uint) (*models.Translation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	k, ok := r.findKey(t, id, lang)
	if !ok {
		return nil, nil
	}
	tr := r.db.translations[k]
	return &tr, nil
}

func (r memTranslations) FindByID(_ context.Context, id uint) (*models.Translation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	tr, ok := r.db.translations[id]
	if !ok {
		return nil, nil
	}
	return &tr, nil
}

func (r memTranslations) ListForEntity(_ context.Context, t models.EntityType, id uint) ([]models.Translation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Translation
	for _, tr := range r.db.translations {
		if tr.EntityType == t && tr.EntityID == id {
			out = append(out, tr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LanguageID < out[j].LanguageID })
	return out, nil
}

func (r memTranslations) upsert(tr *models.Translation, guard bool) bool {
	if k, ok := r.findKey(tr.EntityType, tr.EntityID, tr.LanguageID); ok {
		existing := r.db.translations[k]
		if guard && !existing.IsAutomatic {
			return false
		}
		existing.TranslatedText = tr.TranslatedText
		existing.IsAutomatic = tr.IsAutomatic
		r.db.translations[k] = existing
		tr.ID = k
		return true
	}
	tr.ID = r.db.id()
	r.db.translations[tr.ID] = *tr
	return true
}

func (r memTranslations) entityExists(t models.EntityType, id uint) bool {
	switch t {
	case models.EntityTypeCategory:
		_, ok := r.db.categories[id]
		return ok
	case models.EntityTypeFoodItem:
		_, ok := r.db.items[id]
		return ok
	}
	return false
}

func (r memTranslations) UpsertAutomatic(_ context.Context, tr *models.Translation, preserveManual bool) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if !r.entityExists(tr.EntityType, tr.EntityID) {
		return false, translation.ErrEntityNotFound
	}
	tr.IsAutomatic = true
	return r.upsert(tr, preserveManual), nil
}

// storeAutomatic runs an automatic upsert that must succeed and reports whether it wrote.
func storeAutomatic(t *testing.T, trs memTranslations, tr *models.Translation) bool {
	t.Helper()
	stored, err := trs.UpsertAutomatic(context.Background(), tr, true)
	require.NoError(t, err)
	return stored
}

func (r memTranslations) UpsertManual(_ context.Context, tr *models.Translation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	tr.IsAutomatic = false
	r.upsert(tr, false)
	return nil
}

func (r memTranslations) DeleteByID(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.translations, id)
	return nil
}

func (r memTranslations) Coverage(_ context.Context) ([]models.TranslationCoverage, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.TranslationCoverage
	for _, l := range r.db.languages {
		if !l.Active {
			continue
		}
		cov := models.TranslationCoverage{Code: l.Code, Label: l.Name}
		for _, tr := range r.db.translations {
			if tr.LanguageID != l.ID {
				continue
			}
			if tr.IsAutomatic {
				cov.Automatic++
			} else {
				cov.Manual++
			}
		}
		out = append(out, cov)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// --- entities and names ---

type memEntities struct{ db *memDB }

func (r memEntities) FindEntity(_ context.Context, t models.EntityType, id uint) (*translation.Entity, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	switch t {
	case models.EntityTypeCategory:
		if c, ok := r.db.categories[id]; ok {
			return &translation.Entity{Type: t, ID: id, Name: c.Name}, nil
		}
	case models.EntityTypeFoodItem:
		if it, ok := r.db.items[id]; ok {
			return &translation.Entity{Type: t, ID: id, Name: it.Name}, nil
		}
	}
	return nil, nil
}

func (r memEntities) ListEntities(_ context.Context) ([]translation.Entity, error) {
	return nil, nil
}

func (r memEntities) ListEntitiesMissingLanguage(_ context.Context, _ uint) ([]translation.Entity, error) {
	return nil, nil
}

func (r memEntities) FindNameMatches(_ context.Context, name string) ([]validation.NameMatch, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []validation.NameMatch
	for _, c := range r.db.categories {
		if strings.EqualFold(c.Name, name) {
			out = append(out, validation.NameMatch{Type: models.EntityTypeCategory, ID: c.ID, Name: c.Name})
		}
	}
	for _, it := range r.db.items {
		if strings.EqualFold(it.Name, name) {
			out = append(out, validation.NameMatch{Type: models.EntityTypeFoodItem, ID: it.ID, Name: it.Name})
		}
	}
	return out, nil
}

// --- scheduling ---

type scheduled struct {
	entityType models.EntityType
	entityID   uint
	language   string
}

type recordingScheduler struct {
	mu     sync.Mutex
	jobs   []scheduled
	refuse bool
}

func (s *recordingScheduler) ScheduleEntity(t models.EntityType, id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refuse {
		return false
	}
	s.jobs = append(s.jobs, scheduled{entityType: t, entityID: id})
	return true
}

func (s *recordingScheduler) ScheduleLanguage(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refuse {
		return false
	}
	s.jobs = append(s.jobs, scheduled{language: code})
	return true
}

func (s *recordingScheduler) all() []scheduled {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]scheduled(nil), s.jobs...)
}

type fakeImages struct {
	deleted []string
	err     error
}

func (f *fakeImages) ObjectKey(rawURL string) (string, bool) {
	const base = "http://cdn.test/pantry/"
	if !strings.HasPrefix(rawURL, base) {
		return "", false
	}
	return strings.TrimPrefix(rawURL, base), true
}

func (f *fakeImages) DeleteFile(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.err
}

type stubTranslator struct {
	out string
	err error
}

func (s stubTranslator) Name() string { return "stub" }

func (s stubTranslator) Translate(_ context.Context, text, lang string, _ translation.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.out != "" {
		return s.out, nil
	}
	return lang + ":" + text, nil
}

type stubStats struct{ stats translation.DispatcherStats }

func (s stubStats) Stats() translation.DispatcherStats { return s.stats }

// fixture wires the services over one memDB.
type fixture struct {
	db         *memDB
	scheduler  *recordingScheduler
	images     *fakeImages
	categories CategoryService
	items      FoodItemService
}

func newFixture() *fixture {
	db := newMemDB()
	sched := &recordingScheduler{}
	images := &fakeImages{}
	names := validation.NewNameValidator(memEntities{db})

	items := NewFoodItemService(memItems{db}, memCategories{db}, names, sched,
		itemsConfig(), quietLogger())
	items.(*foodItemService).SetImageStore(images)

	return &fixture{
		db:         db,
		scheduler:  sched,
		images:     images,
		categories: NewCategoryService(memCategories{db}, names, sched, quietLogger()),
		items:      items,
	}
}

func itemsConfig() config.ItemsConfig {
	return config.ItemsConfig{DefaultLimit: 2, MaxLimit: 10}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func uintPtr(u uint) *uint    { return &u }

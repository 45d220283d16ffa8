package translation

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"pantry-backend/internal/models"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeEntities struct {
	items   []Entity
	err     error
	missing func(languageID uint) []Entity
}

func (f *fakeEntities) FindEntity(_ context.Context, t models.EntityType, id uint) (*Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.items {
		if e.Type == t && e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeEntities) ListEntities(_ context.Context) ([]Entity, error) {
	return f.items, f.err
}

func (f *fakeEntities) ListEntitiesMissingLanguage(_ context.Context, languageID uint) ([]Entity, error) {
	if f.missing != nil {
		return f.missing(languageID), nil
	}
	return f.items, f.err
}

type fakeLanguages struct {
	langs []models.Language
	err   error
}

func (f *fakeLanguages) FindActive(_ context.Context) ([]models.Language, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Language
	for _, l := range f.langs {
		if l.Active {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeLanguages) FindByCode(_ context.Context, code string) (*models.Language, error) {
	for _, l := range f.langs {
		if l.Code == code {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

type storeKey struct {
	t    models.EntityType
	id   uint
	lang uint
}

// memStore mimics the unique (entity_type, entity_id, language_id) upsert.
// exists, when set, stands in for the entity row the real insert checks.
type memStore struct {
	mu        sync.Mutex
	rows      map[storeKey]*models.Translation
	nextID    uint
	upsertErr error
	exists    func(models.EntityType, uint) bool
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[storeKey]*models.Translation)}
}

func (s *memStore) FindByKey(_ context.Context, t models.EntityType, id, lang uint) (*models.Translation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[storeKey{t, id, lang}]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (s *memStore) UpsertAutomatic(_ context.Context, tr *models.Translation, preserveManual bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return false, s.upsertErr
	}
	if s.exists != nil && !s.exists(tr.EntityType, tr.EntityID) {
		return false, ErrEntityNotFound
	}
	key := storeKey{tr.EntityType, tr.EntityID, tr.LanguageID}
	if existing, ok := s.rows[key]; ok {
		if preserveManual && !existing.IsAutomatic {
			return false, nil
		}
		existing.TranslatedText = tr.TranslatedText
		existing.IsAutomatic = true
		tr.ID = existing.ID
		return true, nil
	}
	s.nextID++
	cp := *tr
	cp.ID = s.nextID
	tr.ID = cp.ID
	s.rows[key] = &cp
	return true, nil
}

func (s *memStore) put(tr models.Translation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	tr.ID = s.nextID
	s.rows[storeKey{tr.EntityType, tr.EntityID, tr.LanguageID}] = &tr
}

func (s *memStore) forLanguage(lang uint) []*models.Translation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Translation
	for k, v := range s.rows {
		if k.lang == lang {
			out = append(out, v)
		}
	}
	return out
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type call struct {
	text string
	lang string
	tc   Context
}

// fakeTranslator prefixes text with the language code and fails for codes in failFor.
// onCall runs after each call is recorded, outside the lock.
type fakeTranslator struct {
	mu      sync.Mutex
	calls   []call
	failFor map[string]bool
	empty   map[string]bool
	onCall  func(lang string)
}

func (f *fakeTranslator) Name() string { return "fake" }

func (f *fakeTranslator) Translate(_ context.Context, text, lang string, tc Context) (string, error) {
	if f.onCall != nil {
		defer f.onCall(lang)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{text: text, lang: lang, tc: tc})
	if f.failFor[lang] {
		return "", errors.Join(ErrTranslationFailed, errors.New("provider unavailable"))
	}
	if f.empty[lang] {
		return "   ", nil
	}
	return lang + ":" + text, nil
}

func (f *fakeTranslator) langs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.lang)
	}
	return out
}

func threeLanguages() *fakeLanguages {
	return &fakeLanguages{langs: []models.Language{
		{ID: 1, Code: "en", Name: "English", Active: true},
		{ID: 3, Code: "fr", Name: "French", Active: true},
		{ID: 2, Code: "es", Name: "Spanish", Active: true},
		{ID: 4, Code: "de", Name: "German", Active: false},
	}}
}

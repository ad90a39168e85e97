package console

import (
	"context"
	"sync"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Language identifies a supported UI language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// ParseLanguage validates a raw language code.
func ParseLanguage(raw string) (Language, bool) {
	switch Language(raw) {
	case LanguageEnglish, LanguageArabic:
		return Language(raw), true
	}
	return "", false
}

// TranslationEntry holds the per-language variants of a single key.
type TranslationEntry struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

func (e TranslationEntry) forLanguage(lang Language) string {
	if lang == LanguageArabic {
		return e.Ar
	}
	return e.En
}

// defaultTranslations is the built-in dictionary. Overrides persisted
// in the store shadow these entries key by key.
var defaultTranslations = map[string]TranslationEntry{
	"dashboard":        {En: "Dashboard", Ar: "لوحة التحكم"},
	"users":            {En: "Users", Ar: "المستخدمون"},
	"events":           {En: "Events", Ar: "الفعاليات"},
	"parties":          {En: "Parties", Ar: "الحفلات"},
	"languageSettings": {En: "Language Settings", Ar: "إعدادات اللغة"},
	"signIn":           {En: "Sign In", Ar: "تسجيل الدخول"},
	"signOut":          {En: "Sign Out", Ar: "تسجيل الخروج"},
	"username":         {En: "Username", Ar: "اسم المستخدم"},
	"password":         {En: "Password", Ar: "كلمة المرور"},
	"welcome":          {En: "Welcome", Ar: "مرحبا"},
	"loading":          {En: "Loading...", Ar: "جار التحميل..."},
	"save":             {En: "Save", Ar: "حفظ"},
	"cancel":           {En: "Cancel", Ar: "إلغاء"},
}

// Translator resolves UI strings for the active language and lets
// callers override individual entries. Language and overrides persist
// through the Store, so preferences survive restarts and outlive the
// session (they are not cleared on sign-out).
type Translator struct {
	store  Store
	logger Logger

	mu        sync.RWMutex
	language  Language
	overrides map[string]TranslationEntry
	observers map[string]func(Language)
}

// NewTranslator returns a translator defaulting to English.
func NewTranslator(store Store) *Translator {
	return &Translator{
		store:     store,
		logger:    defLogger{},
		language:  LanguageEnglish,
		overrides: map[string]TranslationEntry{},
		observers: map[string]func(Language){},
	}
}

func (t *Translator) WithLogger(logger Logger) *Translator {
	if logger != nil {
		t.logger = logger
	}
	return t
}

// WithDefaultLanguage sets the language used when none is persisted.
func (t *Translator) WithDefaultLanguage(lang Language) *Translator {
	if lang != "" {
		t.mu.Lock()
		t.language = lang
		t.mu.Unlock()
	}
	return t
}

// Init loads the persisted language and overrides. Absent or corrupt
// entries fall back to defaults without failing startup.
func (t *Translator) Init(ctx context.Context) error {
	if raw, err := t.store.Get(ctx, StoreKeyLanguage); err == nil {
		if lang, ok := ParseLanguage(raw); ok {
			t.mu.Lock()
			t.language = lang
			t.mu.Unlock()
		} else {
			t.logger.Warn("ignoring unknown persisted language %q", raw)
		}
	}

	overrides := map[string]TranslationEntry{}
	if err := getJSON(ctx, t.store, StoreKeyCustomTranslations, &overrides); err == nil {
		t.mu.Lock()
		t.overrides = overrides
		t.mu.Unlock()
	}

	return nil
}

// Language returns the active language.
func (t *Translator) Language() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.language
}

// IsRTL reports whether the active language renders right to left.
func (t *Translator) IsRTL() bool {
	return t.Language() == LanguageArabic
}

// SetLanguage switches the active language, persists it, and notifies
// every observer.
func (t *Translator) SetLanguage(ctx context.Context, lang Language) error {
	if _, ok := ParseLanguage(string(lang)); !ok {
		return errors.New("unsupported language", errors.CategoryBadInput).
			WithMetadata(map[string]any{"language": string(lang)})
	}

	t.mu.Lock()
	t.language = lang
	observers := make([]func(Language), 0, len(t.observers))
	for _, fn := range t.observers {
		observers = append(observers, fn)
	}
	t.mu.Unlock()

	if err := t.store.Set(ctx, StoreKeyLanguage, string(lang)); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist language")
	}

	for _, fn := range observers {
		fn(lang)
	}
	return nil
}

// T resolves a translation key for the active language. Resolution
// order: override in the active language, override's English fallback,
// default dictionary, then the key itself so missing entries stay
// visible instead of rendering blank.
func (t *Translator) T(key string) string {
	t.mu.RLock()
	lang := t.language
	override, hasOverride := t.overrides[key]
	t.mu.RUnlock()

	if hasOverride {
		if s := override.forLanguage(lang); s != "" {
			return s
		}
		if override.En != "" {
			return override.En
		}
	}

	if entry, ok := defaultTranslations[key]; ok {
		if s := entry.forLanguage(lang); s != "" {
			return s
		}
		if entry.En != "" {
			return entry.En
		}
	}

	return key
}

// SetOverride adds or replaces a custom translation entry, persists
// the override set, and notifies observers so rendered text refreshes.
func (t *Translator) SetOverride(ctx context.Context, key string, entry TranslationEntry) error {
	t.mu.Lock()
	t.overrides[key] = entry
	snapshot := t.snapshotOverridesLocked()
	t.mu.Unlock()

	if err := t.persistOverrides(ctx, snapshot); err != nil {
		return err
	}
	t.notify()
	return nil
}

// RemoveOverride deletes a custom translation entry, restoring the
// default for its key.
func (t *Translator) RemoveOverride(ctx context.Context, key string) error {
	t.mu.Lock()
	delete(t.overrides, key)
	snapshot := t.snapshotOverridesLocked()
	t.mu.Unlock()

	if err := t.persistOverrides(ctx, snapshot); err != nil {
		return err
	}
	t.notify()
	return nil
}

func (t *Translator) notify() {
	t.mu.RLock()
	lang := t.language
	observers := make([]func(Language), 0, len(t.observers))
	for _, fn := range t.observers {
		observers = append(observers, fn)
	}
	t.mu.RUnlock()

	for _, fn := range observers {
		fn(lang)
	}
}

// Overrides returns a copy of the custom translation set.
func (t *Translator) Overrides() map[string]TranslationEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotOverridesLocked()
}

// Subscribe registers a language-change observer and returns its
// unsubscribe function.
func (t *Translator) Subscribe(fn func(Language)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	id := uuid.NewString()

	t.mu.Lock()
	t.observers[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.observers, id)
		t.mu.Unlock()
	}
}

func (t *Translator) snapshotOverridesLocked() map[string]TranslationEntry {
	out := make(map[string]TranslationEntry, len(t.overrides))
	for k, v := range t.overrides {
		out[k] = v
	}
	return out
}

func (t *Translator) persistOverrides(ctx context.Context, overrides map[string]TranslationEntry) error {
	if err := setJSON(ctx, t.store, StoreKeyCustomTranslations, overrides); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist translation overrides")
	}
	return nil
}

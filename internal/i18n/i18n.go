// Package i18n translates calendar names and application messages.
//
// Calendar terms use their canonical English name as message ID, so the engine
// never needs to know which terms a locale covers. Application messages use the
// config.TKey* identifiers.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-mmcal/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// ErrUnsupportedLanguage is returned for languages without a catalog.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Supported lists the catalog languages; the first one is the source language.
var Supported = []language.Tag{language.English, language.Burmese}

var matcher = language.NewMatcher(Supported)

// myanmarDigitZero is U+1040 MYANMAR DIGIT ZERO.
const myanmarDigitZero = '၀'

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	termIDs    []string
)

// ParseLanguage resolves a BCP 47 tag or a plain name to a supported language.
func ParseLanguage(s string) (language.Tag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "english":
		return language.English, nil
	case "myanmar", "burmese", "mm":
		return language.Burmese, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %w", ErrUnsupportedLanguage, s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return Supported[idx], nil
}

// loadBundle parses every embedded locale file once.
func loadBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			slog.Error(config.ErrLocalesAccess,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyError, err,
			)
			return
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
				slog.Debug(config.MsgLocaleSkip,
					config.LogKeyComponent, config.CompI18n,
					config.LogKeyFile, name,
				)
				continue
			}

			path := "locales/" + name
			if _, err := bundle.LoadMessageFileFS(localeFS, path); err != nil {
				slog.Error(config.ErrLocaleLoad,
					config.LogKeyComponent, config.CompI18n,
					config.LogKeyFile, name,
					config.LogKeyError, err,
				)
				continue
			}
			slog.Debug(config.MsgLocaleLoaded,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
		}

		termIDs = loadTermIDs()
	})
	return bundle
}

// loadTermIDs lists the calendar terms: every message of the Myanmar catalog
// that is not an application message.
func loadTermIDs() []string {
	raw, err := localeFS.ReadFile("locales/active.my.json")
	if err != nil {
		return nil
	}
	var messages map[string]string
	if err := json.Unmarshal(raw, &messages); err != nil {
		slog.Error(config.ErrLocaleLoad,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return nil
	}

	ids := make([]string, 0, len(messages))
	for id := range messages {
		if !isMessageKey(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// isMessageKey reports whether id names an application message rather than a term.
func isMessageKey(id string) bool {
	return strings.ContainsRune(id, '_') && strings.ToLower(id) == id
}

type term struct {
	from, to string
}

// Catalog translates English calendar text into one language.
type Catalog struct {
	lang      language.Tag
	localizer *i18n.Localizer
	words     map[string]string
	// terms is sorted longest first so sentences prefer the longest match.
	terms []term
	// english and back hold the same terms read from the language into English.
	english map[string]string
	back    []term
}

// NewCatalog builds the catalog of a language such as "en" or "my".
func NewCatalog(lang string) (*Catalog, error) {
	tag, err := ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	return newCatalog(tag), nil
}

// MustCatalog is NewCatalog for languages known to be supported.
func MustCatalog(tag language.Tag) *Catalog {
	return newCatalog(tag)
}

func newCatalog(tag language.Tag) *Catalog {
	b := loadBundle()
	c := &Catalog{
		lang:      tag,
		localizer: i18n.NewLocalizer(b, tag.String()),
		words:     make(map[string]string, len(termIDs)),
		english:   make(map[string]string, len(termIDs)),
	}

	if tag == language.English {
		return c
	}
	for _, id := range termIDs {
		msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
		if err != nil || msg == "" {
			continue
		}
		c.words[id] = msg
		c.terms = append(c.terms, term{from: id, to: msg})
	}
	slices.SortFunc(c.terms, longestFirst)

	// Two English terms may share a translation; the longer one is kept.
	for _, t := range c.terms {
		if _, dup := c.english[t.to]; dup {
			continue
		}
		c.english[t.to] = t.from
		c.back = append(c.back, term{from: t.to, to: t.from})
	}
	slices.SortFunc(c.back, longestFirst)
	return c
}

func longestFirst(a, b term) int {
	if d := len(b.from) - len(a.from); d != 0 {
		return d
	}
	return strings.Compare(a.from, b.from)
}

// Language returns the catalog language.
func (c *Catalog) Language() language.Tag {
	return c.lang
}

// Separator returns the list separator of the language.
func (c *Catalog) Separator() string {
	if c.lang == language.Burmese {
		return "၊ "
	}
	return ", "
}

// TranslateWord translates an exact term and returns any other text unchanged.
func (c *Catalog) TranslateWord(s string) string {
	if w, ok := c.words[s]; ok {
		return w
	}
	return s
}

// TranslateSentence replaces every whole-word occurrence of a known term.
// Longer terms win over the shorter terms they contain.
func (c *Catalog) TranslateSentence(s string) string {
	return c.TranslateDigits(replaceTerms(s, c.terms))
}

// EnglishWord reads an exact term of the catalog language back into English.
func (c *Catalog) EnglishWord(s string) string {
	if w, ok := c.english[s]; ok {
		return w
	}
	return s
}

// EnglishSentence is the inverse of TranslateSentence.
func (c *Catalog) EnglishSentence(s string) string {
	return asciiDigits(replaceTerms(s, c.back))
}

// Translate converts s between two supported languages, going through English.
func Translate(s string, from, to language.Tag) string {
	if from == to {
		return s
	}
	if from != language.English {
		s = MustCatalog(from).EnglishSentence(s)
	}
	if to != language.English {
		s = MustCatalog(to).TranslateSentence(s)
	}
	return s
}

func replaceTerms(s string, terms []term) string {
	if len(terms) == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	prev := rune(-1)

	for i := 0; i < len(s); {
		if !isWordRune(prev) {
			if t, ok := matchAt(terms, s, i); ok {
				sb.WriteString(t.to)
				i += len(t.from)
				prev, _ = utf8.DecodeLastRuneInString(t.from)
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		sb.WriteRune(r)
		prev = r
		i += size
	}
	return sb.String()
}

func matchAt(terms []term, s string, i int) (term, bool) {
	for _, t := range terms {
		if !strings.HasPrefix(s[i:], t.from) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(s[i+len(t.from):])
		if i+len(t.from) == len(s) || !isWordRune(next) {
			return t, true
		}
	}
	return term{}, false
}

func isWordRune(r rune) bool {
	return r >= 0 && (unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r))
}

// TranslateNumber writes n with the digits of the language.
func (c *Catalog) TranslateNumber(n int) string {
	return c.TranslateDigits(fmt.Sprint(n))
}

// TranslateDigits rewrites ASCII digits with the digits of the language.
func (c *Catalog) TranslateDigits(s string) string {
	if c.lang != language.Burmese {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return myanmarDigitZero + (r - '0')
		}
		return r
	}, s)
}

func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= myanmarDigitZero && r <= myanmarDigitZero+9 {
			return '0' + (r - myanmarDigitZero)
		}
		return r
	}, s)
}

// TranslateList translates each name of a list.
func (c *Catalog) TranslateList(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = c.TranslateSentence(n)
	}
	return out
}

// Message renders an application message, falling back to its ID.
func (c *Catalog) Message(id string, data map[string]any) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, id,
			config.LogKeyError, err,
		)
		return id
	}
	return msg
}

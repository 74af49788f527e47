// Package i18n loads the embedded message catalogs and carries the request language in a context.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every locale's messages and picks the best one for a request.
type Bundle struct {
	builder  *catalog.Builder
	tags     []language.Tag
	matcher  language.Matcher
	fallback language.Tag
}

// Load builds a Bundle from the embedded catalogs. defaultLocale must be one of them.
func Load(defaultLocale string) (*Bundle, error) {
	return LoadFromFS(embeddedLocales, defaultLocale)
}

// LoadFromFS builds a Bundle from locales/*.yaml in fsys.
func LoadFromFS(fsys fs.FS, defaultLocale string) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}

	b := &Bundle{builder: catalog.NewBuilder(catalog.Fallback(fallback)), fallback: fallback}
	var sawFallback bool

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}

		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: invalid locale %q: %w", path, file.Locale, err)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages map is required", path)
		}

		for key, msg := range file.Messages {
			if err := b.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s: key %q: %w", path, key, err)
			}
		}

		if tag == fallback {
			sawFallback = true
		}
		b.tags = append(b.tags, tag)
	}

	if !sawFallback {
		return nil, fmt.Errorf("default locale %s is not defined in catalogs", fallback)
	}

	// The matcher returns its first tag when nothing matches, so the fallback goes first.
	ordered := []language.Tag{fallback}
	for _, t := range b.tags {
		if t != fallback {
			ordered = append(ordered, t)
		}
	}
	b.tags = ordered
	b.matcher = language.NewMatcher(ordered)
	return b, nil
}

// Supported returns the catalog languages, default first.
func (b *Bundle) Supported() []language.Tag {
	return append([]language.Tag(nil), b.tags...)
}

// Default returns the fallback language.
func (b *Bundle) Default() language.Tag {
	return b.fallback
}

// Match picks the supported language closest to the given preferences
// (plain tags or Accept-Language values). Empty input yields the default.
func (b *Bundle) Match(prefs ...string) language.Tag {
	var wanted []language.Tag
	for _, p := range prefs {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}
	if len(wanted) == 0 {
		return b.fallback
	}

	_, index, confidence := b.matcher.Match(wanted...)
	if confidence == language.No {
		return b.fallback
	}
	return b.tags[index]
}

// Printer returns a printer bound to tag.
func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

// Sprintf formats key in the language stored in ctx.
func (b *Bundle) Sprintf(ctx context.Context, key string, args ...any) string {
	return b.Printer(b.TagFrom(ctx)).Sprintf(key, args...)
}

type ctxKey struct{}

// WithTag stores the request language in ctx.
func WithTag(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// TagFrom returns the language stored in ctx, or the bundle default.
func (b *Bundle) TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
			return tag
		}
	}
	return b.fallback
}

// Package i18n serves the storefront's translated strings. Portuguese is the
// primary locale; English is kept in step for the international landing
// pages.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	domain "github.com/supreme-labs/storefront/internal/domain"
)

//go:embed locales/*.json
var localeFiles embed.FS

const fallbackLocale = "pt"

var supportedLocales = []string{"pt", "en"}

// Bundle holds the loaded message dictionaries.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported map[string]struct{}
}

// Load parses the embedded locale files.
func Load() (*Bundle, error) {
	b := &Bundle{
		dict:      map[string]map[string]string{},
		fallback:  fallbackLocale,
		supported: map[string]struct{}{},
	}
	for _, locale := range supportedLocales {
		b.supported[locale] = struct{}{}
		raw, err := localeFiles.ReadFile("locales/" + locale + ".json")
		if err != nil {
			return nil, fmt.Errorf("i18n: load locale %s: %w", locale, err)
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", locale, err)
		}
		b.dict[locale] = m
	}
	return b, nil
}

// Supported lists the served locales in sorted order.
func (b *Bundle) Supported() []string {
	out := make([]string, 0, len(b.supported))
	for k := range b.supported {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the default locale.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether the locale is served.
func (b *Bundle) IsSupported(locale string) bool {
	_, ok := b.supported[locale]
	return ok
}

// T returns the translation for key in locale, falling back to the default
// locale and finally to the key itself.
func (b *Bundle) T(locale, key string) string {
	if locale != "" {
		if m, ok := b.dict[locale]; ok {
			if v, ok := m[key]; ok {
				return v
			}
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

// StatusLabel translates an order status for display.
func (b *Bundle) StatusLabel(locale string, status domain.OrderStatus) string {
	return b.T(locale, "status."+string(status))
}

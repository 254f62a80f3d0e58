// Package content serves the storefront's static policy and help pages,
// authored in Markdown and rendered to sanitised HTML at load time.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed docs/*.md
var docFiles embed.FS

// ErrDocumentNotFound indicates no document exists for the slug.
var ErrDocumentNotFound = errors.New("content: document not found")

var documentSlugs = []string{"faq", "terms", "privacy", "refund"}

const fallbackLocale = "pt"

// Document is one rendered content page.
type Document struct {
	Slug   string
	Locale string
	Title  string
	HTML   string
}

// Store holds the rendered document set, keyed by slug and locale.
type Store struct {
	docs map[string]map[string]Document
}

// Load renders every embedded document. Rendering happens once; requests
// serve the cached HTML.
func Load() (*Store, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	policy := newContentPolicy()

	store := &Store{docs: map[string]map[string]Document{}}
	for _, slug := range documentSlugs {
		store.docs[slug] = map[string]Document{}
		for _, locale := range []string{"pt", "en"} {
			raw, err := docFiles.ReadFile(fmt.Sprintf("docs/%s.%s.md", slug, locale))
			if err != nil {
				return nil, fmt.Errorf("content: read %s.%s: %w", slug, locale, err)
			}

			var rendered bytes.Buffer
			if err := md.Convert(raw, &rendered); err != nil {
				return nil, fmt.Errorf("content: render %s.%s: %w", slug, locale, err)
			}
			safe := policy.Sanitize(rendered.String())

			store.docs[slug][locale] = Document{
				Slug:   slug,
				Locale: locale,
				Title:  extractTitle(raw),
				HTML:   safe,
			}
		}
	}
	return store, nil
}

// Slugs lists the available document slugs in sorted order.
func (s *Store) Slugs() []string {
	out := make([]string, 0, len(s.docs))
	for slug := range s.docs {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// Get returns the document for slug in the requested locale, falling back to
// Portuguese when the locale has no rendition.
func (s *Store) Get(slug, locale string) (Document, error) {
	locales, ok := s.docs[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return Document{}, ErrDocumentNotFound
	}
	if doc, ok := locales[locale]; ok {
		return doc, nil
	}
	if doc, ok := locales[fallbackLocale]; ok {
		return doc, nil
	}
	return Document{}, ErrDocumentNotFound
}

func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// extractTitle pulls the first level-one heading from the source document.
func extractTitle(raw []byte) string {
	for _, line := range strings.Split(string(raw), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return ""
}

package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/language"

	"github.com/supreme-labs/storefront/internal/repositories"
)

var errLocalePreferencesRequired = errors.New("locale service: preference repository is required")

// ErrLocaleUnsupported indicates the requested locale is not served.
var ErrLocaleUnsupported = errors.New("locale service: unsupported locale")

// ErrLocaleInvalidInput indicates the caller supplied invalid input.
var ErrLocaleInvalidInput = errors.New("locale service: invalid input")

var supportedLocales = []language.Tag{
	language.Portuguese, // pt, the default
	language.English,    // en
}

var localeMatcher = language.NewMatcher(supportedLocales)

// LocaleServiceDeps wires the persistence dependency for locale resolution.
type LocaleServiceDeps struct {
	Repository    repositories.PreferenceRepository
	DefaultLocale string
	Logger        func(context.Context, string, map[string]any)
}

type localeService struct {
	repo          repositories.PreferenceRepository
	defaultLocale string
	logger        func(context.Context, string, map[string]any)
}

// NewLocaleService constructs a LocaleService enforcing dependency
// validation.
func NewLocaleService(deps LocaleServiceDeps) (LocaleService, error) {
	if deps.Repository == nil {
		return nil, errLocalePreferencesRequired
	}
	fallback := strings.TrimSpace(deps.DefaultLocale)
	if fallback == "" {
		fallback = "pt"
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &localeService{
		repo:          deps.Repository,
		defaultLocale: fallback,
		logger:        logger,
	}, nil
}

// Resolve picks the UI locale for a request: an explicit stored preference
// wins, then the Accept-Language header is matched against the supported
// set, and finally the configured default applies.
func (s *localeService) Resolve(ctx context.Context, clientKey, acceptLanguage string) string {
	key := strings.TrimSpace(clientKey)
	if key != "" {
		stored, err := s.repo.LoadLocale(ctx, key)
		if err != nil {
			s.logger(ctx, "locale.load_failed", map[string]any{
				"clientKey": key,
				"error":     err.Error(),
			})
		} else if normalized, ok := normalizeLocale(stored); ok {
			return normalized
		}
	}

	if header := strings.TrimSpace(acceptLanguage); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			_, index, confidence := localeMatcher.Match(tags...)
			if confidence > language.No {
				base, _ := supportedLocales[index].Base()
				return base.String()
			}
		}
	}

	return s.defaultLocale
}

// Set stores an explicit locale choice. Only served locales are accepted;
// persistence failures are logged and swallowed.
func (s *localeService) Set(ctx context.Context, clientKey, locale string) error {
	key := strings.TrimSpace(clientKey)
	if key == "" {
		return ErrLocaleInvalidInput
	}
	normalized, ok := normalizeLocale(locale)
	if !ok {
		return ErrLocaleUnsupported
	}
	if err := s.repo.SaveLocale(ctx, key, normalized); err != nil {
		s.logger(ctx, "locale.save_failed", map[string]any{
			"clientKey": key,
			"locale":    normalized,
			"error":     err.Error(),
		})
	}
	return nil
}

func normalizeLocale(raw string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, supported := range supportedLocales {
		supportedBase, _ := supported.Base()
		if base == supportedBase {
			return base.String(), true
		}
	}
	return "", false
}

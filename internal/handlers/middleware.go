package handlers

import (
	"net/http"
	"strings"

	"github.com/supreme-labs/storefront/internal/platform/requestctx"
	"github.com/supreme-labs/storefront/internal/services"
)

// DefaultClientKeyHeader identifies the requesting storefront client. Each
// browser generates and sticks to one key, scoping all stateful storage.
const DefaultClientKeyHeader = "X-Client-Key"

// ClientKeyMiddleware lifts the client key header onto the request context.
// Routes that need the key enforce its presence themselves.
func ClientKeyMiddleware(headerName string) func(http.Handler) http.Handler {
	header := strings.TrimSpace(headerName)
	if header == "" {
		header = DefaultClientKeyHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key := strings.TrimSpace(r.Header.Get(header)); key != "" {
				r = r.WithContext(requestctx.WithClientKey(r.Context(), key))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LocaleMiddleware resolves the UI locale for the request and stores it on
// the context for handlers that render localised labels.
func LocaleMiddleware(locales services.LocaleService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if locales != nil {
				key, _ := requestctx.ClientKey(r.Context())
				resolved := locales.Resolve(r.Context(), key, r.Header.Get("Accept-Language"))
				r = r.WithContext(requestctx.WithLocale(r.Context(), resolved))
			}
			next.ServeHTTP(w, r)
		})
	}
}

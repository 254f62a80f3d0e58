package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/supreme-labs/storefront/internal/platform/httpx"
	"github.com/supreme-labs/storefront/internal/platform/requestctx"
)

var (
	errEmptyBody    = errors.New("request body is empty")
	errBodyTooLarge = errors.New("request body too large")
)

const defaultBodyLimit = 16 * 1024

func readLimitedBody(r *http.Request, limit int64) ([]byte, error) {
	if r == nil || r.Body == nil {
		return nil, errEmptyBody
	}
	if limit <= 0 {
		limit = defaultBodyLimit
	}
	reader := io.LimitReader(r.Body, limit+1)
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyBody
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// requireClientKey pulls the per-client storage key from the request context
// and writes the canonical error when the header was absent.
func requireClientKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()
	key, ok := requestctx.ClientKey(ctx)
	if !ok || strings.TrimSpace(key) == "" {
		httpx.WriteError(ctx, w, httpx.NewError("missing_client_key", "a client key header is required for this route", http.StatusBadRequest))
		return "", false
	}
	return key, true
}

func requestLocale(r *http.Request) string {
	if locale, ok := requestctx.Locale(r.Context()); ok {
		return locale
	}
	return ""
}

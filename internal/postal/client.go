// Package postal resolves Brazilian postal codes (CEPs) against the public
// ViaCEP service.
package postal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain "github.com/supreme-labs/storefront/internal/domain"
)

const (
	defaultBaseURL = "https://viacep.com.br"
	defaultTimeout = 8 * time.Second
	cepLength      = 8
)

// ErrInvalidCEP is returned before any network call when the postal code is
// not exactly eight digits after stripping formatting.
var ErrInvalidCEP = errors.New("postal: cep must have exactly 8 digits")

// ErrAddressNotFound covers every way a lookup can come back empty: the
// service reporting an unknown cep, transport failures, timeouts, and
// unparseable responses. Callers show one "not found" message for all of
// them.
var ErrAddressNotFound = errors.New("postal: address not found")

// Client resolves CEPs over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  func(context.Context, string, map[string]any)
}

// ClientDeps configures a postal client. Every field is optional.
type ClientDeps struct {
	BaseURL string
	Timeout time.Duration
	Logger  func(context.Context, string, map[string]any)
}

// NewClient constructs a ViaCEP client with the service defaults.
func NewClient(deps ClientDeps) *Client {
	base := strings.TrimRight(strings.TrimSpace(deps.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type viaCEPPayload struct {
	CEP        string `json:"cep"`
	Street     string `json:"logradouro"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"localidade"`
	State      string `json:"uf"`
	IBGE       string `json:"ibge"`
	DDD        string `json:"ddd"`
	Erro       bool   `json:"erro"`
}

// NormalizeCEP strips non-digit characters from the raw input. The result is
// only usable when it has exactly eight digits.
func NormalizeCEP(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup resolves a CEP to a delivery address. The raw input may carry dashes
// or spaces; it is normalised before validation.
func (c *Client) Lookup(ctx context.Context, rawCEP string) (domain.Address, error) {
	cep := NormalizeCEP(rawCEP)
	if len(cep) != cepLength {
		return domain.Address{}, ErrInvalidCEP
	}

	endpoint, err := url.JoinPath(c.baseURL, "ws", cep, "json")
	if err != nil {
		return domain.Address{}, ErrAddressNotFound
	}
	endpoint += "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Address{}, ErrAddressNotFound
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger(ctx, "postal.lookup_failed", map[string]any{
			"cep":   cep,
			"error": err.Error(),
		})
		return domain.Address{}, ErrAddressNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger(ctx, "postal.lookup_failed", map[string]any{
			"cep":    cep,
			"status": resp.StatusCode,
		})
		return domain.Address{}, ErrAddressNotFound
	}

	var payload viaCEPPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger(ctx, "postal.decode_failed", map[string]any{
			"cep":   cep,
			"error": err.Error(),
		})
		return domain.Address{}, ErrAddressNotFound
	}
	if payload.Erro {
		return domain.Address{}, ErrAddressNotFound
	}

	return domain.Address{
		CEP:        payload.CEP,
		Street:     payload.Street,
		Complement: payload.Complement,
		District:   payload.District,
		City:       payload.City,
		State:      payload.State,
		IBGE:       payload.IBGE,
		DDD:        payload.DDD,
	}, nil
}

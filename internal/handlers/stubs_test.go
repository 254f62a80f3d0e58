package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	domain "github.com/supreme-labs/storefront/internal/domain"
	"github.com/supreme-labs/storefront/internal/platform/requestctx"
	"github.com/supreme-labs/storefront/internal/services"
)

type stubCartService struct {
	getFunc         func(ctx context.Context, clientKey string) (services.CartView, error)
	addItemFunc     func(ctx context.Context, cmd services.AddItemCommand) (services.CartView, error)
	setQuantityFunc func(ctx context.Context, cmd services.SetQuantityCommand) (services.CartView, error)
	removeItemFunc  func(ctx context.Context, clientKey, productID string) (services.CartView, error)
	clearFunc       func(ctx context.Context, clientKey string) error
}

func (s *stubCartService) Get(ctx context.Context, clientKey string) (services.CartView, error) {
	if s.getFunc == nil {
		return services.CartView{}, nil
	}
	return s.getFunc(ctx, clientKey)
}

func (s *stubCartService) AddItem(ctx context.Context, cmd services.AddItemCommand) (services.CartView, error) {
	if s.addItemFunc == nil {
		return services.CartView{}, nil
	}
	return s.addItemFunc(ctx, cmd)
}

func (s *stubCartService) SetQuantity(ctx context.Context, cmd services.SetQuantityCommand) (services.CartView, error) {
	if s.setQuantityFunc == nil {
		return services.CartView{}, nil
	}
	return s.setQuantityFunc(ctx, cmd)
}

func (s *stubCartService) RemoveItem(ctx context.Context, clientKey, productID string) (services.CartView, error) {
	if s.removeItemFunc == nil {
		return services.CartView{}, nil
	}
	return s.removeItemFunc(ctx, clientKey, productID)
}

func (s *stubCartService) Clear(ctx context.Context, clientKey string) error {
	if s.clearFunc == nil {
		return nil
	}
	return s.clearFunc(ctx, clientKey)
}

type stubCheckoutService struct {
	submitFunc func(ctx context.Context, cmd services.SubmitCheckoutCommand) (services.CheckoutResult, error)
}

func (s *stubCheckoutService) Submit(ctx context.Context, cmd services.SubmitCheckoutCommand) (services.CheckoutResult, error) {
	if s.submitFunc == nil {
		return services.CheckoutResult{}, nil
	}
	return s.submitFunc(ctx, cmd)
}

type stubOrderService struct {
	listFunc func(ctx context.Context, clientKey string) ([]domain.Order, error)
	findFunc func(ctx context.Context, clientKey, id string) (domain.Order, error)
}

func (s *stubOrderService) List(ctx context.Context, clientKey string) ([]domain.Order, error) {
	if s.listFunc == nil {
		return nil, nil
	}
	return s.listFunc(ctx, clientKey)
}

func (s *stubOrderService) Find(ctx context.Context, clientKey, id string) (domain.Order, error) {
	if s.findFunc == nil {
		return domain.Order{}, nil
	}
	return s.findFunc(ctx, clientKey, id)
}

type stubAttributionService struct {
	captureFunc func(ctx context.Context, clientKey string, query url.Values) (domain.Attribution, error)
	loadFunc    func(ctx context.Context, clientKey string) (domain.Attribution, error)
}

func (s *stubAttributionService) Capture(ctx context.Context, clientKey string, query url.Values) (domain.Attribution, error) {
	if s.captureFunc == nil {
		return domain.Attribution{}, nil
	}
	return s.captureFunc(ctx, clientKey, query)
}

func (s *stubAttributionService) Load(ctx context.Context, clientKey string) (domain.Attribution, error) {
	if s.loadFunc == nil {
		return domain.Attribution{}, nil
	}
	return s.loadFunc(ctx, clientKey)
}

type stubPostalResolver struct {
	lookupFunc func(ctx context.Context, rawCEP string) (domain.Address, error)
}

func (s *stubPostalResolver) Lookup(ctx context.Context, rawCEP string) (domain.Address, error) {
	if s.lookupFunc == nil {
		return domain.Address{}, nil
	}
	return s.lookupFunc(ctx, rawCEP)
}

func withClientKey(req *http.Request, key string) *http.Request {
	return req.WithContext(requestctx.WithClientKey(req.Context(), key))
}

func performRequest(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

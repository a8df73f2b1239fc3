package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/samirrijal/dopc/internal/adapters/http"
	"github.com/samirrijal/dopc/internal/core/domain"
	"github.com/samirrijal/dopc/internal/core/pricing"
	"github.com/samirrijal/dopc/internal/core/usecases"
)

// ---- Mock venue provider ----

type mockVenueProvider struct {
	getStaticFn  func(ctx context.Context, slug string) (*domain.VenueStaticData, error)
	getDynamicFn func(ctx context.Context, slug string) (*domain.VenueDynamicData, error)
}

func (m *mockVenueProvider) GetStatic(ctx context.Context, slug string) (*domain.VenueStaticData, error) {
	if m.getStaticFn != nil {
		return m.getStaticFn(ctx, slug)
	}
	return &domain.VenueStaticData{
		Location:      domain.GeoPoint{Lat: 60.17012143, Lon: 24.92813512},
		MinOrderValue: 1000,
	}, nil
}

func (m *mockVenueProvider) GetDynamic(ctx context.Context, slug string) (*domain.VenueDynamicData, error) {
	if m.getDynamicFn != nil {
		return m.getDynamicFn(ctx, slug)
	}
	return &domain.VenueDynamicData{
		BaseFee: 190,
		Ranges:  []domain.DistanceRange{{Min: 0, Unbounded: true}},
	}, nil
}

// ---- Test helpers ----

func setupApp(provider *mockVenueProvider) *fiber.App {
	deps := &handler.Dependencies{
		Quotes: usecases.NewQuoteService(provider, pricing.MethodHaversine, pricing.StrategyLinear),
		Venues: provider,
	}
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

const quoteURL = "/api/v1/delivery-order-price"

// ---- Tests ----

func TestQuote_Success(t *testing.T) {
	app := setupApp(&mockVenueProvider{})

	req := httptest.NewRequest("GET",
		quoteURL+"?venue_slug=home-assignment-venue-helsinki&cart_value=1000&user_lat=60.17094&user_lon=24.93087", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var got domain.PriceBreakdown
	if err := json.Unmarshal(readBody(t, resp.Body), &got); err != nil {
		t.Fatal(err)
	}
	want := domain.PriceBreakdown{
		TotalPrice:          1190,
		SmallOrderSurcharge: 0,
		CartValue:           1000,
		Delivery:            domain.DeliveryPart{Fee: 190, Distance: 177},
	}
	if got != want {
		t.Errorf("breakdown = %+v, want %+v", got, want)
	}
}

func TestQuote_MissingParams(t *testing.T) {
	app := setupApp(&mockVenueProvider{})

	for _, url := range []string{
		quoteURL,
		quoteURL + "?venue_slug=home-assignment-venue-helsinki",
		quoteURL + "?venue_slug=x-helsinki&cart_value=1000&user_lat=60.17",
	} {
		req := httptest.NewRequest("GET", url, nil)
		resp, _ := app.Test(req, -1)
		if resp.StatusCode != 400 {
			t.Errorf("%s: expected 400, got %d", url, resp.StatusCode)
		}
	}
}

func TestQuote_InvalidValues(t *testing.T) {
	app := setupApp(&mockVenueProvider{})

	cases := []struct {
		name  string
		query string
	}{
		{"negative cart", "venue_slug=v-helsinki&cart_value=-5&user_lat=60.17&user_lon=24.93"},
		{"non-numeric cart", "venue_slug=v-helsinki&cart_value=abc&user_lat=60.17&user_lon=24.93"},
		{"latitude out of range", "venue_slug=v-helsinki&cart_value=1000&user_lat=91&user_lon=24.93"},
		{"longitude out of range", "venue_slug=v-helsinki&cart_value=1000&user_lat=60.17&user_lon=181"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", quoteURL+"?"+tc.query, nil)
			resp, _ := app.Test(req, -1)
			if resp.StatusCode != 400 {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}

			var apiErr handler.APIError
			if err := json.Unmarshal(readBody(t, resp.Body), &apiErr); err != nil {
				t.Fatal(err)
			}
			if apiErr.Code != "bad_request" {
				t.Errorf("code = %q, want bad_request", apiErr.Code)
			}
		})
	}
}

func TestQuote_DeliveryUnavailable(t *testing.T) {
	provider := &mockVenueProvider{
		getDynamicFn: func(ctx context.Context, slug string) (*domain.VenueDynamicData, error) {
			return &domain.VenueDynamicData{
				BaseFee: 190,
				Ranges:  []domain.DistanceRange{{Min: 0, Max: 100}},
			}, nil
		},
	}
	app := setupApp(provider)

	req := httptest.NewRequest("GET",
		quoteURL+"?venue_slug=home-assignment-venue-helsinki&cart_value=1000&user_lat=60.17094&user_lon=24.93087", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var apiErr handler.APIError
	if err := json.Unmarshal(readBody(t, resp.Body), &apiErr); err != nil {
		t.Fatal(err)
	}
	if apiErr.Code != "delivery_unavailable" {
		t.Errorf("code = %q, want delivery_unavailable", apiErr.Code)
	}
}

func TestQuote_UpstreamFailure(t *testing.T) {
	provider := &mockVenueProvider{
		getStaticFn: func(ctx context.Context, slug string) (*domain.VenueStaticData, error) {
			return nil, context.DeadlineExceeded
		},
	}
	app := setupApp(provider)

	req := httptest.NewRequest("GET",
		quoteURL+"?venue_slug=home-assignment-venue-helsinki&cart_value=1000&user_lat=60.17094&user_lon=24.93087", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 502 {
		t.Errorf("expected 502, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(&mockVenueProvider{})

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestReady_WithoutPingerReportsOK(t *testing.T) {
	app := setupApp(&mockVenueProvider{})

	req := httptest.NewRequest("GET", "/v1/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

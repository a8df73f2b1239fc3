package venueapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samirrijal/dopc/internal/adapters/venueapi"
)

const staticJSON = `{
	"venue_raw": {
		"location": {"coordinates": [24.92813512, 60.17012143]},
		"delivery_specs": {"order_minimum_no_surcharge": 1000}
	}
}`

const dynamicJSON = `{
	"venue_raw": {
		"delivery_specs": {
			"delivery_pricing": {
				"base_price": 190,
				"distance_ranges": [
					{"min": 0, "max": 500, "base_fee": 0, "distance_multiplier": 0},
					{"min": 500, "max": 1000, "base_fee": 100, "distance_multiplier": 1},
					{"min": 1000, "max": -1, "base_fee": 0, "distance_multiplier": 0}
				]
			}
		}
	}
}`

func newClient(baseURL string, retries int) *venueapi.Client {
	return venueapi.New(
		map[string]string{"FI": baseURL},
		map[string]string{"helsinki": "FI"},
		2*time.Second,
		retries,
	)
}

func TestGetStatic_ParsesCoordinatesAndMinimum(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/venues/home-assignment-venue-helsinki/static" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, staticJSON)
	}))
	defer srv.Close()

	got, err := newClient(srv.URL, 0).GetStatic(context.Background(), "home-assignment-venue-helsinki")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// GeoJSON stores [lon, lat]; the domain point must be lat/lon.
	if got.Location.Lat != 60.17012143 || got.Location.Lon != 24.92813512 {
		t.Errorf("location = %+v", got.Location)
	}
	if got.MinOrderValue != 1000 {
		t.Errorf("min order = %d, want 1000", got.MinOrderValue)
	}
}

func TestGetDynamic_TranslatesUnboundedSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, dynamicJSON)
	}))
	defer srv.Close()

	got, err := newClient(srv.URL, 0).GetDynamic(context.Background(), "home-assignment-venue-helsinki")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BaseFee != 190 {
		t.Errorf("base fee = %d, want 190", got.BaseFee)
	}
	if len(got.Ranges) != 3 {
		t.Fatalf("ranges = %d, want 3", len(got.Ranges))
	}
	mid := got.Ranges[1]
	if mid.Min != 500 || mid.Max != 1000 || mid.Unbounded || mid.BaseFee != 100 || mid.Multiplier != 1 {
		t.Errorf("middle range = %+v", mid)
	}
	tail := got.Ranges[2]
	if !tail.Unbounded || tail.Max != 0 {
		t.Errorf("the max=-1 sentinel must become an explicit flag, got %+v", tail)
	}
}

func TestClient_UnknownCitySlug(t *testing.T) {
	_, err := newClient("http://unused", 0).GetStatic(context.Background(), "venue-osaka")
	if !errors.Is(err, venueapi.ErrUnknownVenue) {
		t.Fatalf("expected ErrUnknownVenue, got %v", err)
	}
}

func TestClient_Upstream404IsNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 3).GetStatic(context.Background(), "nonexistent-helsinki")
	if !errors.Is(err, venueapi.ErrUnknownVenue) {
		t.Fatalf("expected ErrUnknownVenue, got %v", err)
	}
	if calls != 1 {
		t.Errorf("404 was retried %d times", calls-1)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, staticJSON)
	}))
	defer srv.Close()

	got, err := newClient(srv.URL, 2).GetStatic(context.Background(), "home-assignment-venue-helsinki")
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if got.MinOrderValue != 1000 {
		t.Errorf("min order = %d, want 1000", got.MinOrderValue)
	}
	if calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", calls)
	}
}

func TestClient_RetriesExhausted(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 2).GetStatic(context.Background(), "home-assignment-venue-helsinki")
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 { // initial attempt + 2 retries
		t.Errorf("expected 3 upstream calls, got %d", calls)
	}
}

func TestClient_EmptyDistanceRanges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"venue_raw": {"delivery_specs": {"delivery_pricing": {"base_price": 190, "distance_ranges": []}}}}`)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, 0).GetDynamic(context.Background(), "home-assignment-venue-helsinki")
	if err == nil {
		t.Fatal("expected error for empty schedule")
	}
}

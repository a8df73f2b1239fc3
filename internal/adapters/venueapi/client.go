package venueapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/samirrijal/dopc/internal/core/domain"
	"github.com/samirrijal/dopc/internal/pkg/metrics"
)

// ErrUnknownVenue means the venue slug does not resolve to a configured
// country, or the upstream service does not know the venue.
var ErrUnknownVenue = errors.New("unknown venue")

// Client implements ports.VenueDataProvider against the upstream
// venue-information service. A slug like "home-assignment-venue-helsinki"
// is resolved through the city table to a country, and the request goes to
// that country's API base URL.
type Client struct {
	countries map[string]string // country code -> API base URL
	cities    map[string]string // slug city suffix -> country code
	http      *http.Client
	retries   uint64
}

// New creates a venue API client. countries maps country codes to base
// URLs, cities maps the last slug segment to a country code.
func New(countries, cities map[string]string, timeout time.Duration, retries int) *Client {
	if retries < 0 {
		retries = 0
	}
	return &Client{
		countries: countries,
		cities:    cities,
		http:      &http.Client{Timeout: timeout},
		retries:   uint64(retries),
	}
}

// GetStatic returns the venue's location and order minimum.
func (c *Client) GetStatic(ctx context.Context, venueSlug string) (*domain.VenueStaticData, error) {
	var payload staticPayload
	if err := c.fetch(ctx, venueSlug, "static", &payload); err != nil {
		return nil, err
	}

	coords := payload.VenueRaw.Location.Coordinates
	if len(coords) < 2 {
		return nil, fmt.Errorf("venue %s: static payload has no coordinates", venueSlug)
	}
	return &domain.VenueStaticData{
		Location:      domain.GeoPoint{Lat: coords[1], Lon: coords[0]},
		MinOrderValue: payload.VenueRaw.DeliverySpecs.OrderMinimumNoSurcharge,
	}, nil
}

// GetDynamic returns the venue's current fee schedule.
func (c *Client) GetDynamic(ctx context.Context, venueSlug string) (*domain.VenueDynamicData, error) {
	var payload dynamicPayload
	if err := c.fetch(ctx, venueSlug, "dynamic", &payload); err != nil {
		return nil, err
	}

	wirePricing := payload.VenueRaw.DeliverySpecs.DeliveryPricing
	if len(wirePricing.DistanceRanges) == 0 {
		return nil, fmt.Errorf("venue %s: dynamic payload has no distance ranges", venueSlug)
	}

	ranges := make([]domain.DistanceRange, 0, len(wirePricing.DistanceRanges))
	for _, r := range wirePricing.DistanceRanges {
		dr := domain.DistanceRange{
			Min:        r.Min,
			Max:        r.Max,
			BaseFee:    r.BaseFee,
			Multiplier: r.Multiplier,
		}
		if r.Max == unboundedSentinel {
			dr.Max = 0
			dr.Unbounded = true
		}
		ranges = append(ranges, dr)
	}
	return &domain.VenueDynamicData{
		BaseFee: wirePricing.BasePrice,
		Ranges:  ranges,
	}, nil
}

// Ping checks that at least one configured country endpoint is reachable.
// Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	for _, base := range c.countries {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, base, nil)
		if err != nil {
			return err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("venue api unreachable: %w", err)
		}
		resp.Body.Close()
		return nil
	}
	return errors.New("no venue api endpoints configured")
}

func (c *Client) resolveBaseURL(slug string) (string, error) {
	parts := strings.Split(slug, "-")
	city := strings.ToLower(parts[len(parts)-1])

	country, ok := c.cities[city]
	if !ok {
		return "", fmt.Errorf("%w: unrecognized city %q in slug %q", ErrUnknownVenue, city, slug)
	}
	base, ok := c.countries[country]
	if !ok {
		return "", fmt.Errorf("%w: no venue api configured for country %q", ErrUnknownVenue, country)
	}
	return base, nil
}

// fetch resolves the slug, performs the GET with bounded exponential
// retry, and decodes the JSON body into out.
func (c *Client) fetch(ctx context.Context, slug, endpoint string, out any) error {
	base, err := c.resolveBaseURL(slug)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/venues/%s/%s", base, slug, endpoint)

	op := func() error {
		start := time.Now()
		err := c.get(ctx, url, out)
		metrics.ObserveVenueFetch(endpoint, time.Since(start), err == nil)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.retries), ctx)

	if err := backoff.Retry(op, policy); err != nil {
		return fmt.Errorf("fetch %s data for venue %s: %w", endpoint, slug, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return backoff.Permanent(fmt.Errorf("%w: upstream returned 404", ErrUnknownVenue))
	case resp.StatusCode >= 500:
		// Server-side hiccup, worth retrying.
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return backoff.Permanent(fmt.Errorf("upstream status %d: %s", resp.StatusCode, body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/dopc/internal/core/domain"
	"github.com/samirrijal/dopc/internal/core/ports"
	"github.com/samirrijal/dopc/internal/core/pricing"
)

// QuoteService prices a delivery order against live venue data.
type QuoteService struct {
	venues   ports.VenueDataProvider
	method   pricing.DistanceMethod
	strategy pricing.Strategy
}

// NewQuoteService creates a new QuoteService. The distance method and fee
// lookup strategy come from configuration and hold for every request.
func NewQuoteService(venues ports.VenueDataProvider, method pricing.DistanceMethod, strategy pricing.Strategy) *QuoteService {
	return &QuoteService{venues: venues, method: method, strategy: strategy}
}

// Quote computes the full price breakdown for one order request: fetch the
// venue data, compute the distance, resolve the fee tier, derive the small
// order surcharge, and assemble the totals.
func (s *QuoteService) Quote(ctx context.Context, req domain.OrderRequest) (*domain.PriceBreakdown, error) {
	spec, err := s.fetchVenue(ctx, req.VenueSlug)
	if err != nil {
		return nil, err
	}

	resolver, err := pricing.NewFeeResolver(s.strategy, spec)
	if err != nil {
		return nil, err
	}

	distance := pricing.Distance(req.UserLocation, spec.Location, s.method)
	fee, err := resolver.ResolveFee(distance)
	if err != nil {
		return nil, err
	}

	surcharge := pricing.Surcharge(req.CartValue, spec.MinOrderValue)
	breakdown := pricing.Assemble(req.CartValue, fee, surcharge, distance)
	return &breakdown, nil
}

// fetchVenue loads static and dynamic venue data concurrently and merges
// them into one request-scoped spec.
func (s *QuoteService) fetchVenue(ctx context.Context, slug string) (*domain.VenueDeliverySpec, error) {
	type staticResult struct {
		data *domain.VenueStaticData
		err  error
	}
	staticCh := make(chan staticResult, 1)
	go func() {
		data, err := s.venues.GetStatic(ctx, slug)
		staticCh <- staticResult{data, err}
	}()

	dynamic, dynErr := s.venues.GetDynamic(ctx, slug)
	static := <-staticCh

	if static.err != nil {
		return nil, fmt.Errorf("venue static data: %w", static.err)
	}
	if dynErr != nil {
		return nil, fmt.Errorf("venue dynamic data: %w", dynErr)
	}

	return &domain.VenueDeliverySpec{
		Location:      static.data.Location,
		MinOrderValue: static.data.MinOrderValue,
		BaseFee:       dynamic.BaseFee,
		Ranges:        dynamic.Ranges,
	}, nil
}

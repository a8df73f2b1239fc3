package ports

import (
	"context"

	"github.com/samirrijal/dopc/internal/core/domain"
)

// VenueDataProvider fetches venue delivery data from the upstream
// venue-information service.
type VenueDataProvider interface {
	// GetStatic returns the venue's location and order minimum.
	GetStatic(ctx context.Context, venueSlug string) (*domain.VenueStaticData, error)
	// GetDynamic returns the venue's current fee schedule.
	GetDynamic(ctx context.Context, venueSlug string) (*domain.VenueDynamicData, error)
}

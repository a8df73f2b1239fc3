package http

import (
	"github.com/samirrijal/dopc/internal/core/ports"
	"github.com/samirrijal/dopc/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Quotes *usecases.QuoteService
	Venues ports.VenueDataProvider
}

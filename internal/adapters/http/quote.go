package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/dopc/internal/adapters/venueapi"
	"github.com/samirrijal/dopc/internal/core/domain"
	"github.com/samirrijal/dopc/internal/pkg/metrics"
)

// QuoteHandler serves GET /api/v1/delivery-order-price. It validates the
// query parameters, runs the price calculation, and maps domain failures
// to HTTP error codes.
func QuoteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, problem := parseQuoteQuery(c)
		if problem != "" {
			metrics.QuotesTotal.WithLabelValues("invalid_request").Inc()
			return errBadRequest(c, problem)
		}

		breakdown, err := deps.Quotes.Quote(c.UserContext(), *req)
		switch {
		case err == nil:

		case errors.Is(err, domain.ErrDeliveryUnavailable):
			metrics.QuotesTotal.WithLabelValues("delivery_unavailable").Inc()
			return newError(c, 400, "delivery_unavailable", "delivery is not available for this distance")

		case errors.Is(err, venueapi.ErrUnknownVenue):
			metrics.QuotesTotal.WithLabelValues("unknown_venue").Inc()
			return errBadRequest(c, "unknown venue slug")

		case errors.Is(err, domain.ErrMalformedSchedule):
			metrics.QuotesTotal.WithLabelValues("malformed_schedule").Inc()
			LoggerFromCtx(c.UserContext()).Error("malformed venue fee schedule",
				"venue_slug", req.VenueSlug, "error", err)
			return errInternal(c, "venue fee schedule is invalid")

		default:
			metrics.QuotesTotal.WithLabelValues("upstream_error").Inc()
			LoggerFromCtx(c.UserContext()).Error("venue data fetch failed",
				"venue_slug", req.VenueSlug, "error", err)
			return errBadGateway(c, "failed to fetch venue data")
		}

		metrics.QuotesTotal.WithLabelValues("priced").Inc()
		return c.JSON(breakdown)
	}
}

// parseQuoteQuery validates the four required query parameters. The empty
// problem string means the request is well formed.
func parseQuoteQuery(c *fiber.Ctx) (*domain.OrderRequest, string) {
	slug := c.Query("venue_slug")
	if slug == "" {
		return nil, "venue_slug is required"
	}

	cartStr := c.Query("cart_value")
	if cartStr == "" {
		return nil, "cart_value is required"
	}
	cart, err := strconv.Atoi(cartStr)
	if err != nil || cart < 0 {
		return nil, "cart_value must be a non-negative integer"
	}

	lat, err := strconv.ParseFloat(c.Query("user_lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, "user_lat must be a latitude between -90 and 90"
	}
	lon, err := strconv.ParseFloat(c.Query("user_lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, "user_lon must be a longitude between -180 and 180"
	}

	return &domain.OrderRequest{
		VenueSlug:    slug,
		CartValue:    cart,
		UserLocation: domain.GeoPoint{Lat: lat, Lon: lon},
	}, ""
}

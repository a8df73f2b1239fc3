package pricing

import "github.com/samirrijal/dopc/internal/core/domain"

// Surcharge returns the small order surcharge: the exact shortfall between
// the cart value and the venue's minimum order value, never negative.
func Surcharge(cartValue, minOrderValue int) int {
	if shortfall := minOrderValue - cartValue; shortfall > 0 {
		return shortfall
	}
	return 0
}

// Assemble combines the priced parts into the final breakdown. The total
// is cart value plus delivery fee plus surcharge.
func Assemble(cartValue, deliveryFee, surcharge, distance int) domain.PriceBreakdown {
	return domain.PriceBreakdown{
		TotalPrice:          cartValue + deliveryFee + surcharge,
		SmallOrderSurcharge: surcharge,
		CartValue:           cartValue,
		Delivery: domain.DeliveryPart{
			Fee:      deliveryFee,
			Distance: distance,
		},
	}
}

package domain

// OrderRequest is one delivery price calculation request.
type OrderRequest struct {
	VenueSlug    string
	CartValue    int // smallest currency unit
	UserLocation GeoPoint
}

// DeliveryPart is the delivery section of a price breakdown.
type DeliveryPart struct {
	Fee      int `json:"fee"`
	Distance int `json:"distance"` // meters
}

// PriceBreakdown is the priced result returned to the caller. All monetary
// fields are in the smallest currency unit.
type PriceBreakdown struct {
	TotalPrice          int          `json:"total_price"`
	SmallOrderSurcharge int          `json:"small_order_surcharge"`
	CartValue           int          `json:"cart_value"`
	Delivery            DeliveryPart `json:"delivery"`
}

package venueapi

// Wire types for the venue-information service payloads. Only the fields
// the price calculation needs are mapped; everything else is ignored.

type staticPayload struct {
	VenueRaw struct {
		Location struct {
			// GeoJSON order: [lon, lat].
			Coordinates []float64 `json:"coordinates"`
		} `json:"location"`
		DeliverySpecs struct {
			OrderMinimumNoSurcharge int `json:"order_minimum_no_surcharge"`
		} `json:"delivery_specs"`
	} `json:"venue_raw"`
}

type dynamicPayload struct {
	VenueRaw struct {
		DeliverySpecs struct {
			DeliveryPricing struct {
				BasePrice      int         `json:"base_price"`
				DistanceRanges []wireRange `json:"distance_ranges"`
			} `json:"delivery_pricing"`
		} `json:"delivery_specs"`
	} `json:"venue_raw"`
}

// wireRange carries one fee tier. max carries the sentinel below on the
// final, unbounded tier.
type wireRange struct {
	Min        int `json:"min"`
	Max        int `json:"max"`
	BaseFee    int `json:"base_fee"`
	Multiplier int `json:"distance_multiplier"`
}

// unboundedSentinel is the wire encoding for "no upper bound". It is
// translated to an explicit flag at the domain boundary and never leaks
// past this package.
const unboundedSentinel = -1

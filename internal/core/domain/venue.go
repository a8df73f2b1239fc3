package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDeliveryUnavailable means the delivery distance is beyond every
	// tier of the venue's fee schedule.
	ErrDeliveryUnavailable = errors.New("delivery unavailable for this distance")

	// ErrMalformedSchedule means the fee schedule is not a gapless
	// ascending partition of distances. This is a data-integrity failure
	// on the upstream side, not a user error.
	ErrMalformedSchedule = errors.New("malformed delivery fee schedule")
)

// DistanceRange is one tier of a venue's delivery fee schedule.
// Distances are meters, fees are in the smallest currency unit.
type DistanceRange struct {
	Min        int  // inclusive lower bound
	Max        int  // exclusive upper bound, ignored when Unbounded
	Unbounded  bool // final tier with no upper limit
	BaseFee    int  // flat amount added on top of the venue base fee
	Multiplier int  // amount charged per started 10 m
}

// Contains reports whether the tier covers the given distance.
func (r DistanceRange) Contains(distance int) bool {
	if distance < r.Min {
		return false
	}
	return r.Unbounded || distance < r.Max
}

// VenueStaticData is the slow-changing part of a venue's delivery data.
type VenueStaticData struct {
	Location      GeoPoint
	MinOrderValue int
}

// VenueDynamicData is the fee schedule part of a venue's delivery data.
type VenueDynamicData struct {
	BaseFee int
	Ranges  []DistanceRange
}

// VenueDeliverySpec merges static and dynamic venue data into the view the
// pricing engine works on. It is built fresh per request, never mutated,
// and owned by that request alone.
type VenueDeliverySpec struct {
	Location      GeoPoint
	MinOrderValue int
	BaseFee       int
	Ranges        []DistanceRange // ascending by Min; order is semantic
}

// Validate checks the schedule invariant: ranges start at zero and form a
// gapless, non-overlapping ascending partition, with the unbounded flag
// allowed only on the final tier.
func (v *VenueDeliverySpec) Validate() error {
	if len(v.Ranges) == 0 {
		return fmt.Errorf("%w: no distance ranges", ErrMalformedSchedule)
	}

	next := 0
	for i, r := range v.Ranges {
		if r.Min != next {
			return fmt.Errorf("%w: range %d starts at %dm, want %dm", ErrMalformedSchedule, i, r.Min, next)
		}
		if r.Unbounded {
			if i != len(v.Ranges)-1 {
				return fmt.Errorf("%w: unbounded range %d is not the last", ErrMalformedSchedule, i)
			}
			return nil
		}
		if r.Max <= r.Min {
			return fmt.Errorf("%w: range %d is empty [%dm, %dm)", ErrMalformedSchedule, i, r.Min, r.Max)
		}
		next = r.Max
	}
	return nil
}

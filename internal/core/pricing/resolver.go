package pricing

import (
	"fmt"
	"sort"

	"github.com/samirrijal/dopc/internal/core/domain"
)

// Strategy selects the range lookup implementation. Every strategy picks
// the same tier for every distance; they differ only in lookup cost.
type Strategy string

const (
	// StrategyLinear scans the tiers in order. O(n).
	StrategyLinear Strategy = "linear"
	// StrategyBinary binary-searches the ascending tier boundaries. O(log n).
	StrategyBinary Strategy = "binary"
	// StrategyBucket precomputes a direct-index table with one bucket per
	// 10 m up to the last finite boundary. O(1) per lookup.
	StrategyBucket Strategy = "bucket"
)

// ParseStrategy maps a configuration string to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(s); st {
	case StrategyLinear, StrategyBinary, StrategyBucket:
		return st, nil
	default:
		return "", fmt.Errorf("unknown fee strategy %q", s)
	}
}

// FeeResolver maps a delivery distance to a fee for one venue schedule.
type FeeResolver interface {
	// ResolveFee returns the delivery fee for a distance in meters, or
	// domain.ErrDeliveryUnavailable when the distance is beyond every tier.
	ResolveFee(distance int) (int, error)
}

// NewFeeResolver validates the schedule and builds a resolver for the
// chosen strategy. Schedules that are not a gapless ascending partition
// are rejected with domain.ErrMalformedSchedule; the binary and bucket
// resolvers depend on that invariant and do not re-check it per lookup.
func NewFeeResolver(strategy Strategy, spec *domain.VenueDeliverySpec) (FeeResolver, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch strategy {
	case StrategyLinear:
		return &linearResolver{spec: spec}, nil
	case StrategyBinary:
		return &binaryResolver{spec: spec}, nil
	case StrategyBucket:
		return newBucketResolver(spec), nil
	default:
		return nil, fmt.Errorf("unknown fee strategy %q", strategy)
	}
}

// tierFee applies the shared fee formula: venue base fee plus the tier's
// flat fee plus the multiplier charged per started 10 m of the distance.
func tierFee(spec *domain.VenueDeliverySpec, r domain.DistanceRange, distance int) int {
	return spec.BaseFee + r.BaseFee + (r.Multiplier*distance+9)/10
}

type linearResolver struct {
	spec *domain.VenueDeliverySpec
}

func (l *linearResolver) ResolveFee(distance int) (int, error) {
	for _, r := range l.spec.Ranges {
		if r.Contains(distance) {
			return tierFee(l.spec, r, distance), nil
		}
	}
	return 0, domain.ErrDeliveryUnavailable
}

type binaryResolver struct {
	spec *domain.VenueDeliverySpec
}

func (b *binaryResolver) ResolveFee(distance int) (int, error) {
	rs := b.spec.Ranges
	// Last tier whose lower bound does not exceed the distance. The
	// schedule is a validated partition, so it is the only candidate.
	i := sort.Search(len(rs), func(i int) bool { return rs[i].Min > distance }) - 1
	if i < 0 || !rs[i].Contains(distance) {
		return 0, domain.ErrDeliveryUnavailable
	}
	return tierFee(b.spec, rs[i], distance), nil
}

// bucketSize is the distance quantum of the direct-index table, in meters.
const bucketSize = 10

type bucketResolver struct {
	spec  *domain.VenueDeliverySpec
	table []int // bucket -> index of the first tier intersecting the bucket
	tail  int   // index of the unbounded tail tier, -1 if none
}

func newBucketResolver(spec *domain.VenueDeliverySpec) *bucketResolver {
	r := &bucketResolver{spec: spec, tail: -1}

	limit := 0
	for i, rng := range spec.Ranges {
		if rng.Unbounded {
			r.tail = i
			break
		}
		limit = rng.Max
	}

	r.table = make([]int, (limit+bucketSize-1)/bucketSize)
	tier := 0
	for b := range r.table {
		for !spec.Ranges[tier].Contains(b * bucketSize) {
			tier++
		}
		r.table[b] = tier
	}
	return r
}

func (r *bucketResolver) ResolveFee(distance int) (int, error) {
	if distance < 0 {
		return 0, domain.ErrDeliveryUnavailable
	}
	rs := r.spec.Ranges

	b := distance / bucketSize
	if b >= len(r.table) {
		if r.tail >= 0 && rs[r.tail].Contains(distance) {
			return tierFee(r.spec, rs[r.tail], distance), nil
		}
		return 0, domain.ErrDeliveryUnavailable
	}

	// A bucket can straddle a tier boundary that is not a multiple of the
	// bucket size; step forward to the tier actually containing the distance.
	i := r.table[b]
	for i < len(rs) && !rs[i].Contains(distance) {
		i++
	}
	if i == len(rs) {
		return 0, domain.ErrDeliveryUnavailable
	}
	return tierFee(r.spec, rs[i], distance), nil
}

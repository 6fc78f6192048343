package openlr

import (
	"math"

	"github.com/lintang-b-s/Navigatorx/pkg/apperr"
	"github.com/lintang-b-s/Navigatorx/pkg/geo"
)

// Score coefficients, fixed by spec §4.1 (mirrors router.cpp's Score
// class constants verbatim).
const (
	trueFakeCoeff          = 10.0
	fakeCoeff              = 0.001
	intermediateErrorCoeff = 3.0
	distanceErrorCoeff     = 3.0
	bearingErrorCoeff      = 5.0

	// bearingDistM is the fixed "bearing measurement distance": the
	// sampled point used to derive an actual bearing sits this far
	// along the stage.
	bearingDistM = 25.0

	// scoreEps is the tie-break tolerance used when comparing two
	// total scores for "strictly better" (router.cpp's kEps).
	scoreEps = 1e-9
)

// Score is the composite path cost: a non-negative reduced distance
// (under A* reweighting) plus a non-negative penalty accumulator (spec
// §3, §4.1). Total order: first by Total(), then Distance, then
// Penalty — matching router.cpp's Score::operator<.
type Score struct {
	distance float64
	penalty  float64
}

// Distance returns the accumulated reduced distance in metres.
func (s Score) Distance() float64 { return s.distance }

// Penalty returns the accumulated penalty in metres.
func (s Score) Penalty() float64 { return s.penalty }

// Total returns distance + penalty, the value the priority queue orders
// by first.
func (s Score) Total() float64 { return s.distance + s.penalty }

// AddDistance adds a non-negative metre amount to the distance
// accumulator. Negative inputs are clamped to zero, per spec §4.1 ("all
// other add-operations accept any non-negative metre value; negative
// inputs are clamped to zero at call sites").
func (s Score) AddDistance(m float64) Score {
	if m < 0 {
		m = 0
	}
	s.distance += m
	return s
}

// AddFakePenalty adds the fake-usage penalty for traversing a fake edge
// of length m metres; partOfReal selects the much smaller coefficient
// for fakes that coincide with a real feature.
func (s Score) AddFakePenalty(m float64, partOfReal bool) Score {
	if partOfReal {
		s.penalty += fakeCoeff * m
	} else {
		s.penalty += trueFakeCoeff * m
	}
	return s
}

// AddIntermediateErrorPenalty adds the penalty for passing too far from
// a stage's pivot points, given the distance in metres.
func (s Score) AddIntermediateErrorPenalty(m float64) Score {
	s.penalty += intermediateErrorCoeff * m
	return s
}

// AddDistanceErrorPenalty adds the penalty for exceeding a stage's
// expected distance, given the excess in metres.
func (s Score) AddDistanceErrorPenalty(m float64) Score {
	s.penalty += distanceErrorCoeff * m
	return s
}

// AddBearingPenalty adds the penalty for deviating from an expected
// bearing bucket, given the expected and actual buckets. Fails with
// apperr.ErrInvalidBearing if either bucket is outside [0, geo.NumBuckets).
func (s Score) AddBearingPenalty(expected, actual int) (Score, error) {
	if expected < 0 || expected >= geo.NumBuckets {
		return s, apperr.New(apperr.ErrInvalidBearing, "expected bearing bucket %d out of range", expected)
	}
	if actual < 0 || actual >= geo.NumBuckets {
		return s, apperr.New(apperr.ErrInvalidBearing, "actual bearing bucket %d out of range", actual)
	}
	angle := geo.BucketAngleDiffRad(expected, actual)
	s.penalty += bearingErrorCoeff * angle * bearingDistM
	return s, nil
}

// Less reports whether s sorts strictly before o: first by Total, then
// Distance, then Penalty.
func (s Score) Less(o Score) bool {
	ls, rs := s.Total(), o.Total()
	if ls != rs {
		return ls < rs
	}
	if s.distance != o.distance {
		return s.distance < o.distance
	}
	return s.penalty < o.penalty
}

// BetterThan reports whether s improves on o by more than the tie-break
// tolerance scoreEps, the relaxation test Search uses to decide whether
// a newly discovered score for the same vertex should replace the
// recorded one.
func (s Score) BetterThan(o Score) bool {
	return o.Total()-s.Total() > scoreEps
}

// clampNonNegative is the "clamp at call sites" helper spec §4.1
// mandates for every add-operation argument that isn't already
// guaranteed non-negative.
func clampNonNegative(v float64) float64 {
	return math.Max(v, 0)
}

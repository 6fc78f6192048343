package openlr

import (
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/Navigatorx/pkg/apperr"
	"github.com/lintang-b-s/Navigatorx/pkg/geo"
	"github.com/lintang-b-s/Navigatorx/pkg/util"
)

const (
	reconstructEps        = 1e-5
	fakeCoverageThreshold = 0.5
	singleEdgeThreshold   = 0.8
	singleEdgeCoverageMin = 0.5
)

// reconstruct turns a chain of product edges into the output list of
// real road edges (spec §4.8).
func (d *Decoder) reconstruct(chain []Edge) ([]RoadEdge, error) {
	edges := stripSpecials(chain)

	edges = trimPositiveOffset(edges, d.positiveOffsetM)
	edges = trimNegativeOffset(edges, d.negativeOffsetM)

	frontEdge, frontScore, err := d.findFrontExtension(edges)
	if err != nil {
		return nil, err
	}
	backEdge, backScore, err := d.findBackExtension(edges)
	if err != nil {
		return nil, err
	}

	var path []RoadEdge
	for _, e := range edges {
		if !e.Raw.IsFake() {
			path = append(path, e.Raw)
		}
	}

	if frontScore >= fakeCoverageThreshold && len(path) > 0 && path[0] != frontEdge {
		path = append([]RoadEdge{frontEdge}, path...)
	}
	if backScore >= fakeCoverageThreshold && len(path) > 0 && path[len(path)-1] != backEdge {
		path = append(path, backEdge)
	}

	if len(path) == 0 {
		var err error
		path, err = d.findSingleEdgeApproximation(edges)
		if err != nil {
			return nil, err
		}
	}

	if len(path) == 0 {
		return nil, apperr.New(apperr.ErrEmptyReconstruction, "reconstruction produced an empty path")
	}
	return path, nil
}

// stripSpecials removes every special (zero-length marker) edge, leaving
// only normal product edges (spec §4.8 step 1).
func stripSpecials(chain []Edge) []Edge {
	out := make([]Edge, 0, len(chain))
	for _, e := range chain {
		if !e.Special {
			out = append(out, e)
		}
	}
	return out
}

// findPrefixLengthToConsume walks pairs from the front, returning how
// many whole pairs to drop to consume lengthM metres, using the "stop
// once double the remaining offset is under the next pair's length"
// rule from router.cpp's FindPrefixLengthToConsume.
func findPrefixLengthToConsume(pairs [][2]geo.Coordinate, lengthM float64) int {
	n := 0
	for n < len(pairs) && lengthM > 0 {
		u, v := pairs[n][0], pairs[n][1]
		length := geo.DistanceOnEarth(u, v)
		if 2*lengthM < length {
			break
		}
		lengthM -= length
		n++
	}
	return n
}

// trimPositiveOffset consumes edges from the front while the 2x rule
// (spec §4.8 step 2) allows it.
func trimPositiveOffset(edges []Edge, offsetM float64) []Edge {
	pairs := make([][2]geo.Coordinate, len(edges))
	for i, e := range edges {
		a, b := e.ToPair()
		pairs[i] = [2]geo.Coordinate{a, b}
	}
	n := findPrefixLengthToConsume(pairs, offsetM)
	return edges[n:]
}

// trimNegativeOffset is the symmetric trim from the back, using reversed
// edge pairs (spec §4.8 step 3).
func trimNegativeOffset(edges []Edge, offsetM float64) []Edge {
	pairs := make([][2]geo.Coordinate, len(edges))
	for i := 0; i < len(edges); i++ {
		e := edges[len(edges)-1-i]
		a, b := e.ToPairRev()
		pairs[i] = [2]geo.Coordinate{a, b}
	}
	n := findPrefixLengthToConsume(pairs, offsetM)
	return edges[:len(edges)-n]
}

// forStagePrefix skips leading fake edges confined to stage, and if the
// next edge is non-fake, calls fn with its index; otherwise it is a
// no-op (router.cpp's ForStagePrefix).
func forStagePrefix(edges []Edge, stage int, fn func(i int)) {
	i := 0
	for i < len(edges) && edges[i].Raw.IsFake() && edges[i].U.Stage == stage && edges[i].V.Stage == stage {
		i++
	}
	if i < len(edges) && !edges[i].Raw.IsFake() {
		fn(i)
	}
}

// forEachNonFakeEdge iterates u's outgoing (or ingoing) edges that are
// not fake and pass restriction.
func (d *Decoder) forEachNonFakeEdge(u Junction, outgoing bool, restriction FunctionalRoadClass, fn func(RoadEdge) error) error {
	var edges []RoadEdge
	if outgoing {
		edges = d.cache.Outgoing(u)
	} else {
		edges = d.cache.Ingoing(u)
	}
	for _, e := range edges {
		if e.IsFake() {
			continue
		}
		passes, err := d.passesRestriction(e, restriction)
		if err != nil {
			return err
		}
		if !passes {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// forEachNonFakeClosestEdge iterates the non-fake vicinity candidates of
// point, restricted by FRC (used by the single-edge fallback).
func (d *Decoder) forEachNonFakeClosestEdge(point geo.Coordinate, restriction FunctionalRoadClass, fn func(RoadEdge) error) error {
	vicinity, err := d.graph.FindClosestEdges(point, d.vicinityCandidates)
	if err != nil {
		return err
	}
	for _, v := range vicinity {
		if v.Edge.IsFake() {
			continue
		}
		passes, err := d.passesRestriction(v.Edge, restriction)
		if err != nil {
			return err
		}
		if !passes {
			continue
		}
		if err := fn(v.Edge); err != nil {
			return err
		}
	}
	return nil
}

// findFrontExtension finds the best non-fake edge incoming to the junction
// where stage 0's leading fake prefix meets the first real edge, scored
// against that fake prefix walked in reverse (spec §4.8 step 4).
func (d *Decoder) findFrontExtension(edges []Edge) (RoadEdge, float64, error) {
	best := -1.0
	var bestEdge RoadEdge

	var outerErr error
	forStagePrefix(edges, 0, func(i int) {
		u := edges[i].U
		restriction := d.waypoints[0].LowestFRC
		err := d.forEachNonFakeEdge(u.Junction, false, restriction, func(edge RoadEdge) error {
			revPairs := reversedPairsFrom(edges, i-1)
			score := matchingScore(edge.EndJunction().Point, edge.StartJunction().Point, revPairs)
			if score > best {
				best = score
				bestEdge = edge.Reversed()
			}
			return nil
		})
		if err != nil {
			outerErr = err
		}
	})
	return bestEdge, best, outerErr
}

// findBackExtension is the symmetric search from the tail for the last
// stage (spec §4.8 step 5).
func (d *Decoder) findBackExtension(edges []Edge) (RoadEdge, float64, error) {
	best := -1.0
	var bestEdge RoadEdge

	if len(d.waypoints) < 2 {
		return nil, best, nil
	}
	lastStage := len(d.waypoints) - 2

	reversed := make([]Edge, len(edges))
	for i, e := range edges {
		reversed[len(edges)-1-i] = e
	}

	var outerErr error
	forStagePrefix(reversed, lastStage, func(riFromEnd int) {
		e := reversed[riFromEnd]
		v := e.V
		restriction := d.waypoints[lastStage].LowestFRC
		err := d.forEachNonFakeEdge(v.Junction, true, restriction, func(edge RoadEdge) error {
			fwdIdx := len(edges) - 1 - riFromEnd
			fwdPairs := pairsFrom(edges, fwdIdx+1)
			score := matchingScore(edge.StartJunction().Point, edge.EndJunction().Point, fwdPairs)
			if score > best {
				best = score
				bestEdge = edge
			}
			return nil
		})
		if err != nil {
			outerErr = err
		}
	})
	return bestEdge, best, outerErr
}

// reversedPairsFrom returns ToPairRev() for edges[i] down to edges[0],
// i.e. the reversed chain starting at index i walking towards the
// front. findFrontExtension passes the index just before the first real
// edge, matching router.cpp's reverse_iterator(e) .. rend().
func reversedPairsFrom(edges []Edge, i int) [][2]geo.Coordinate {
	pairs := make([][2]geo.Coordinate, 0, i+1)
	for k := i; k >= 0; k-- {
		a, b := edges[k].ToPairRev()
		pairs = append(pairs, [2]geo.Coordinate{a, b})
	}
	return pairs
}

// pairsFrom returns ToPair() for edges[i..end), the forward chain from
// index i onward.
func pairsFrom(edges []Edge, i int) [][2]geo.Coordinate {
	pairs := make([][2]geo.Coordinate, 0, len(edges)-i)
	for k := i; k < len(edges); k++ {
		a, b := edges[k].ToPair()
		pairs = append(pairs, [2]geo.Coordinate{a, b})
	}
	return pairs
}

// matchingScore is the "matching score" geometry helper (spec §4.9): the
// fraction of |uv| covered by a consecutive run of on-segment pairs with
// non-negative orientation, starting from the first pair.
func matchingScore(u, v geo.Coordinate, pairs [][2]geo.Coordinate) float64 {
	length := geo.DistanceOnEarth(u, v)
	if length == 0 {
		return 0
	}

	cov := 0.0
	for _, pair := range pairs {
		s, t := pair[0], pair[1]
		if !geo.IsPointOnSegmentEps(s, u, v) || !geo.IsPointOnSegmentEps(t, u, v) {
			break
		}
		if geo.DotProduct(u, v, s, t) < -reconstructEps {
			break
		}
		cov += geo.DistanceOnEarth(s, t)
	}
	return geo.Clamp(cov/length, 0, 1)
}

// interval is a clamped [0,1] parameter range one product edge covers on
// a candidate segment.
type interval struct{ start, finish float64 }

// coverage is the "coverage" geometry helper (spec §4.9): the union
// measure of every product edge's on-segment parameter interval.
func coverage(u, v geo.Coordinate, edges []Edge) float64 {
	const lengthThresholdM = 1

	length := geo.DistanceOnEarth(u, v)
	if length < lengthThresholdM {
		return 0
	}

	var intervals []interval
	for _, e := range edges {
		s, t := e.U.Junction.Point, e.V.Junction.Point
		if !geo.IsPointOnSegmentEps(s, u, v) || !geo.IsPointOnSegmentEps(t, u, v) {
			continue
		}
		if geo.DotProduct(u, v, s, t) < -reconstructEps {
			continue
		}

		sp := geo.SegmentParameter(s, u, v)
		tp := geo.SegmentParameter(t, u, v)

		start := geo.Clamp(math.Min(sp, tp), 0, 1)
		finish := geo.Clamp(math.Max(sp, tp), 0, 1)
		intervals = append(intervals, interval{start, finish})
	}

	sort.Slice(intervals, func(i, j int) bool { return intervals[i].start < intervals[j].start })

	total := 0.0
	i := 0
	for i < len(intervals) {
		first := intervals[i].start
		last := intervals[i].finish
		j := i
		for j < len(intervals) && intervals[j].start <= last {
			if intervals[j].finish > last {
				last = intervals[j].finish
			}
			j++
		}
		total += last - first
		i = j
	}
	util.AssertPanic(total <= 1.0+reconstructEps, fmt.Sprintf("coverage %.6f exceeds 1+eps", total))
	return total
}

// findSingleEdgeApproximation is the degenerate-all-fake fallback (spec
// §4.8 step 7): pick the vicinity candidate whose coverage of the fake
// chain is best, accepting it only if it clears both thresholds.
func (d *Decoder) findSingleEdgeApproximation(edges []Edge) ([]RoadEdge, error) {
	expectedLength := 0.0
	for _, e := range edges {
		expectedLength += e.Raw.WeightM()
	}
	if expectedLength < reconstructEps {
		return nil, nil
	}

	bestCoverage := -1.0
	var bestEdge RoadEdge

	check := func(edge RoadEdge) error {
		weight := edge.WeightM()
		fraction := coverage(edge.StartJunction().Point, edge.EndJunction().Point, edges)
		cov := weight * fraction
		if fraction >= singleEdgeThreshold && cov >= bestCoverage {
			bestCoverage = cov
			bestEdge = edge
		}
		return nil
	}

	for _, e := range edges {
		stage := e.U.Stage
		restriction := d.waypoints[stage].LowestFRC
		if err := d.forEachNonFakeClosestEdge(e.U.Junction.Point, restriction, check); err != nil {
			return nil, err
		}
		if err := d.forEachNonFakeClosestEdge(e.V.Junction.Point, restriction, check); err != nil {
			return nil, err
		}
	}

	if bestCoverage >= expectedLength*singleEdgeCoverageMin {
		return []RoadEdge{bestEdge}, nil
	}
	return nil, nil
}

// reverseBearingAt walks backward through links from u, accumulating
// real edge weights until bearingDistM is reached, and returns the
// bearing from u's junction to the sampled point (spec §4.9, router.cpp
// GetReverseBearing).
func (d *Decoder) reverseBearingAt(u Vertex, links map[Vertex]link) (int, error) {
	a := u.Junction.Point
	var b geo.Coordinate

	curr := u
	passed := 0.0
	found := false
	for {
		l, ok := links[curr]
		if !ok {
			break
		}
		prev := l.pred
		edge := l.edge.Raw

		if prev.Stage != curr.Stage {
			break
		}

		weight := edge.WeightM()
		if passed+weight >= bearingDistM {
			delta := bearingDistM - passed
			b = geo.PointAtSegment(edge.EndJunction().Point, edge.StartJunction().Point, delta)
			found = true
			break
		}

		passed += weight
		curr = prev
	}
	if !found {
		b = curr.Junction.Point
	}
	return geo.Bearing(a, b), nil
}

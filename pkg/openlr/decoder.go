package openlr

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lintang-b-s/Navigatorx/pkg/apperr"
	"github.com/lintang-b-s/Navigatorx/pkg/geo"
)

// Decoder matches a location reference against a road graph (spec §2's
// "Driver"). A Decoder instance owns only transient per-decode state —
// pivots, offsets, endpoint junctions, edge caches — and is not safe for
// concurrent decodes sharing the same RoadGraph (spec §5): construct one
// Decoder per concurrent call, and don't overlap Go calls against the
// same graph.
type Decoder struct {
	graph    RoadGraph
	roadInfo RoadInfo

	waypoints        []Waypoint
	positiveOffsetM  float64
	negativeOffsetM  float64

	pivots [][]geo.Coordinate

	sourceJunction Junction
	targetJunction Junction

	// vicinityCandidates is k, the number of nearby real edges each
	// FindClosestEdges call considers. Configurable per spec's "VicinityProvider"
	// contract (see pkg/config.VicinityCandidates); NewDecoder defaults it
	// to MaxVicinityCandidates when the caller passes 0 or less.
	vicinityCandidates int

	cache *edgeCache

	// piS is the potential of the search's source vertex, computed
	// once per search and reused by realDistanceTo's A* reweighting
	// identity (spec §4.6's pruning rule).
	piS float64
}

// sourceVertex is the initial product vertex s: stage 0, started at the
// source junction, zero distance travelled, bearing not yet checked.
func (d *Decoder) sourceVertex() Vertex {
	return Vertex{
		Junction:            d.sourceJunction,
		StageStart:          d.sourceJunction,
		StageStartDistanceM: 0,
		Stage:               0,
		BearingChecked:      false,
	}
}

// NewDecoder builds a Decoder against graph and roadInfo. Both are held
// for the lifetime of the Decoder, which is expected to be one call to
// Go (spec §5). vicinityCandidates is k, the number of nearby real edges
// each vicinity lookup considers; a value <= 0 falls back to
// MaxVicinityCandidates.
func NewDecoder(graph RoadGraph, roadInfo RoadInfo, vicinityCandidates int) *Decoder {
	if vicinityCandidates <= 0 {
		vicinityCandidates = MaxVicinityCandidates
	}
	return &Decoder{graph: graph, roadInfo: roadInfo, vicinityCandidates: vicinityCandidates}
}

// Go is the exposed Decoder API (spec §6): it matches waypoints against
// the graph, trimming positiveOffsetM from the start and negativeOffsetM
// from the end of the reconstructed path. It returns a nil path and a
// non-nil error describing why on any of: fewer than two waypoints; an empty
// pivot set for some stage; search exhaustion; reconstruction producing
// an empty path.
func (d *Decoder) Go(waypoints []Waypoint, positiveOffsetM, negativeOffsetM float64) ([]RoadEdge, error) {
	if err := d.init(waypoints, positiveOffsetM, negativeOffsetM); err != nil {
		return nil, err
	}
	chain, err := d.search()
	if err != nil {
		return nil, err
	}
	path, err := d.reconstruct(chain)
	if err != nil {
		return nil, err
	}
	return path, nil
}

// init resets graph state, computes per-stage pivots, and registers fake
// edges bridging the synthetic source and target junctions into the
// graph (spec §4.4, §4.7 "Init").
func (d *Decoder) init(waypoints []Waypoint, positiveOffsetM, negativeOffsetM float64) error {
	if len(waypoints) < 2 {
		return apperr.New(apperr.ErrInvalidInput, "need at least two waypoints, got %d", len(waypoints))
	}

	d.waypoints = waypoints
	d.positiveOffsetM = positiveOffsetM
	d.negativeOffsetM = negativeOffsetM

	d.graph.ResetFakes()
	d.cache = newEdgeCache(d.graph)

	// One pivot set per intermediate waypoint. The vicinity lookups
	// don't share mutable state (they only read the graph's regular
	// edges), so they run concurrently via errgroup the way Init
	// parallelizes independent per-waypoint work.
	numIntermediate := len(waypoints) - 2
	intermediatePivots := make([][]geo.Coordinate, numIntermediate)
	if numIntermediate > 0 {
		g, _ := errgroup.WithContext(context.Background())
		for idx := 0; idx < numIntermediate; idx++ {
			i := idx + 1
			g.Go(func() error {
				vicinity, err := d.graph.FindClosestEdges(waypoints[i].Point.Point, d.vicinityCandidates)
				if err != nil {
					return apperr.Wrap(apperr.ErrNoVicinity, err, "finding vicinity of waypoint %d", i)
				}

				stagePivots := make([]geo.Coordinate, 0, 2*len(vicinity))
				for _, v := range vicinity {
					stagePivots = append(stagePivots, v.Edge.StartJunction().Point, v.Edge.EndJunction().Point)
				}
				if len(stagePivots) == 0 {
					return apperr.New(apperr.ErrNoVicinity, "no road edges near intermediate waypoint %d", i)
				}
				intermediatePivots[idx] = stagePivots
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	d.pivots = make([][]geo.Coordinate, 0, len(waypoints)-1)
	d.pivots = append(d.pivots, intermediatePivots...)
	d.pivots = append(d.pivots, []geo.Coordinate{waypoints[len(waypoints)-1].Point.Point})

	d.sourceJunction = NewJunction(waypoints[0].Point.Point)
	sourceVicinity, err := d.graph.FindClosestEdges(d.sourceJunction.Point, d.vicinityCandidates)
	if err != nil {
		return apperr.Wrap(apperr.ErrNoVicinity, err, "finding vicinity of source")
	}
	d.graph.AddFakeEdges(d.sourceJunction, sourceVicinity)

	d.targetJunction = NewJunction(waypoints[len(waypoints)-1].Point.Point)
	targetVicinity, err := d.graph.FindClosestEdges(d.targetJunction.Point, d.vicinityCandidates)
	if err != nil {
		return apperr.Wrap(apperr.ErrNoVicinity, err, "finding vicinity of target")
	}
	d.graph.AddFakeEdges(d.targetJunction, targetVicinity)

	return nil
}

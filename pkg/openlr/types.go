// Package openlr implements the OpenLR line-location decoder: matching a
// short sequence of geographic waypoints against a road graph by searching
// a product graph of (junction, stage-progress) states, the way
// openlr::Router does in the upstream routing engine this package is
// ported from.
package openlr

import "github.com/lintang-b-s/Navigatorx/pkg/geo"

// FunctionalRoadClass is an ordinal road importance: smaller is more
// major. A Waypoint's FRC is the lowest acceptable class; candidate edges
// must be at least that major, within FRCTolerance ordinals.
type FunctionalRoadClass int

// FRCTolerance is the fixed slack applied when checking whether a
// candidate edge's FRC passes a waypoint's restriction.
const FRCTolerance = 3

// PassesRestriction reports whether frc is an acceptable substitute for
// restriction, i.e. no more than FRCTolerance ordinals less major.
func (frc FunctionalRoadClass) PassesRestriction(restriction FunctionalRoadClass) bool {
	return int(frc) <= int(restriction)+FRCTolerance
}

// Waypoint is one point of an input location reference.
type Waypoint struct {
	Point Junction

	// Bearing is the expected heading bucket in [0, geo.NumBuckets)
	// from this waypoint towards the next.
	Bearing int

	// DistanceToNextM is the expected distance in metres to the next
	// waypoint; 0 for the last waypoint.
	DistanceToNextM float64

	// LowestFRC is the lowest-acceptable functional road class for the
	// stage starting at this waypoint.
	LowestFRC FunctionalRoadClass
}

// Junction is a node in the road graph: a geographic point plus an
// altitude. Junction is comparable (all fields are plain floats), so it
// can be used directly as a map key by EdgeCache and the decoder's Links
// map, which rely on struct equality.
type Junction struct {
	Point    geo.Coordinate
	Altitude float64
}

// NewJunction builds a Junction at sea level, the form every synthetic
// source/target endpoint and every reconstructed test fixture uses.
func NewJunction(p geo.Coordinate) Junction {
	return Junction{Point: p}
}

// Less gives Junction a total order, lexicographic over (lat, lon,
// altitude). Used by Vertex.Less; map-key use relies on struct
// equality, not this.
func (j Junction) Less(o Junction) bool {
	if j.Point.Lat != o.Point.Lat {
		return j.Point.Lat < o.Point.Lat
	}
	if j.Point.Lon != o.Point.Lon {
		return j.Point.Lon < o.Point.Lon
	}
	return j.Altitude < o.Altitude
}

// RoadEdge is the external, consumed edge contract (spec §6): a directed
// edge in the road graph, either backed by a real feature or synthesized
// ("fake") to bridge an off-graph query point into the graph.
type RoadEdge interface {
	StartJunction() Junction
	EndJunction() Junction

	// IsFake reports whether this edge was synthesized rather than
	// read from the underlying road network.
	IsFake() bool

	// IsPartOfReal reports whether a fake edge lies along a real
	// feature's geometry (as opposed to bridging two disjoint points).
	// Always false for a non-fake edge.
	IsPartOfReal() bool

	// FeatureID returns the backing feature id and true when this edge
	// is regular; (0, false) when it is fake.
	FeatureID() (int64, bool)

	// WeightM is the edge's metre length.
	WeightM() float64

	// Reversed returns the same edge traversed in the opposite
	// direction.
	Reversed() RoadEdge
}

// EdgeProjection pairs a candidate real edge with the closest in-segment
// projection of some query point onto it, as returned by
// VicinityProvider.FindClosestEdges.
type EdgeProjection struct {
	Edge      RoadEdge
	Projected Junction
}

// RoadInfo is the external, consumed contract giving a regular edge's
// road classification, keyed by feature id (spec §6).
type RoadInfo interface {
	Get(featureID int64) (RoadInfoEntry, error)
}

// RoadInfoEntry is the metadata RoadInfo.Get returns for a feature.
type RoadInfoEntry struct {
	FRC FunctionalRoadClass
}

// RoadGraph is the external, consumed road-graph contract (spec §6):
// vicinity lookup, the fake-edge registry, and deterministic real-edge
// enumeration.
type RoadGraph interface {
	VicinityProvider

	// AddFakeEdges registers synthetic bidirectional connectors
	// between junction and each vicinity projection.
	AddFakeEdges(junction Junction, vicinity []EdgeProjection)

	// ResetFakes clears every previously registered fake edge.
	ResetFakes()

	GetRegularOutgoingEdges(j Junction) []RoadEdge
	GetRegularIngoingEdges(j Junction) []RoadEdge
	GetFakeOutgoingEdges(j Junction) []RoadEdge
	GetFakeIngoingEdges(j Junction) []RoadEdge
}

// VicinityProvider finds the k real edges nearest a query point (spec
// §4.4). Split out of RoadGraph as its own interface since source/target
// attachment, pivot seeding, and the single-edge fallback only need this
// slice of the contract.
type VicinityProvider interface {
	FindClosestEdges(point geo.Coordinate, k int) ([]EdgeProjection, error)
}

// MaxVicinityCandidates is the default k passed to FindClosestEdges when
// NewDecoder isn't given an override, matching router.cpp's
// kMaxRoadCandidates. Deployments can configure this via
// pkg/config.VicinityCandidates.
const MaxVicinityCandidates = 10

// Vertex is a product-graph state: a geographic junction paired with
// progress through the reference (spec §3).
type Vertex struct {
	Junction Junction

	// StageStart is the junction at which the current stage began.
	StageStart Junction

	// StageStartDistanceM is the real distance travelled at which the
	// current stage began.
	StageStartDistanceM float64

	// Stage is the 0-based index of the segment between waypoint
	// Stage and waypoint Stage+1.
	Stage int

	// BearingChecked is true once a bearing check has fired for this
	// stage along this path.
	BearingChecked bool
}

// Less gives Vertex the total order router.cpp's operator< specifies:
// lexicographic over (junction, stageStart, stageStartDistance, stage,
// bearingChecked).
func (v Vertex) Less(o Vertex) bool {
	if v.Junction != o.Junction {
		return v.Junction.Less(o.Junction)
	}
	if v.StageStart != o.StageStart {
		return v.StageStart.Less(o.StageStart)
	}
	if v.StageStartDistanceM != o.StageStartDistanceM {
		return v.StageStartDistanceM < o.StageStartDistanceM
	}
	if v.Stage != o.Stage {
		return v.Stage < o.Stage
	}
	return !v.BearingChecked && o.BearingChecked
}

// Edge is a product-graph edge: a transition between two Vertex values,
// either wrapping a real RoadEdge (normal) or marking a stage-advance /
// bearing-check transition (special). Special edges never appear in the
// reconstructed output path.
type Edge struct {
	U, V    Vertex
	Raw     RoadEdge
	Special bool
}

// MakeNormalEdge wraps a real RoadEdge traversal between u and v.
func MakeNormalEdge(u, v Vertex, raw RoadEdge) Edge {
	return Edge{U: u, V: v, Raw: raw, Special: false}
}

// MakeSpecialEdge builds the zero-length marker edge for a stage-advance
// or bearing-check transition.
func MakeSpecialEdge(u, v Vertex) Edge {
	return Edge{U: u, V: v, Raw: makeFakeEdge(u.Junction, v.Junction, false), Special: true}
}

// ToPair returns the (start, end) points of the edge's underlying
// geometry, in traversal order.
func (e Edge) ToPair() (geo.Coordinate, geo.Coordinate) {
	return e.Raw.StartJunction().Point, e.Raw.EndJunction().Point
}

// ToPairRev returns the (end, start) points, i.e. the geometry reversed.
func (e Edge) ToPairRev() (geo.Coordinate, geo.Coordinate) {
	return e.Raw.EndJunction().Point, e.Raw.StartJunction().Point
}

// Package roadgraph provides a concrete pkg/openlr.RoadGraph: an
// in-memory road network backed by a tidwall/rtree vicinity index
// (pkg/spatialindex), the external collaborator the decoder's spec
// treats as out of scope but which a runnable decode still needs.
package roadgraph

import (
	"github.com/lintang-b-s/Navigatorx/pkg/geo"
	"github.com/lintang-b-s/Navigatorx/pkg/openlr"
	"github.com/lintang-b-s/Navigatorx/pkg/spatialindex"
)

// RealEdge is a regular, feature-backed road edge.
type RealEdge struct {
	featureID int64
	start, end openlr.Junction
	weightM   float64
}

func (e RealEdge) StartJunction() openlr.Junction  { return e.start }
func (e RealEdge) EndJunction() openlr.Junction    { return e.end }
func (e RealEdge) IsFake() bool                    { return false }
func (e RealEdge) IsPartOfReal() bool              { return false }
func (e RealEdge) FeatureID() (int64, bool)        { return e.featureID, true }
func (e RealEdge) WeightM() float64                { return e.weightM }
func (e RealEdge) Reversed() openlr.RoadEdge {
	return RealEdge{featureID: e.featureID, start: e.end, end: e.start, weightM: e.weightM}
}

// FakeEdge is a synthesized connector: either bridging an off-graph
// query point to a real edge's projection (partOfReal false), or a stub
// running from that projection to one of the real edge's endpoints
// along the real edge's own geometry (partOfReal true).
type FakeEdge struct {
	start, end openlr.Junction
	partOfReal bool
	weightM    float64
}

func (e FakeEdge) StartJunction() openlr.Junction { return e.start }
func (e FakeEdge) EndJunction() openlr.Junction   { return e.end }
func (e FakeEdge) IsFake() bool                   { return true }
func (e FakeEdge) IsPartOfReal() bool             { return e.partOfReal }
func (e FakeEdge) FeatureID() (int64, bool)       { return 0, false }
func (e FakeEdge) WeightM() float64               { return e.weightM }
func (e FakeEdge) Reversed() openlr.RoadEdge {
	return FakeEdge{start: e.end, end: e.start, partOfReal: e.partOfReal, weightM: e.weightM}
}

// Graph is an in-memory openlr.RoadGraph: adjacency lists for regular
// edges, a per-decode fake-edge registry, and an rtree vicinity index
// over every regular edge's geometry.
type Graph struct {
	outAdj map[openlr.Junction][]openlr.RoadEdge
	inAdj  map[openlr.Junction][]openlr.RoadEdge

	fakeOut map[openlr.Junction][]openlr.RoadEdge
	fakeIn  map[openlr.Junction][]openlr.RoadEdge

	edges []RealEdge
	index *spatialindex.EdgeIndex
}

// NewGraph builds an empty in-memory graph, ready for AddRealEdge calls.
func NewGraph() *Graph {
	return &Graph{
		outAdj:  make(map[openlr.Junction][]openlr.RoadEdge),
		inAdj:   make(map[openlr.Junction][]openlr.RoadEdge),
		fakeOut: make(map[openlr.Junction][]openlr.RoadEdge),
		fakeIn:  make(map[openlr.Junction][]openlr.RoadEdge),
		index:   spatialindex.NewEdgeIndex(),
	}
}

// AddRealEdge registers a bidirectional regular road edge backed by
// featureID between start and end; the graph stores and indexes both
// traversal directions.
func (g *Graph) AddRealEdge(featureID int64, start, end openlr.Junction) {
	weight := geo.DistanceOnEarth(start.Point, end.Point)
	fwd := RealEdge{featureID: featureID, start: start, end: end, weightM: weight}
	rev := RealEdge{featureID: featureID, start: end, end: start, weightM: weight}

	g.outAdj[start] = append(g.outAdj[start], fwd)
	g.inAdj[end] = append(g.inAdj[end], fwd)
	g.outAdj[end] = append(g.outAdj[end], rev)
	g.inAdj[start] = append(g.inAdj[start], rev)

	id := len(g.edges)
	g.edges = append(g.edges, fwd)
	g.index.Insert(id, start.Point, end.Point)
}

// FindClosestEdges implements openlr.VicinityProvider: up to k regular
// edges nearest point, paired with the closest in-segment projection.
func (g *Graph) FindClosestEdges(point geo.Coordinate, k int) ([]openlr.EdgeProjection, error) {
	candidates := g.index.Nearest(point, k)
	out := make([]openlr.EdgeProjection, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, openlr.EdgeProjection{
			Edge:      g.edges[c.Handle.ID],
			Projected: openlr.NewJunction(c.Projected),
		})
	}
	return out, nil
}

// AddFakeEdges registers the bidirectional connectors that bridge
// junction into the regular graph through each vicinity candidate's
// projection: one bridging hop (junction <-> projection) plus, when the
// projection isn't already one of the edge's own endpoints, one
// part-of-real stub per endpoint (projection <-> start, projection <->
// end) so the search can continue onto the rest of the real network.
func (g *Graph) AddFakeEdges(junction openlr.Junction, vicinity []openlr.EdgeProjection) {
	for _, v := range vicinity {
		proj := v.Projected
		start := v.Edge.StartJunction()
		end := v.Edge.EndJunction()

		g.linkFake(junction, proj, false)
		if proj != start {
			g.linkFake(proj, start, true)
		}
		if proj != end {
			g.linkFake(proj, end, true)
		}
	}
}

func (g *Graph) linkFake(a, b openlr.Junction, partOfReal bool) {
	weight := geo.DistanceOnEarth(a.Point, b.Point)
	fwd := FakeEdge{start: a, end: b, partOfReal: partOfReal, weightM: weight}
	rev := FakeEdge{start: b, end: a, partOfReal: partOfReal, weightM: weight}

	g.fakeOut[a] = append(g.fakeOut[a], fwd)
	g.fakeIn[b] = append(g.fakeIn[b], fwd)
	g.fakeOut[b] = append(g.fakeOut[b], rev)
	g.fakeIn[a] = append(g.fakeIn[a], rev)
}

// ResetFakes clears every previously registered fake edge.
func (g *Graph) ResetFakes() {
	g.fakeOut = make(map[openlr.Junction][]openlr.RoadEdge)
	g.fakeIn = make(map[openlr.Junction][]openlr.RoadEdge)
}

func (g *Graph) GetRegularOutgoingEdges(j openlr.Junction) []openlr.RoadEdge { return g.outAdj[j] }
func (g *Graph) GetRegularIngoingEdges(j openlr.Junction) []openlr.RoadEdge  { return g.inAdj[j] }
func (g *Graph) GetFakeOutgoingEdges(j openlr.Junction) []openlr.RoadEdge    { return g.fakeOut[j] }
func (g *Graph) GetFakeIngoingEdges(j openlr.Junction) []openlr.RoadEdge     { return g.fakeIn[j] }

package openlr

import "github.com/lintang-b-s/Navigatorx/pkg/geo"

// fakeEdge is the decoder's own minimal RoadEdge, used only to back
// special product edges (which never reach the output path, so they
// never need a feature id). Concrete RoadGraph implementations
// (pkg/roadgraph) have their own fake-edge representation for the
// vicinity-bridging edges the search traverses; this one exists
// purely so MakeSpecialEdge has something to wrap, mirroring
// routing::Edge::MakeFake used by Router::Edge::MakeSpecial.
type fakeEdge struct {
	start, end Junction
	partOfReal bool
}

func makeFakeEdge(a, b Junction, partOfReal bool) RoadEdge {
	return fakeEdge{start: a, end: b, partOfReal: partOfReal}
}

func (f fakeEdge) StartJunction() Junction    { return f.start }
func (f fakeEdge) EndJunction() Junction      { return f.end }
func (f fakeEdge) IsFake() bool               { return true }
func (f fakeEdge) IsPartOfReal() bool         { return f.partOfReal }
func (f fakeEdge) FeatureID() (int64, bool)   { return 0, false }
func (f fakeEdge) Reversed() RoadEdge         { return fakeEdge{start: f.end, end: f.start, partOfReal: f.partOfReal} }
func (f fakeEdge) WeightM() float64           { return geo.DistanceOnEarth(f.start.Point, f.end.Point) }

// Package spatialindex wraps github.com/tidwall/rtree the way the
// routing engine's R-tree wrapper does: an expanding-bounding-box search
// around a query point, rather than a native k-nearest-neighbour query
// (tidwall/rtree doesn't expose one).
package spatialindex

import (
	"math"
	"sort"

	"github.com/lintang-b-s/Navigatorx/pkg/geo"
	"github.com/tidwall/rtree"
)

// EdgeHandle is the opaque payload stored per real edge: enough for a
// caller to recover which edge matched, without the index needing to
// know about pkg/openlr.RoadEdge.
type EdgeHandle struct {
	ID         int
	Start, End geo.Coordinate
}

// EdgeIndex indexes real road edges by their endpoint bounding box, for
// vicinity queries (pkg/roadgraph's FindClosestEdges).
type EdgeIndex struct {
	tr *rtree.RTreeG[EdgeHandle]
}

func NewEdgeIndex() *EdgeIndex {
	var tr rtree.RTreeG[EdgeHandle]
	return &EdgeIndex{tr: &tr}
}

// Insert registers an edge's id and endpoint geometry.
func (idx *EdgeIndex) Insert(id int, start, end geo.Coordinate) {
	minLat := math.Min(start.Lat, end.Lat)
	maxLat := math.Max(start.Lat, end.Lat)
	minLon := math.Min(start.Lon, end.Lon)
	maxLon := math.Max(start.Lon, end.Lon)
	idx.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, EdgeHandle{ID: id, Start: start, End: end})
}

// Candidate is one nearest-edge match: the stored handle, the closest
// in-segment projection of the query point, and the distance to it.
type Candidate struct {
	Handle    EdgeHandle
	Projected geo.Coordinate
	DistanceM float64
}

const (
	initialSearchRadiusKM = 0.2
	maxSearchRadiusKM     = 200
)

// Nearest returns up to k edges closest to point, by closest in-segment
// projected distance. The search radius starts at initialSearchRadiusKM
// and doubles until k distinct candidates are found or maxSearchRadiusKM
// is exceeded, mirroring the teacher's SearchWithinRadius expanding-box
// technique rather than relying on a native k-NN query.
func (idx *EdgeIndex) Nearest(point geo.Coordinate, k int) []Candidate {
	seen := make(map[int]Candidate)

	for radius := initialSearchRadiusKM; radius <= maxSearchRadiusKM; radius *= 2 {
		lowerLat, lowerLon := geo.GetDestinationPoint(point.Lat, point.Lon, 225, radius)
		upperLat, upperLon := geo.GetDestinationPoint(point.Lat, point.Lon, 45, radius)

		idx.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
			func(min, max [2]float64, h EdgeHandle) bool {
				if _, ok := seen[h.ID]; !ok {
					proj, dist := projectOnSegment(point, h.Start, h.End)
					seen[h.ID] = Candidate{Handle: h, Projected: proj, DistanceM: dist}
				}
				return true
			})

		if len(seen) >= k {
			break
		}
	}

	candidates := make([]Candidate, 0, len(seen))
	for _, c := range seen {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].DistanceM < candidates[j].DistanceM })
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// projectOnSegment returns the closest point on [a,b] to p and the
// distance to it, via geo's s2-backed spherical projection.
func projectOnSegment(p, a, b geo.Coordinate) (geo.Coordinate, float64) {
	proj := geo.ProjectPointToLineCoord(a, b, p)
	return proj, geo.DistanceOnEarth(p, proj)
}

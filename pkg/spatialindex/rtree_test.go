package spatialindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/Navigatorx/pkg/geo"
)

func TestEdgeIndexNearestFindsClosestSegment(t *testing.T) {
	idx := NewEdgeIndex()

	origin := geo.NewCoordinate(0, 0)
	near := geo.DestinationPoint(origin, 90, 50)
	far := geo.DestinationPoint(origin, 90, 50000)

	idx.Insert(1, origin, near)
	idx.Insert(2, geo.DestinationPoint(far, 0, 100), geo.DestinationPoint(far, 0, 200))

	candidates := idx.Nearest(origin, 1)
	require.Len(t, candidates, 1)
	assert.Equal(t, 1, candidates[0].Handle.ID)
}

func TestEdgeIndexNearestProjectsOntoSegment(t *testing.T) {
	idx := NewEdgeIndex()

	a := geo.NewCoordinate(0, 0)
	b := geo.DestinationPoint(a, 90, 100)
	idx.Insert(1, a, b)

	mid := geo.PointAtSegment(a, b, 50)
	query := geo.DestinationPoint(mid, 0, 10)

	candidates := idx.Nearest(query, 1)
	require.Len(t, candidates, 1)
	assert.InDelta(t, 10, candidates[0].DistanceM, 2.0)
}

func TestEdgeIndexNearestExpandsRadiusUntilKFound(t *testing.T) {
	idx := NewEdgeIndex()
	origin := geo.NewCoordinate(0, 0)

	for i := 0; i < 3; i++ {
		far := geo.DestinationPoint(origin, 90, float64(10000*(i+1)))
		idx.Insert(i, far, geo.DestinationPoint(far, 0, 10))
	}

	candidates := idx.Nearest(origin, 3)
	assert.Len(t, candidates, 3)
}

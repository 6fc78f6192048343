package roadgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/Navigatorx/pkg/geo"
	"github.com/lintang-b-s/Navigatorx/pkg/openlr"
)

func TestAddRealEdgeRegistersBothDirections(t *testing.T) {
	g := NewGraph()
	a := openlr.NewJunction(geo.NewCoordinate(0, 0))
	b := openlr.NewJunction(geo.NewCoordinate(0, 1))

	g.AddRealEdge(1, a, b)

	out := g.GetRegularOutgoingEdges(a)
	require.Len(t, out, 1)
	assert.Equal(t, b, out[0].EndJunction())

	in := g.GetRegularIngoingEdges(b)
	require.Len(t, in, 1)
	assert.Equal(t, a, in[0].StartJunction())

	backOut := g.GetRegularOutgoingEdges(b)
	require.Len(t, backOut, 1)
	assert.Equal(t, a, backOut[0].EndJunction())
}

func TestFindClosestEdgesReturnsProjection(t *testing.T) {
	g := NewGraph()
	a := openlr.NewJunction(geo.NewCoordinate(0, 0))
	b := openlr.NewJunction(geo.NewCoordinate(0, 1))
	g.AddRealEdge(1, a, b)

	query := geo.NewCoordinate(0.0001, 0.5)
	results, err := g.FindClosestEdges(query, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	id, ok := results[0].Edge.FeatureID()
	require.True(t, ok)
	assert.Equal(t, int64(1), id)
}

func TestAddFakeEdgesBridgesQueryPointIntoGraph(t *testing.T) {
	g := NewGraph()
	a := openlr.NewJunction(geo.NewCoordinate(0, 0))
	b := openlr.NewJunction(geo.NewCoordinate(0, 1))
	g.AddRealEdge(1, a, b)

	query := openlr.NewJunction(geo.NewCoordinate(0.0001, 0.5))
	vicinity, err := g.FindClosestEdges(query.Point, 1)
	require.NoError(t, err)
	require.Len(t, vicinity, 1)

	g.AddFakeEdges(query, vicinity)

	fakeOut := g.GetFakeOutgoingEdges(query)
	require.NotEmpty(t, fakeOut)
	assert.True(t, fakeOut[0].IsFake())

	g.ResetFakes()
	assert.Empty(t, g.GetFakeOutgoingEdges(query))
}

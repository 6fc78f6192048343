package openlr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/Navigatorx/pkg/geo"
	"github.com/lintang-b-s/Navigatorx/pkg/openlr"
	"github.com/lintang-b-s/Navigatorx/pkg/roadgraph"
)

// uniformRoadInfo answers every feature lookup with the same functional
// road class, enough for a synthetic single-class test network.
type uniformRoadInfo struct {
	frc openlr.FunctionalRoadClass
}

func (u uniformRoadInfo) Get(featureID int64) (openlr.RoadInfoEntry, error) {
	return openlr.RoadInfoEntry{FRC: u.frc}, nil
}

// straightLineNetwork builds n+1 junctions 100m apart heading due east,
// n features connecting them consecutively, all FRC 0.
func straightLineNetwork(t *testing.T, n int) (*roadgraph.Graph, []openlr.Junction) {
	t.Helper()
	graph := roadgraph.NewGraph()
	junctions := make([]openlr.Junction, n+1)
	junctions[0] = openlr.NewJunction(geo.NewCoordinate(10, 10))
	for i := 0; i < n; i++ {
		next := geo.DestinationPoint(junctions[i].Point, 90, 100)
		junctions[i+1] = openlr.NewJunction(next)
		graph.AddRealEdge(int64(i+1), junctions[i], junctions[i+1])
	}
	return graph, junctions
}

func TestDecoderGoMatchesStraightLineReference(t *testing.T) {
	graph, junctions := straightLineNetwork(t, 3)
	roadInfo := uniformRoadInfo{frc: 0}

	waypoints := []openlr.Waypoint{
		{Point: junctions[0], Bearing: 64, DistanceToNextM: 300, LowestFRC: 0},
		{Point: junctions[3], Bearing: 64, DistanceToNextM: 0, LowestFRC: 0},
	}

	decoder := openlr.NewDecoder(graph, roadInfo, 0)
	edges, err := decoder.Go(waypoints, 0, 0)
	require.NoError(t, err)
	require.Len(t, edges, 3)

	for i, e := range edges {
		id, ok := e.FeatureID()
		require.True(t, ok)
		assert.Equal(t, int64(i+1), id)
		assert.False(t, e.IsFake())
	}
	assert.Equal(t, junctions[0], edges[0].StartJunction())
	assert.Equal(t, junctions[3], edges[len(edges)-1].EndJunction())
}

func TestDecoderGoWithIntermediateWaypoint(t *testing.T) {
	graph, junctions := straightLineNetwork(t, 4)
	roadInfo := uniformRoadInfo{frc: 0}

	waypoints := []openlr.Waypoint{
		{Point: junctions[0], Bearing: 64, DistanceToNextM: 200, LowestFRC: 0},
		{Point: junctions[2], Bearing: 64, DistanceToNextM: 200, LowestFRC: 0},
		{Point: junctions[4], Bearing: 64, DistanceToNextM: 0, LowestFRC: 0},
	}

	decoder := openlr.NewDecoder(graph, roadInfo, 0)
	edges, err := decoder.Go(waypoints, 0, 0)
	require.NoError(t, err)
	require.Len(t, edges, 4)
	assert.Equal(t, junctions[0], edges[0].StartJunction())
	assert.Equal(t, junctions[4], edges[len(edges)-1].EndJunction())
}

func TestDecoderGoRejectsFewerThanTwoWaypoints(t *testing.T) {
	graph, junctions := straightLineNetwork(t, 1)
	roadInfo := uniformRoadInfo{frc: 0}

	decoder := openlr.NewDecoder(graph, roadInfo, 0)
	_, err := decoder.Go([]openlr.Waypoint{{Point: junctions[0]}}, 0, 0)
	require.Error(t, err)
}

func TestDecoderGoRejectsRestrictionNoCandidateCanPass(t *testing.T) {
	graph, junctions := straightLineNetwork(t, 3)
	// Every feature is FRC 7 (least major); a LowestFRC of 0 with the
	// default FRCTolerance of 3 cannot be satisfied by any edge.
	roadInfo := uniformRoadInfo{frc: 7}

	waypoints := []openlr.Waypoint{
		{Point: junctions[0], Bearing: 64, DistanceToNextM: 300, LowestFRC: 0},
		{Point: junctions[3], Bearing: 64, DistanceToNextM: 0, LowestFRC: 0},
	}

	decoder := openlr.NewDecoder(graph, roadInfo, 0)
	_, err := decoder.Go(waypoints, 0, 0)
	require.Error(t, err)
}

func TestDecoderGoTrimsPositiveOffset(t *testing.T) {
	graph, junctions := straightLineNetwork(t, 3)
	roadInfo := uniformRoadInfo{frc: 0}

	waypoints := []openlr.Waypoint{
		{Point: junctions[0], Bearing: 64, DistanceToNextM: 300, LowestFRC: 0},
		{Point: junctions[3], Bearing: 64, DistanceToNextM: 0, LowestFRC: 0},
	}

	decoder := openlr.NewDecoder(graph, roadInfo, 0)
	edges, err := decoder.Go(waypoints, 150, 0)
	require.NoError(t, err)
	require.NotEmpty(t, edges)
	// trimming a whole-edge's worth (100m) off the front should drop the
	// first feature from the output.
	id, ok := edges[0].FeatureID()
	require.True(t, ok)
	assert.NotEqual(t, int64(1), id)
}

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearingQuantizesIntoValidBucketRange(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := NewCoordinate(0, 1)

	bucket := Bearing(a, b)
	assert.GreaterOrEqual(t, bucket, 0)
	assert.Less(t, bucket, NumBuckets)
	// due east is bucket 64 out of 256 (90 degrees / (360/256))
	assert.Equal(t, 64, bucket)
}

func TestBucketAngleDiffRadTakesShorterWayAround(t *testing.T) {
	// adjacent buckets: small diff
	assert.Less(t, BucketAngleDiffRad(0, 1), BucketAngleDiffRad(0, 128))
	// wrap-around: bucket 0 and bucket 255 are adjacent
	wrap := BucketAngleDiffRad(0, NumBuckets-1)
	adjacent := BucketAngleDiffRad(0, 1)
	assert.InDelta(t, adjacent, wrap, 1e-9)
}

func TestDistanceOnEarthZeroForSamePoint(t *testing.T) {
	p := NewCoordinate(12.5, 45.25)
	assert.Equal(t, 0.0, DistanceOnEarth(p, p))
}

func TestDestinationPointRoundTripsApproximateDistance(t *testing.T) {
	origin := NewCoordinate(10, 10)
	dest := DestinationPoint(origin, 90, 1000)
	dist := DistanceOnEarth(origin, dest)
	assert.InDelta(t, 1000, dist, 1.0)
}

func TestPointAtSegmentInterpolatesByArcLength(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := DestinationPoint(a, 90, 1000)

	mid := PointAtSegment(a, b, 500)
	assert.InDelta(t, 500, DistanceOnEarth(a, mid), 1.0)
}

func TestIsPointOnSegmentEpsAcceptsEndpointsAndRejectsOffAxis(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := DestinationPoint(a, 90, 1000)
	mid := PointAtSegment(a, b, 500)

	assert.True(t, IsPointOnSegmentEps(a, a, b))
	assert.True(t, IsPointOnSegmentEps(b, a, b))
	assert.True(t, IsPointOnSegmentEps(mid, a, b))

	off := DestinationPoint(mid, 0, 500)
	assert.False(t, IsPointOnSegmentEps(off, a, b))
}

func TestSegmentParameterAtEndpoints(t *testing.T) {
	a := NewCoordinate(0, 0)
	b := DestinationPoint(a, 90, 1000)

	assert.InDelta(t, 0, SegmentParameter(a, a, b), 1e-6)
	assert.InDelta(t, 1, SegmentParameter(b, a, b), 1e-6)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

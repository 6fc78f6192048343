package geo

import (
	"github.com/golang/geo/s2"

	"github.com/lintang-b-s/Navigatorx/pkg/util"
)

// ProjectPointToLineCoord returns the closest point on segment [pointA,
// pointB] to snap, using s2's exact spherical projection rather than the
// planar approximation segment.go's dot-product helpers use — the
// vicinity index (pkg/spatialindex) delegates its projection here so a
// candidate edge's matched point is geodesically exact, not just locally
// accurate.
func ProjectPointToLineCoord(pointA Coordinate, pointB Coordinate,
	snap Coordinate) Coordinate {
	pointA = MakeSixDigitsAfterComa2(pointA, 6)
	pointB = MakeSixDigitsAfterComa2(pointB, 6)
	snap = MakeSixDigitsAfterComa2(snap, 6)

	pointAS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointA.Lat, pointA.Lon))
	pointBS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(pointB.Lat, pointB.Lon))
	snapS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(snap.Lat, snap.Lon))
	projection := s2.Project(snapS2, pointAS2, pointBS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}

// PointLinePerpendicularDistance returns the metre distance from snap to
// its projection on segment [pointA, pointB].
func PointLinePerpendicularDistance(pointA Coordinate, pointB Coordinate,
	snap Coordinate) float64 {
	projectionPoint := ProjectPointToLineCoord(pointA, pointB, snap)
	return CalculateHaversineDistance(snap.GetLat(), snap.GetLon(), projectionPoint.GetLat(), projectionPoint.GetLon()) * 1000
}

// MakeSixDigitsAfterComa2 rounds each coordinate of n that does not have
// exactly precision decimal digits to six decimal digits, after adding
// 0.000001 to it; a coordinate that already has precision digits is left
// as it is (s2's LatLng conversion is sensitive to trailing-digit noise).
func MakeSixDigitsAfterComa2(n Coordinate, precision int) Coordinate {
	if util.CountDecimalPlacesF64(n.Lat) != precision {
		n.Lat = util.RoundFloat(n.Lat+0.000001, 6)
	}
	if util.CountDecimalPlacesF64(n.Lon) != precision {
		n.Lon = util.RoundFloat(n.Lon+0.000001, 6)
	}
	return n
}

package httpapi

// waypointDTO is one point of a decodeRequest's location reference,
// mirroring the teacher's shortestPathRequest field/tag style
// (pkg/http/router/controllers/dtos.go).
type waypointDTO struct {
	Lat             float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon             float64 `json:"lon" validate:"required,min=-180,max=180"`
	Bearing         int     `json:"bearing" validate:"min=0,max=255"`
	DistanceToNextM float64 `json:"distance_to_next_m" validate:"min=0"`
	LowestFRC       int     `json:"lowest_frc" validate:"min=0,max=7"`
}

// decodeRequest is the /api/decode request body: a location reference
// (spec §1) plus its positive/negative trim offsets.
type decodeRequest struct {
	Waypoints       []waypointDTO `json:"waypoints" validate:"required,min=2,dive"`
	PositiveOffsetM float64       `json:"positive_offset_m" validate:"min=0"`
	NegativeOffsetM float64       `json:"negative_offset_m" validate:"min=0"`
}

// decodeResponse is the /api/decode success payload: the matched edge
// chain as GeoJSON, alongside a best-effort encoded polyline for clients
// that want a compact wire form (SPEC_FULL.md §3.5).
type decodeResponse struct {
	GeoJSON  map[string]interface{} `json:"geojson"`
	Polyline string                 `json:"polyline"`
	LengthM  float64                `json:"length_m"`
}

// errorResponse is the failure envelope every handler writes on error,
// matching the teacher's errorResponse shape.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newErrorResponse(code, message string) errorResponse {
	var e errorResponse
	e.Error.Code = code
	e.Error.Message = message
	return e
}

// envelope is the generic success wrapper, matching the teacher's
// envelope{"data": ...} convention.
type envelope map[string]interface{}

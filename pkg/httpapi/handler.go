package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	geojson "github.com/paulmach/go.geojson"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"

	"github.com/lintang-b-s/Navigatorx/pkg/apperr"
	"github.com/lintang-b-s/Navigatorx/pkg/geo"
	"github.com/lintang-b-s/Navigatorx/pkg/openlr"
)

// GraphProvider is what decodeAPI needs to run a decode: the road graph
// and its road-classification lookup (spec §6's consumed contracts).
// Kept narrow so httpapi never imports pkg/roadgraph directly.
type GraphProvider interface {
	Graph() openlr.RoadGraph
	RoadInfo() openlr.RoadInfo
}

// decodeAPI exposes pkg/openlr.Decoder over HTTP, grounded on the
// teacher's routingAPI (pkg/http/router/controllers/routing.go): a
// validator + translator pair built once and reused, one handler method
// per route.
type decodeAPI struct {
	provider GraphProvider
	log      *zap.Logger

	validate *validator.Validate
	trans    ut.Translator

	// vicinityCandidates is k, forwarded to openlr.NewDecoder for every
	// decode this API serves (pkg/config.VicinityCandidates).
	vicinityCandidates int

	// decodeMu serializes calls to Decoder.Go against the shared
	// graph: a Decoder mutates the graph's fake-edge registry for the
	// duration of one Go call and is documented as unsafe to overlap
	// with a concurrent decode on the same graph (pkg/openlr/decoder.go).
	decodeMu sync.Mutex
}

func newDecodeAPI(provider GraphProvider, log *zap.Logger, vicinityCandidates int) *decodeAPI {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &decodeAPI{
		provider:           provider,
		log:                log,
		validate:           validate,
		trans:              trans,
		vicinityCandidates: vicinityCandidates,
	}
}

func (api *decodeAPI) routes(router *httprouter.Router) {
	router.POST("/api/decode", api.decode)
}

func (api *decodeAPI) decode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req decodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.badRequest(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.serverError(w, r, err)
		return
	}

	if err := api.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fe.Translate(api.trans))
			}
			api.badRequest(w, r, fmt.Errorf("validation error: %v", msgs))
			return
		}
		api.badRequest(w, r, err)
		return
	}

	waypoints := toWaypoints(req.Waypoints)

	api.decodeMu.Lock()
	decoder := openlr.NewDecoder(api.provider.Graph(), api.provider.RoadInfo(), api.vicinityCandidates)
	edges, err := decoder.Go(waypoints, req.PositiveOffsetM, req.NegativeOffsetM)
	api.decodeMu.Unlock()
	if err != nil {
		api.decodeError(w, r, err)
		return
	}

	resp, err := toDecodeResponse(edges)
	if err != nil {
		api.serverError(w, r, err)
		return
	}

	api.writeJSON(w, http.StatusOK, envelope{"data": resp})
}

func toWaypoints(dtos []waypointDTO) []openlr.Waypoint {
	waypoints := make([]openlr.Waypoint, len(dtos))
	for i, wp := range dtos {
		waypoints[i] = openlr.Waypoint{
			Point:           openlr.NewJunction(geo.NewCoordinate(wp.Lat, wp.Lon)),
			Bearing:         wp.Bearing,
			DistanceToNextM: wp.DistanceToNextM,
			LowestFRC:       openlr.FunctionalRoadClass(wp.LowestFRC),
		}
	}
	return waypoints
}

// toDecodeResponse renders a matched edge chain as a GeoJSON LineString
// feature (github.com/paulmach/go.geojson, grounded on LdDl-osm2ch's
// converter_geojson.go) alongside an encoded polyline
// (github.com/twpayne/go-polyline, the teacher's own dependency).
func toDecodeResponse(edges []openlr.RoadEdge) (decodeResponse, error) {
	if len(edges) == 0 {
		return decodeResponse{}, apperr.New(apperr.ErrEmptyReconstruction, "decode produced no edges")
	}

	coords := make([][]float64, 0, len(edges)+1)
	polylineCoords := make([][]float64, 0, len(edges)+1)
	var lengthM float64

	start := edges[0].StartJunction().Point
	coords = append(coords, []float64{start.Lon, start.Lat})
	polylineCoords = append(polylineCoords, []float64{start.Lat, start.Lon})

	for _, e := range edges {
		end := e.EndJunction().Point
		coords = append(coords, []float64{end.Lon, end.Lat})
		polylineCoords = append(polylineCoords, []float64{end.Lat, end.Lon})
		lengthM += e.WeightM()
	}

	feature := geojson.NewFeature(geojson.NewLineStringGeometry(coords))
	feature.Properties = map[string]interface{}{"length_m": lengthM}

	raw, err := feature.MarshalJSON()
	if err != nil {
		return decodeResponse{}, fmt.Errorf("marshaling geojson feature: %w", err)
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return decodeResponse{}, fmt.Errorf("re-decoding geojson feature: %w", err)
	}

	return decodeResponse{
		GeoJSON:  asMap,
		Polyline: string(polyline.EncodeCoords(polylineCoords)),
		LengthM:  lengthM,
	}, nil
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"go.uber.org/zap"

	"github.com/lintang-b-s/Navigatorx/pkg/config"
	"github.com/lintang-b-s/Navigatorx/pkg/geo"
	"github.com/lintang-b-s/Navigatorx/pkg/logger"
	"github.com/lintang-b-s/Navigatorx/pkg/openlr"
	"github.com/lintang-b-s/Navigatorx/pkg/roadgraph"
)

var (
	osmPath       = flag.String("osm", "", "path to an OpenStreetMap PBF extract to load the road graph from")
	sqlitePath    = flag.String("road_info", "", "path to the road classification sqlite database (defaults to config's ROAD_GRAPH_SOURCE)")
	referencePath = flag.String("reference", "", "path to a JSON location reference file")
)

// referenceWaypoint is cmd/decode's on-disk reference format: plain
// JSON, no validator tags, since this is a trusted local batch tool
// rather than the HTTP surface's externally-facing DTO.
type referenceWaypoint struct {
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	Bearing         int     `json:"bearing"`
	DistanceToNextM float64 `json:"distance_to_next_m"`
	LowestFRC       int     `json:"lowest_frc"`
}

type reference struct {
	Waypoints       []referenceWaypoint `json:"waypoints"`
	PositiveOffsetM float64              `json:"positive_offset_m"`
	NegativeOffsetM float64              `json:"negative_offset_m"`
}

// main is a flag-driven batch decode tool, grounded in cmd/engine/main.go's
// flag + logger + engine wiring (SPEC_FULL.md §3.6): load a graph, read a
// JSON reference file, run Decoder.Go, print the matched chain as
// GeoJSON.
func main() {
	flag.Parse()

	if err := config.Load(); err != nil {
		panic(err)
	}

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *osmPath == "" {
		log.Fatal("missing required -osm flag")
	}
	if *referencePath == "" {
		log.Fatal("missing required -reference flag")
	}

	roadInfoPath := *sqlitePath
	if roadInfoPath == "" {
		roadInfoPath = config.RoadGraphSource()
	}

	roadInfo, err := roadgraph.OpenSQLiteRoadInfo(roadInfoPath)
	if err != nil {
		log.Fatal("opening road info database", zap.Error(err))
	}
	defer roadInfo.Close()

	graph, err := roadgraph.LoadOSMPBF(*osmPath, roadInfo, log)
	if err != nil {
		log.Fatal("loading road graph", zap.Error(err))
	}

	ref, err := readReference(*referencePath)
	if err != nil {
		log.Fatal("reading reference file", zap.Error(err))
	}

	decoder := openlr.NewDecoder(graph, roadInfo, config.VicinityCandidates())
	edges, err := decoder.Go(ref.waypoints(), ref.PositiveOffsetM, ref.NegativeOffsetM)
	if err != nil {
		log.Fatal("decoding reference", zap.Error(err))
	}

	out, err := toGeoJSON(edges)
	if err != nil {
		log.Fatal("rendering result", zap.Error(err))
	}
	fmt.Println(string(out))
}

func readReference(path string) (reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return reference{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var ref reference
	if err := json.NewDecoder(f).Decode(&ref); err != nil {
		return reference{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(ref.Waypoints) < 2 {
		return reference{}, fmt.Errorf("%s: need at least two waypoints, got %d", path, len(ref.Waypoints))
	}
	return ref, nil
}

func (r reference) waypoints() []openlr.Waypoint {
	out := make([]openlr.Waypoint, len(r.Waypoints))
	for i, wp := range r.Waypoints {
		out[i] = openlr.Waypoint{
			Point:           openlr.NewJunction(geo.NewCoordinate(wp.Lat, wp.Lon)),
			Bearing:         wp.Bearing,
			DistanceToNextM: wp.DistanceToNextM,
			LowestFRC:       openlr.FunctionalRoadClass(wp.LowestFRC),
		}
	}
	return out
}

func toGeoJSON(edges []openlr.RoadEdge) ([]byte, error) {
	coords := make([][]float64, 0, len(edges)+1)
	if len(edges) > 0 {
		start := edges[0].StartJunction().Point
		coords = append(coords, []float64{start.Lon, start.Lat})
	}
	var lengthM float64
	for _, e := range edges {
		end := e.EndJunction().Point
		coords = append(coords, []float64{end.Lon, end.Lat})
		lengthM += e.WeightM()
	}

	feature := geojson.NewFeature(geojson.NewLineStringGeometry(coords))
	feature.Properties = map[string]interface{}{"length_m": lengthM}
	return feature.MarshalJSON()
}

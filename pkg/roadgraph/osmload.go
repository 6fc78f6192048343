package roadgraph

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"

	"github.com/lintang-b-s/Navigatorx/pkg/geo"
	"github.com/lintang-b-s/Navigatorx/pkg/openlr"
)

// highwayFRC ranks OpenStreetMap highway tags into a functional road
// class ladder, lower value = more major, the same ordinal scheme
// osm2ch's link_class.go/highway_type.go ladder uses for contraction
// ordering, repurposed here as the decoder's FRC restriction input.
var highwayFRC = map[string]openlr.FunctionalRoadClass{
	"motorway":       0,
	"motorway_link":  0,
	"trunk":          1,
	"trunk_link":     1,
	"primary":        2,
	"primary_link":   2,
	"secondary":      3,
	"secondary_link": 3,
	"tertiary":       4,
	"tertiary_link":  4,
	"unclassified":   5,
	"residential":    6,
	"living_street":  7,
	"service":        7,
}

func acceptOsmWay(way *osm.Way) (openlr.FunctionalRoadClass, bool) {
	hw := way.Tags.Find("highway")
	if hw == "" {
		return 0, false
	}
	frc, ok := highwayFRC[hw]
	return frc, ok
}

// LoadOSMPBF builds a Graph and its accompanying SQLiteRoadInfo from an
// OpenStreetMap PBF extract, three passes over the file: the first pass
// finds every accepted way's node references, the second reads those
// nodes' coordinates, the third builds edges from consecutive node pairs.
// Each accepted OSM way becomes its feature id, split at every
// referenced node (so interior junctions become graph Junctions too).
func LoadOSMPBF(path string, roadInfo *SQLiteRoadInfo, log *zap.Logger) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	nodeCoords := make(map[int64]geo.Coordinate)

	log.Info("scanning OSM ways for referenced nodes")
	scanner := osmpbf.New(context.Background(), f, 0)
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 {
			continue
		}
		if _, ok := acceptOsmWay(way); !ok {
			continue
		}
		for _, n := range way.Nodes {
			nodeCoords[int64(n.ID)] = geo.Coordinate{}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scanning ways: %w", err)
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding %s: %w", path, err)
	}

	log.Info("scanning OSM nodes for coordinates")
	scanner = osmpbf.New(context.Background(), f, 0)
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		n := o.(*osm.Node)
		if _, wanted := nodeCoords[int64(n.ID)]; wanted {
			nodeCoords[int64(n.ID)] = geo.Coordinate{Lat: n.Lat, Lon: n.Lon}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scanning nodes: %w", err)
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding %s: %w", path, err)
	}

	graph := NewGraph()

	log.Info("building road graph from OSM ways")
	scanner = osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()

	var featureID int64
	ways := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 {
			continue
		}
		frc, ok := acceptOsmWay(way)
		if !ok {
			continue
		}

		featureID++
		if err := roadInfo.Put(featureID, frc); err != nil {
			return nil, err
		}

		for i := 0; i+1 < len(way.Nodes); i++ {
			a, aok := nodeCoords[int64(way.Nodes[i].ID)]
			b, bok := nodeCoords[int64(way.Nodes[i+1].ID)]
			if !aok || !bok {
				continue
			}
			graph.AddRealEdge(featureID, openlr.NewJunction(a), openlr.NewJunction(b))
		}

		ways++
		if ways%50000 == 0 {
			log.Info("building road graph from OSM ways", zap.Int("ways", ways))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning ways: %w", err)
	}

	log.Info("road graph built", zap.Int("ways", ways), zap.Int64("features", featureID))
	return graph, nil
}

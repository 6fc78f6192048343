package roadgraph

import "github.com/lintang-b-s/Navigatorx/pkg/openlr"

// Store bundles a Graph with its RoadInfo lookup, satisfying
// pkg/httpapi.GraphProvider structurally (httpapi never imports
// pkg/roadgraph, to keep the dependency pointing one way: outward from
// the decoder's external contracts).
type Store struct {
	graph    *Graph
	roadInfo *SQLiteRoadInfo
}

// NewStore pairs an already-built Graph and SQLiteRoadInfo for handing
// to httpapi.NewServer or cmd/decode.
func NewStore(graph *Graph, roadInfo *SQLiteRoadInfo) *Store {
	return &Store{graph: graph, roadInfo: roadInfo}
}

func (s *Store) Graph() openlr.RoadGraph   { return s.graph }
func (s *Store) RoadInfo() openlr.RoadInfo { return s.roadInfo }

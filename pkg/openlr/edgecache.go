package openlr

// edgeCache memoizes regular incoming/outgoing edges per junction for a
// single decode (spec §4.3). Fake edges are never cached: the fake-edge
// set changes as Init registers source/target connectors, so they are
// always re-fetched from the graph and appended to whatever was cached
// or just computed for the regular side.
//
// Keying by Junction relies on it being a plain comparable struct (see
// types.go's note on Junction's map-key use) — the same
// approach router.cpp takes by keying its std::map<Junction, ...> cache
// on Junction's operator<.
type edgeCache struct {
	graph    RoadGraph
	outgoing map[Junction][]RoadEdge
	ingoing  map[Junction][]RoadEdge
}

func newEdgeCache(graph RoadGraph) *edgeCache {
	return &edgeCache{
		graph:    graph,
		outgoing: make(map[Junction][]RoadEdge),
		ingoing:  make(map[Junction][]RoadEdge),
	}
}

// Outgoing returns every outgoing edge (regular, memoized, plus fresh
// fake) from junction.
func (c *edgeCache) Outgoing(j Junction) []RoadEdge {
	return c.get(j, c.outgoing, c.graph.GetRegularOutgoingEdges, c.graph.GetFakeOutgoingEdges)
}

// Ingoing returns every ingoing edge (regular, memoized, plus fresh
// fake) into junction.
func (c *edgeCache) Ingoing(j Junction) []RoadEdge {
	return c.get(j, c.ingoing, c.graph.GetRegularIngoingEdges, c.graph.GetFakeIngoingEdges)
}

func (c *edgeCache) get(
	j Junction,
	cache map[Junction][]RoadEdge,
	getRegular func(Junction) []RoadEdge,
	getFake func(Junction) []RoadEdge,
) []RoadEdge {
	regular, ok := cache[j]
	if !ok {
		regular = getRegular(j)
		cache[j] = regular
	}

	fake := getFake(j)
	if len(fake) == 0 {
		return regular
	}

	edges := make([]RoadEdge, 0, len(regular)+len(fake))
	edges = append(edges, regular...)
	edges = append(edges, fake...)
	return edges
}

package openlr

import (
	"github.com/lintang-b-s/Navigatorx/pkg/apperr"
	"github.com/lintang-b-s/Navigatorx/pkg/datastructure"
	"github.com/lintang-b-s/Navigatorx/pkg/util"
)

// link records a discovered vertex's predecessor and the product edge
// connecting them, so the winning chain can be walked back to source
// once a final vertex is popped (spec §3's Links).
type link struct {
	pred Vertex
	edge Edge
}

// search runs the best-first expansion described in spec §4.6/§4.7 and
// returns the chain of product edges from source to the first final
// vertex popped, in traversal order.
func (d *Decoder) search() ([]Edge, error) {
	queue := datastructure.NewBinaryHeap[Vertex, Score]()
	scores := make(map[Vertex]Score)
	links := make(map[Vertex]link)

	s := d.sourceVertex()
	scores[s] = Score{}
	queue.Insert(datastructure.NewPriorityQueueNode(Score{}, s))

	var err error
	d.piS, err = d.potential(s)
	if err != nil {
		return nil, err
	}

	pushVertex := func(u, v Vertex, sv Score, edge Edge) {
		if u == v {
			return
		}
		cur, seen := scores[v]
		if seen && !sv.BetterThan(cur) {
			return
		}
		scores[v] = sv
		links[v] = link{pred: u, edge: edge}
		queue.Insert(datastructure.NewPriorityQueueNode(sv, v))
	}

	for !queue.IsEmpty() {
		node, err := queue.ExtractMin()
		if err != nil {
			return nil, err
		}
		u := node.GetItem()
		su := scores[u]

		if node.GetRank() != su {
			// Stale entry: a better score for u was recorded after
			// this one was queued.
			continue
		}

		if d.isFinal(u) {
			return reconstructChain(s, u, links), nil
		}

		stage := u.Stage
		distanceToNext := d.waypoints[stage].DistanceToNextM

		ud, err := d.realDistanceTo(u, su)
		if err != nil {
			return nil, err
		}

		bound := distanceToNext
		if bound < distanceAccuracyM {
			bound = distanceAccuracyM
		}
		if ud > u.StageStartDistanceM+distanceToNext+bound {
			continue
		}

		successors, err := d.expand(u, su, links)
		if err != nil {
			return nil, err
		}
		for _, s := range successors {
			pushVertex(u, s.v, s.score, s.edge)
		}
	}

	return nil, apperr.New(apperr.ErrNoPath, "search queue exhausted without reaching a final vertex")
}

// distanceAccuracyM is the fixed floor applied to the pruning rule's
// distance budget, so very short stages don't get pruned too
// aggressively (spec §4.6, router.cpp's kDistanceAccuracyM).
const distanceAccuracyM = 1000

// reconstructChain walks links back from u to s and reverses the result
// into source-to-final traversal order.
func reconstructChain(s, u Vertex, links map[Vertex]link) []Edge {
	var edges []Edge
	cur := u
	for cur != s {
		l := links[cur]
		edges = append(edges, l.edge)
		cur = l.pred
	}
	return util.ReverseG(edges)
}

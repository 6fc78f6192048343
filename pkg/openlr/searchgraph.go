package openlr

import "github.com/lintang-b-s/Navigatorx/pkg/geo"

// successor is a candiddate (v, score, edge) neighbour produced by
// expanding u, handed to Search's relaxation step.
type successor struct {
	v     Vertex
	score Score
	edge  Edge
}

// expand generates every successor of (u, su): the bearing-check
// transition, the stage-advance transition, and one regular transition
// per outgoing edge passing u's stage FRC restriction (spec §4.6).
// links is the in-progress predecessor map, needed to compute the
// reverse bearing when a stage-advance reaches the final vertex.
func (d *Decoder) expand(u Vertex, su Score, links map[Vertex]link) ([]successor, error) {
	var out []successor

	piU, err := d.potential(u)
	if err != nil {
		return nil, err
	}

	if d.nearNextStage(u, piU) && !u.BearingChecked {
		s, err := d.bearingCheckSuccessor(u, su)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	if d.mayAdvanceStage(u, piU) {
		s, err := d.stageAdvanceSuccessor(u, su, piU, links)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	regular, err := d.regularSuccessors(u, su, piU)
	if err != nil {
		return nil, err
	}
	out = append(out, regular...)

	return out, nil
}

// bearingCheckSuccessor builds the zero-length transition that marks a
// stage's bearing as checked (spec §4.6 item 1).
func (d *Decoder) bearingCheckSuccessor(u Vertex, su Score) (successor, error) {
	v := u
	v.BearingChecked = true

	sv := su
	if u.Junction != u.StageStart {
		expected := d.waypoints[u.Stage].Bearing
		actual := geo.Bearing(u.StageStart.Point, u.Junction.Point)
		var err error
		sv, err = sv.AddBearingPenalty(expected, actual)
		if err != nil {
			return successor{}, err
		}
	}

	return successor{v: v, score: sv, edge: MakeSpecialEdge(u, v)}, nil
}

// stageAdvanceSuccessor builds the transition into the next stage (spec
// §4.6 item 2).
func (d *Decoder) stageAdvanceSuccessor(u Vertex, su Score, piU float64, links map[Vertex]link) (successor, error) {
	ud, err := d.realDistanceTo(u, su)
	if err != nil {
		return successor{}, err
	}

	v := Vertex{
		Junction:            u.Junction,
		StageStart:          u.Junction,
		StageStartDistanceM: ud,
		Stage:               u.Stage + 1,
		BearingChecked:      false,
	}

	piV, err := d.potential(v)
	if err != nil {
		return successor{}, err
	}

	sv := su.AddDistance(clampNonNegative(piV - piU))
	sv = sv.AddIntermediateErrorPenalty(geo.DistanceOnEarth(v.Junction.Point, d.waypoints[v.Stage].Point.Point))

	if d.isFinal(v) {
		expected := d.waypoints[len(d.waypoints)-1].Bearing
		actual, err := d.reverseBearingAt(u, links)
		if err != nil {
			return successor{}, err
		}
		sv, err = sv.AddBearingPenalty(expected, actual)
		if err != nil {
			return successor{}, err
		}
	}

	return successor{v: v, score: sv, edge: MakeSpecialEdge(u, v)}, nil
}

// regularSuccessors builds one transition per outgoing edge from
// u.Junction that passes u's stage FRC restriction (spec §4.6 item 3).
func (d *Decoder) regularSuccessors(u Vertex, su Score, piU float64) ([]successor, error) {
	restriction := d.waypoints[u.Stage].LowestFRC

	var out []successor
	for _, edge := range d.cache.Outgoing(u.Junction) {
		passes, err := d.passesRestriction(edge, restriction)
		if err != nil {
			return nil, err
		}
		if !passes {
			continue
		}

		v := u
		v.Junction = edge.EndJunction()

		piV, err := d.potential(v)
		if err != nil {
			return nil, err
		}

		w := edge.WeightM()
		sv := su.AddDistance(clampNonNegative(w + piV - piU))

		ud, err := d.realDistanceTo(u, su)
		if err != nil {
			return nil, err
		}
		vd := ud + w

		if d.needBearingCheck(v, vd) {
			// delta is how far past the bearingDistM mark the edge ends,
			// so the sample is taken that far back from the edge's end.
			delta := vd - v.StageStartDistanceM - bearingDistM
			p := geo.PointAtSegment(edge.EndJunction().Point, edge.StartJunction().Point, delta)
			if v.StageStart.Point != p {
				expected := d.waypoints[u.Stage].Bearing
				actual := geo.Bearing(v.StageStart.Point, p)
				sv, err = sv.AddBearingPenalty(expected, actual)
				if err != nil {
					return nil, err
				}
			}
			v.BearingChecked = true
		}

		distanceToNext := d.waypoints[u.Stage].DistanceToNextM
		if vd > v.StageStartDistanceM+distanceToNext {
			excess := vd - v.StageStartDistanceM - distanceToNext
			if excess > w {
				excess = w
			}
			sv = sv.AddDistanceErrorPenalty(excess)
		}

		if edge.IsFake() {
			sv = sv.AddFakePenalty(w, edge.IsPartOfReal())
		}

		out = append(out, successor{v: v, score: sv, edge: MakeNormalEdge(u, v, edge)})
	}
	return out, nil
}

// realDistanceTo recovers the real travelled distance to u from its
// reweighted score, exploiting the A* potential-reweighting identity
// used both for the pruning rule and for regular-edge cost accounting
// (spec §4.6's pruning rule: "score_u.distance + potential(s) - potential(u)").
func (d *Decoder) realDistanceTo(u Vertex, su Score) (float64, error) {
	piU, err := d.potential(u)
	if err != nil {
		return 0, err
	}
	return su.Distance() + d.piS - piU, nil
}

// passesRestriction reports whether edge is an acceptable successor
// under a stage's FRC restriction: fake edges always pass; regular
// edges are checked against their feature's road class.
func (d *Decoder) passesRestriction(edge RoadEdge, restriction FunctionalRoadClass) (bool, error) {
	if edge.IsFake() {
		return true, nil
	}
	featureID, ok := edge.FeatureID()
	if !ok {
		return true, nil
	}
	info, err := d.roadInfo.Get(featureID)
	if err != nil {
		return false, err
	}
	return info.FRC.PassesRestriction(restriction), nil
}

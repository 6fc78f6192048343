package openlr

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/Navigatorx/pkg/apperr"
	"github.com/lintang-b-s/Navigatorx/pkg/geo"
	"github.com/lintang-b-s/Navigatorx/pkg/util"
)

// potentialEps is the admissibility slack used by nearNextStage: a
// vertex is "at" its stage's pivot region once its potential drops below
// this, matching router.cpp's kEps.
const potentialEps = 1e-9

// potential is the A* heuristic (spec §4.5): zero at a final vertex,
// otherwise the minimum great-circle distance from u's junction to any
// pivot registered for u's stage. Fails with apperr.ErrNoPivots if the
// stage's pivot set is empty — a condition Init is meant to have already
// ruled out by failing outright.
func (d *Decoder) potential(u Vertex) (float64, error) {
	if d.isFinal(u) {
		return 0, nil
	}

	util.AssertPanic(u.Stage < len(d.pivots), fmt.Sprintf("stage %d out of bounds for %d pivot sets", u.Stage, len(d.pivots)))

	pivots := d.pivots[u.Stage]
	if len(pivots) == 0 {
		return 0, apperr.New(apperr.ErrNoPivots, "stage %d has no pivots", u.Stage)
	}

	best := math.Inf(1)
	for _, p := range pivots {
		dist := geo.DistanceOnEarth(p, u.Junction.Point)
		if dist < best {
			best = dist
		}
	}
	return best, nil
}

// nearNextStage reports whether u's potential places it within the
// stage's pivot region, i.e. eligible to advance (spec §4.6).
func (d *Decoder) nearNextStage(u Vertex, pi float64) bool {
	return u.Stage < len(d.pivots) && pi < potentialEps
}

// mayAdvanceStage reports whether u may take the stage-advance
// transition: near the next stage's pivots, and its bearing for the
// current stage has already been checked.
func (d *Decoder) mayAdvanceStage(u Vertex, pi float64) bool {
	return d.nearNextStage(u, pi) && u.BearingChecked
}

// isFinal reports whether u has advanced past the last real stage.
func (d *Decoder) isFinal(u Vertex) bool {
	return u.Stage == len(d.waypoints)-1
}

// needBearingCheck reports whether a vertex x at real distance d along
// the path has crossed the bearing-check threshold for its stage (spec
// §4.6's needBearingCheck).
func (d *Decoder) needBearingCheck(x Vertex, distM float64) bool {
	if d.isFinal(x) || x.BearingChecked {
		return false
	}
	return distM >= x.StageStartDistanceM+bearingDistM
}

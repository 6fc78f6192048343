package openlr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreAddDistanceClampsNegative(t *testing.T) {
	var s Score
	s = s.AddDistance(-50)
	assert.Equal(t, 0.0, s.Distance())

	s = s.AddDistance(10)
	assert.Equal(t, 10.0, s.Distance())
}

func TestScoreAddFakePenaltyCoefficients(t *testing.T) {
	var s Score
	partOfReal := s.AddFakePenalty(100, true)
	assert.InDelta(t, fakeCoeff*100, partOfReal.Penalty(), 1e-9)

	var truFake Score
	truFake = truFake.AddFakePenalty(100, false)
	assert.InDelta(t, trueFakeCoeff*100, truFake.Penalty(), 1e-9)

	assert.Less(t, partOfReal.Penalty(), truFake.Penalty())
}

func TestScoreAddBearingPenaltyRejectsOutOfRangeBuckets(t *testing.T) {
	var s Score
	_, err := s.AddBearingPenalty(-1, 0)
	require.Error(t, err)

	_, err = s.AddBearingPenalty(0, 256)
	require.Error(t, err)

	sv, err := s.AddBearingPenalty(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sv.Penalty())
}

func TestScoreLessOrdersByTotalThenDistanceThenPenalty(t *testing.T) {
	a := Score{distance: 10, penalty: 0}
	b := Score{distance: 5, penalty: 5}
	require.Equal(t, a.Total(), b.Total())
	// same total: tie-break on distance, lower distance sorts first
	assert.True(t, b.Less(a))
	assert.False(t, a.Less(b))

	c := Score{distance: 1, penalty: 1}
	d := Score{distance: 1, penalty: 2}
	assert.True(t, c.Less(d))
}

func TestScoreBetterThanRequiresMarginOverEps(t *testing.T) {
	a := Score{distance: 100}
	b := Score{distance: 100 - scoreEps/2}
	assert.False(t, b.BetterThan(a))

	c := Score{distance: 90}
	assert.True(t, c.BetterThan(a))
}

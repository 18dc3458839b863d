package service

import (
	"testing"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDoubleEliminationShape(t *testing.T) {
	testCases := []struct {
		name         string
		teams        int
		losersRounds []int
	}{
		{name: "2 teams", teams: 2, losersRounds: nil},
		{name: "4 teams", teams: 4, losersRounds: []int{1, 1}},
		{name: "8 teams", teams: 8, losersRounds: []int{2, 2, 1, 1}},
		{name: "16 teams", teams: 16, losersRounds: []int{4, 4, 2, 2, 1, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBuild(t, bracket.DoubleElimination, tc.teams)

			sizes := make([]int, 0, len(b.LosersRounds))
			for _, r := range b.LosersRounds {
				sizes = append(sizes, len(r.MatchIDs))
			}
			if tc.losersRounds == nil {
				assert.Empty(t, sizes)
			} else {
				assert.Equal(t, tc.losersRounds, sizes)
			}

			assert.Len(t, b.Matches, 2*tc.teams-2)
			assert.Equal(t, 2*tc.teams-2, b.TotalMatches)

			gf := b.Match(b.GrandFinalID)
			require.NotNil(t, gf)
			assert.Equal(t, bracket.FinalsSide, gf.Side)

			// every winners match drops its loser somewhere
			for _, round := range b.Rounds {
				for _, m := range b.RoundMatches(round) {
					require.NotNil(t, m.LoserNextMatchID, "match %s", m.ID)
					assert.NotNil(t, b.Match(*m.LoserNextMatchID))
				}
			}
		})
	}
}

func TestDoubleEliminationFourTeams(t *testing.T) {
	b := mustBuild(t, bracket.DoubleElimination, 4)

	win(t, b, "R1-M1", bracket.Slot1) // 1 beats 4
	win(t, b, "R1-M2", bracket.Slot1) // 2 beats 3

	l1 := b.Match("L1-M1")
	assert.Equal(t, "t4", l1.Team1.ID)
	assert.Equal(t, "t3", l1.Team2.ID)
	assert.Equal(t, bracket.MatchScheduled, l1.Status)

	win(t, b, "R2-M1", bracket.Slot1) // 1 beats 2

	gf := b.Match(b.GrandFinalID)
	assert.Equal(t, "t1", gf.Team1.ID)
	l2 := b.Match("L2-M1")
	assert.Equal(t, "t2", l2.Team2.ID)

	win(t, b, "L1-M1", bracket.Slot2) // 3 beats 4
	assert.Equal(t, "t3", l2.Team1.ID)

	win(t, b, "L2-M1", bracket.Slot1) // 3 beats 2
	assert.Equal(t, "t3", gf.Team2.ID)

	_, err := b.Champion()
	assert.ErrorIs(t, err, bracket.ErrNoChampion)

	// no reset: the losers side champion takes it in one match
	win(t, b, b.GrandFinalID, bracket.Slot2)
	champion, err := b.Champion()
	require.NoError(t, err)
	assert.Equal(t, "t3", champion.ID)
}

func TestDoubleEliminationTwoTeams(t *testing.T) {
	b := mustBuild(t, bracket.DoubleElimination, 2)

	win(t, b, "R1-M1", bracket.Slot2)

	gf := b.Match(b.GrandFinalID)
	assert.Equal(t, "t2", gf.Team1.ID)
	assert.Equal(t, "t1", gf.Team2.ID)
	assert.Equal(t, bracket.MatchScheduled, gf.Status)
}

func TestDoubleEliminationByePropagation(t *testing.T) {
	b := mustBuild(t, bracket.DoubleElimination, 5)

	// 1, 2 and 3 all drew byes; the two byes of 2 and 3 meet in L1-M2
	l12 := b.Match("L1-M2")
	assert.True(t, l12.IsBye)
	assert.Equal(t, bracket.MatchCompleted, l12.Status)
	require.NotNil(t, l12.Winner)
	assert.True(t, l12.Winner.IsBye)

	l22 := b.Match("L2-M2")
	require.NotNil(t, l22.Team1)
	assert.True(t, l22.Team1.IsBye)
	assert.Nil(t, l22.Team2)

	// 4 v 5 sends its loser past the bye waiting in L1-M1
	l11 := b.Match("L1-M1")
	assert.True(t, l11.Team1.IsBye)
	win(t, b, "R1-M2", bracket.Slot1)
	assert.True(t, l11.IsBye)
	assert.Equal(t, "t5", l11.Winner.ID)
	assert.Equal(t, "t5", b.Match("L2-M1").Team1.ID)

	// 1 v 4 in winners round two; its loser walks through L2-M2
	win(t, b, "R2-M1", bracket.Slot1)
	assert.True(t, l22.IsBye)
	assert.Equal(t, "t4", l22.Winner.ID)
	assert.Equal(t, "t4", b.Match("L3-M1").Team2.ID)

	assert.Equal(t, 2*5-2, b.TotalMatches)
}

func TestDoubleEliminationFullRun(t *testing.T) {
	for _, n := range []int{3, 5, 6, 7, 8, 11} {
		b := mustBuild(t, bracket.DoubleElimination, n)

		played := 0
		for {
			var next *bracket.Match
			for _, m := range b.Matches {
				if m.Playable() {
					next = m
					break
				}
			}
			if next == nil {
				break
			}
			win(t, b, next.ID, bracket.Slot1)
			played++
		}

		_, err := b.Champion()
		require.NoError(t, err, "%d teams", n)
		assert.Equal(t, 2*n-2, played, "%d teams", n)
	}
}

package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalFixture() *Bracket {
	a := &Team{ID: "a", Name: "Alpha", Seed: 1}
	b := &Team{ID: "b", Name: "Bravo", Seed: 2}

	br := &Bracket{
		Format:          SingleElimination,
		GameFormat:      DefaultGameFormat(),
		Teams:           []*Team{a, b},
		Rounds:          []Round{{Number: 1, Name: "Finals", Side: WinnersSide, MatchIDs: []string{"R1-M1"}}},
		PlayoffBindings: map[string]string{"PLAYOFF-1": "a"},
	}
	br.AddMatch(&Match{ID: "R1-M1", Side: WinnersSide, Round: 1, Team1: a, Team2: b, Status: MatchScheduled})
	return br
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"single", "double", "roundrobin", "pools"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("swiss")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestChampion(t *testing.T) {
	b := finalFixture()

	_, err := b.Champion()
	assert.ErrorIs(t, err, ErrNoChampion)

	final := b.FinalMatch()
	require.NotNil(t, final)
	final.Status = MatchCompleted
	final.Winner = final.Team2
	final.Loser = final.Team1

	champion, err := b.Champion()
	require.NoError(t, err)
	assert.Equal(t, "b", champion.ID)
	assert.True(t, final.IsWinner(Slot2))
	assert.True(t, final.IsLoser(Slot1))

	b.Format = RoundRobin
	_, err = b.Champion()
	assert.ErrorIs(t, err, ErrNoChampion)
}

func TestCloneIsIndependent(t *testing.T) {
	b := finalFixture()
	c := b.Clone()

	c.Match("R1-M1").Scores = append(c.Match("R1-M1").Scores, GameScore{Side1: 11, Side2: 2})
	c.Match("R1-M1").Status = MatchCompleted
	c.Rounds[0].MatchIDs[0] = "X"
	c.PlayoffBindings["PLAYOFF-2"] = "b"

	assert.Empty(t, b.Match("R1-M1").Scores)
	assert.Equal(t, MatchScheduled, b.Match("R1-M1").Status)
	assert.Equal(t, "R1-M1", b.Rounds[0].MatchIDs[0])
	assert.Len(t, b.PlayoffBindings, 1)
	assert.Same(t, b.Teams[0], c.Teams[0])
}

func TestRoundName(t *testing.T) {
	b := finalFixture()
	assert.Equal(t, "Finals", b.RoundName("R1-M1"))
	assert.Equal(t, "", b.RoundName("nope"))

	b.GrandFinalID = "GF"
	assert.Equal(t, "Grand Finals", b.RoundName("GF"))
}

func TestTeamHelpers(t *testing.T) {
	bye := NewBye(7)
	assert.False(t, bye.IsReal())
	assert.Nil(t, bye.PlayerIDs())

	solo := &Team{ID: "s", Name: "Solo"}
	assert.Equal(t, []string{"s"}, solo.PlayerIDs())

	var missing *Team
	assert.Equal(t, "TBD", missing.DisplayName())
	assert.False(t, missing.IsReal())
}

package service

import (
	"testing"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoster(t *testing.T) {
	text := `
# morning flight
Dink Dynasty: ana, ben
Kitchen Sync

  Third Shot:  cal ,  ,dee
`
	teams, err := ParseRoster(text)
	require.NoError(t, err)
	require.Len(t, teams, 3)

	assert.Equal(t, bracket.Team{Name: "Dink Dynasty", Seed: 1, Players: []string{"ana", "ben"}}, teams[0])
	assert.Equal(t, bracket.Team{Name: "Kitchen Sync", Seed: 2}, teams[1])
	assert.Equal(t, []string{"cal", "dee"}, teams[2].Players)
	assert.Equal(t, 3, teams[2].Seed)
}

func TestParseRosterErrors(t *testing.T) {
	_, err := ParseRoster("Good Team\n: orphan, players\n")
	assert.ErrorIs(t, err, bracket.ErrInvalidRoster)

	teams, err := ParseRoster("\n\n# nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, teams)
}

func TestParseRosterFeedsBuilder(t *testing.T) {
	teams, err := ParseRoster("A\nB\nC\nD\nE")
	require.NoError(t, err)

	b, err := BuildBracket(bracket.SingleElimination, teams, bracket.DefaultGameFormat(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 8, b.BracketSize)
	assert.Equal(t, "A", b.Teams[0].Name)
}

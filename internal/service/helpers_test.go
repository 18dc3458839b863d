package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 13, 8, 0, 0, 0, time.UTC)

func makeRoster(n int) []bracket.Team {
	roster := make([]bracket.Team, n)
	for i := range roster {
		roster[i] = bracket.Team{
			ID:   fmt.Sprintf("t%d", i+1),
			Name: fmt.Sprintf("Team %d", i+1),
			Seed: i + 1,
		}
	}
	return roster
}

func mustBuild(t *testing.T, format bracket.Format, n int) *bracket.Bracket {
	t.Helper()
	b, err := BuildBracket(format, makeRoster(n), bracket.DefaultGameFormat(), testNow)
	require.NoError(t, err)
	return b
}

// straightSets is a two-game win for the given slot.
func straightSets(slot bracket.Slot) []bracket.GameScore {
	if slot == bracket.Slot1 {
		return []bracket.GameScore{{Side1: 11, Side2: 5}, {Side1: 11, Side2: 7}}
	}
	return []bracket.GameScore{{Side1: 5, Side2: 11}, {Side1: 7, Side2: 11}}
}

func win(t *testing.T, b *bracket.Bracket, matchID string, slot bracket.Slot) {
	t.Helper()
	require.NoError(t, RecordResult(b, matchID, straightSets(slot), testNow))
}

func countNonBye(b *bracket.Bracket) int {
	n := 0
	for _, m := range b.Matches {
		if !m.IsBye {
			n++
		}
	}
	return n
}

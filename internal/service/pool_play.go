package service

import (
	"fmt"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
)

const minPoolPlayTeams = 4

// PoolCount is 2 pools up to 8 teams, 4 up to 16, then one per four teams
// capped at 8.
func PoolCount(teamCount int) int {
	switch {
	case teamCount <= 8:
		return 2
	case teamCount <= 16:
		return 4
	}
	count := (teamCount + 3) / 4
	if count > 8 {
		count = 8
	}
	return count
}

// serpentinePool deals seeds across the pools left to right, then right to
// left, so every pool gets a similar spread.
func serpentinePool(index, poolCount int) int {
	row, col := index/poolCount, index%poolCount
	if row%2 == 1 {
		return poolCount - 1 - col
	}
	return col
}

func poolLetter(i int) string {
	return string(rune('A' + i))
}

func buildPoolPlay(b *bracket.Bracket, now time.Time) error {
	if b.TeamCount < minPoolPlayTeams {
		return fmt.Errorf("%w: pool play needs at least %d teams, got %d", bracket.ErrInvalidRoster, minPoolPlayTeams, b.TeamCount)
	}

	poolCount := PoolCount(b.TeamCount)
	b.Pools = make([]bracket.Pool, poolCount)
	for i := range b.Pools {
		letter := poolLetter(i)
		b.Pools[i] = bracket.Pool{ID: letter, Name: "Pool " + letter}
	}

	for i, t := range b.Teams {
		p := &b.Pools[serpentinePool(i, poolCount)]
		p.Teams = append(p.Teams, t)
	}

	total := 0
	for i := range b.Pools {
		p := &b.Pools[i]
		p.Rounds = addRoundRobinRounds(b, p.Teams, leagueLayout{
			side:       bracket.PoolSide,
			poolID:     p.ID,
			idPrefix:   "P" + p.ID + "-",
			namePrefix: p.Name + " ",
		})
		p.Standings = newStandings(p.Teams)
		total += len(p.Teams) * (len(p.Teams) - 1) / 2
	}

	// Pool winners take the top seeds of the playoff, runners-up the rest.
	placeholders := make([]*bracket.Team, 0, 2*poolCount)
	for _, finish := range []string{"1st", "2nd"} {
		for _, p := range b.Pools {
			n := len(placeholders) + 1
			placeholders = append(placeholders, &bracket.Team{
				ID:            fmt.Sprintf("PLAYOFF-%d", n),
				Name:          fmt.Sprintf("%s %s", finish, p.Name),
				Seed:          n,
				IsPlaceholder: true,
			})
		}
	}

	playoffs, err := addEliminationRounds(b, placeholders, eliminationLayout{
		side:       bracket.PlayoffSide,
		idPrefix:   "PO-",
		namePrefix: "Playoff ",
	})
	if err != nil {
		return err
	}

	b.Placeholders = placeholders
	b.PlayoffBindings = make(map[string]string, len(placeholders))
	b.PlayoffRounds = playoffs
	b.BracketSize = NextPowerOf2(len(placeholders))
	b.ByeCount = CalculateByes(len(placeholders))
	b.RoundCount = len(playoffs)
	b.TotalMatches = total + len(placeholders) - 1

	resolve(b, playoffs[0].MatchIDs, now)
	return nil
}

// ClosePool freezes a pool once every match in it is played and returns
// its final table.
func ClosePool(b *bracket.Bracket, poolID string) ([]bracket.Standing, error) {
	pool := b.Pool(poolID)
	if pool == nil {
		return nil, fmt.Errorf("%w: %s", bracket.ErrPoolNotFound, poolID)
	}

	for _, r := range pool.Rounds {
		for _, m := range b.RoundMatches(r) {
			if m.Status != bracket.MatchCompleted {
				return nil, fmt.Errorf("%w: %s has %s still open", bracket.ErrPoolIncomplete, pool.Name, m.ID)
			}
		}
	}

	sortStandings(pool.Standings)
	pool.Closed = true
	return append([]bracket.Standing(nil), pool.Standings...), nil
}

// BindPlayoffSlot swaps a playoff placeholder for the real team that
// earned it. Which team that is stays the caller's call.
func BindPlayoffSlot(b *bracket.Bracket, placeholderID, teamID string, now time.Time) error {
	placeholder := b.Placeholder(placeholderID)
	if placeholder == nil {
		return fmt.Errorf("%w: %s", bracket.ErrPlaceholderNotFound, placeholderID)
	}
	if bound, ok := b.PlayoffBindings[placeholderID]; ok {
		return fmt.Errorf("%w: %s is bound to %s", bracket.ErrPlaceholderBound, placeholderID, bound)
	}

	team := b.Team(teamID)
	if team == nil {
		return fmt.Errorf("%w: team %s is not in this bracket", bracket.ErrInvalidRoster, teamID)
	}
	for other, bound := range b.PlayoffBindings {
		if bound == teamID {
			return fmt.Errorf("%w: team %s already fills %s", bracket.ErrInvalidRoster, teamID, other)
		}
	}

	var touched []string
	for _, m := range b.Matches {
		if m.Side != bracket.PlayoffSide {
			continue
		}
		changed := false
		for _, slot := range []bracket.Slot{bracket.Slot1, bracket.Slot2} {
			if t := m.Team(slot); t != nil && t.ID == placeholderID {
				m.SetTeam(slot, team)
				changed = true
			}
		}
		if m.Winner != nil && m.Winner.ID == placeholderID {
			m.Winner = team
		}
		if changed {
			touched = append(touched, m.ID)
		}
	}

	if b.PlayoffBindings == nil {
		b.PlayoffBindings = make(map[string]string)
	}
	b.PlayoffBindings[placeholderID] = teamID

	resolve(b, touched, now)
	return nil
}

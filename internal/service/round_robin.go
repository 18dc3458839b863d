package service

import (
	"fmt"
	"sort"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
)

type leagueLayout struct {
	side       bracket.BracketSide
	poolID     string
	idPrefix   string
	namePrefix string
}

// addRoundRobinRounds pairs every team with every other exactly once using
// the circle method: the first seat stays put, the rest rotate one step
// per round. An odd field gets a bye seat and whoever draws it sits out.
func addRoundRobinRounds(b *bracket.Bracket, teams []*bracket.Team, layout leagueLayout) []bracket.Round {
	circle := append([]*bracket.Team(nil), teams...)
	if len(circle)%2 == 1 {
		circle = append(circle, bracket.NewBye(len(circle)+1))
	}
	n := len(circle)

	rounds := make([]bracket.Round, 0, n-1)
	for r := 1; r < n; r++ {
		round := bracket.Round{
			Number: r,
			Name:   fmt.Sprintf("%sRound %d", layout.namePrefix, r),
			Side:   layout.side,
		}

		for i := 0; i < n/2; i++ {
			home, away := circle[i], circle[n-1-i]
			if home.IsBye || away.IsBye {
				continue
			}

			m := &bracket.Match{
				ID:       fmt.Sprintf("%sR%d-M%d", layout.idPrefix, r, len(round.MatchIDs)+1),
				Side:     layout.side,
				PoolID:   layout.poolID,
				Round:    r,
				Position: len(round.MatchIDs) + 1,
				Team1:    home,
				Team2:    away,
				Status:   bracket.MatchScheduled,
			}
			b.AddMatch(m)
			round.MatchIDs = append(round.MatchIDs, m.ID)
		}

		rounds = append(rounds, round)

		last := circle[n-1]
		copy(circle[2:], circle[1:n-1])
		circle[1] = last
	}

	return rounds
}

func buildRoundRobin(b *bracket.Bracket) {
	b.Rounds = addRoundRobinRounds(b, b.Teams, leagueLayout{
		side:     bracket.RoundRobinSide,
		idPrefix: "RR-",
	})
	b.RoundCount = len(b.Rounds)
	b.Standings = newStandings(b.Teams)
	b.TotalMatches = b.TeamCount * (b.TeamCount - 1) / 2
}

func newStandings(teams []*bracket.Team) []bracket.Standing {
	standings := make([]bracket.Standing, len(teams))
	for i, t := range teams {
		standings[i] = bracket.Standing{Team: t}
	}
	return standings
}

// applyToStandings credits a completed league match to the table it belongs to.
func applyToStandings(b *bracket.Bracket, m *bracket.Match) {
	standings := b.Standings
	if m.Side == bracket.PoolSide {
		pool := b.Pool(m.PoolID)
		if pool == nil {
			return
		}
		standings = pool.Standings
	}

	points1, points2 := 0, 0
	for _, g := range m.Scores {
		points1 += g.Side1
		points2 += g.Side2
	}

	for i := range standings {
		s := &standings[i]
		var pointsFor, pointsAgainst int
		switch s.Team.ID {
		case m.Team1.ID:
			pointsFor, pointsAgainst = points1, points2
		case m.Team2.ID:
			pointsFor, pointsAgainst = points2, points1
		default:
			continue
		}

		s.MatchesPlayed++
		s.PointsFor += pointsFor
		s.PointsAgainst += pointsAgainst
		s.PointDifferential = s.PointsFor - s.PointsAgainst

		switch {
		case m.IsTie:
			s.Ties++
		case m.Winner != nil && m.Winner.ID == s.Team.ID:
			s.Wins++
		default:
			s.Losses++
		}

		s.WinPercentage = float64(s.Wins) / float64(s.MatchesPlayed)
	}

	sortStandings(standings)
}

// sortStandings orders by wins, then point differential, then points scored,
// then name.
func sortStandings(standings []bracket.Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.PointDifferential != b.PointDifferential {
			return a.PointDifferential > b.PointDifferential
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return a.Team.Name < b.Team.Name
	})
}

// Standings returns a sorted copy of a round robin table.
func Standings(b *bracket.Bracket) ([]bracket.Standing, error) {
	if b.Format != bracket.RoundRobin {
		return nil, fmt.Errorf("%w: %s brackets keep no overall table", bracket.ErrInvalidFormat, b.Format.DisplayName())
	}
	out := append([]bracket.Standing(nil), b.Standings...)
	sortStandings(out)
	return out, nil
}

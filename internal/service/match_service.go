package service

import (
	"fmt"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
)

// RecordResult applies the game scores to a match, completes it and
// advances the winner (and, in double elimination, the loser).
//
// An undecided series is kept on the match as progress and reported with
// ErrIncompleteMatch; the match stays scheduled.
func RecordResult(b *bracket.Bracket, matchID string, scores []bracket.GameScore, now time.Time) error {
	match := b.Match(matchID)
	if match == nil {
		return fmt.Errorf("%w: %s", bracket.ErrMatchNotFound, matchID)
	}
	if match.Status == bracket.MatchCompleted {
		return fmt.Errorf("%w: %s", bracket.ErrMatchCompleted, matchID)
	}
	if !match.Team1.IsReal() || !match.Team2.IsReal() {
		return fmt.Errorf("%w: %s", bracket.ErrMatchNotReady, matchID)
	}

	if err := validateScores(b.GameFormat, scores); err != nil {
		return err
	}

	scores = append([]bracket.GameScore(nil), scores...)
	slot, decided := b.GameFormat.MatchWinner(scores)
	if !decided {
		if isLeagueMatch(match) && len(scores) == b.GameFormat.GamesPerMatch {
			completeTie(b, match, scores, now)
			return nil
		}
		match.Scores = scores
		return fmt.Errorf("%w: %s after %d games", bracket.ErrIncompleteMatch, matchID, len(scores))
	}

	match.Scores = scores
	match.Status = bracket.MatchCompleted
	match.CompletedAt = &now
	if slot == bracket.Slot1 {
		match.Winner, match.Loser = match.Team1, match.Team2
	} else {
		match.Winner, match.Loser = match.Team2, match.Team1
	}

	if isLeagueMatch(match) {
		applyToStandings(b, match)
		return nil
	}

	resolve(b, advance(b, match), now)
	return nil
}

// validateScores rejects impossible games, too many games and games
// played after one side already took the series.
func validateScores(format bracket.GameFormat, scores []bracket.GameScore) error {
	if len(scores) > format.GamesPerMatch {
		return fmt.Errorf("%w: %d games reported for a best of %d", bracket.ErrInvalidScore, len(scores), format.GamesPerMatch)
	}

	need := format.GamesToWin()
	won1, won2 := 0, 0
	for i, g := range scores {
		if won1 >= need || won2 >= need {
			return fmt.Errorf("%w: game %d played after the series was decided", bracket.ErrInvalidScore, i+1)
		}
		if !format.IsValidGameScore(g.Side1, g.Side2) {
			return fmt.Errorf("%w: game %d ended %d-%d", bracket.ErrInvalidScore, i+1, g.Side1, g.Side2)
		}
		if g.Side1 > g.Side2 {
			won1++
		} else {
			won2++
		}
	}
	return nil
}

func isLeagueMatch(m *bracket.Match) bool {
	return m.Side == bracket.RoundRobinSide || m.Side == bracket.PoolSide
}

func completeTie(b *bracket.Bracket, m *bracket.Match, scores []bracket.GameScore, now time.Time) {
	m.Scores = scores
	m.Status = bracket.MatchCompleted
	m.CompletedAt = &now
	m.IsTie = true
	applyToStandings(b, m)
}

// advance drops the winner and loser of a completed match into their
// successor slots and returns the ids of the matches it touched.
func advance(b *bracket.Bracket, m *bracket.Match) []string {
	var touched []string

	if m.Winner != nil && m.WinnerNextMatchID != nil && m.WinnerNextSlot != nil {
		if next := b.Match(*m.WinnerNextMatchID); next != nil {
			next.SetTeam(*m.WinnerNextSlot, m.Winner)
			touched = append(touched, next.ID)
		}
	}

	if m.Loser != nil && m.LoserNextMatchID != nil && m.LoserNextSlot != nil {
		if next := b.Match(*m.LoserNextMatchID); next != nil {
			next.SetTeam(*m.LoserNextSlot, m.Loser)
			touched = append(touched, next.ID)
		}
	}

	return touched
}

// resolve walks a work queue of matches whose slots may have changed.
// A filled match with a bye completes on the spot and pushes its
// successors onto the queue; a match with two real teams becomes
// scheduled. Placeholders wait for a binding.
func resolve(b *bracket.Bracket, ids []string, now time.Time) {
	queue := append([]string(nil), ids...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		m := b.Match(id)
		if m == nil || m.Status == bracket.MatchCompleted || !m.Filled() {
			continue
		}

		switch {
		case m.Team1.IsBye || m.Team2.IsBye:
			winner, loser := m.Team1, m.Team2
			if winner.IsBye {
				winner, loser = loser, winner
			}
			m.Winner, m.Loser = winner, loser
			m.Status = bracket.MatchCompleted
			m.IsBye = true
			m.CompletedAt = &now
			queue = append(queue, advance(b, m)...)

		case m.Team1.IsReal() && m.Team2.IsReal():
			m.Status = bracket.MatchScheduled
		}
	}
}

package bracket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Format string

const (
	SingleElimination Format = "single"
	DoubleElimination Format = "double"
	RoundRobin        Format = "roundrobin"
	PoolPlay          Format = "pools"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case SingleElimination, DoubleElimination, RoundRobin, PoolPlay:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", ErrInvalidFormat, s)
}

func (f Format) DisplayName() string {
	switch f {
	case SingleElimination:
		return "Single Elimination"
	case DoubleElimination:
		return "Double Elimination"
	case RoundRobin:
		return "Round Robin"
	case PoolPlay:
		return "Pool Play + Playoffs"
	}
	return string(f)
}

type Round struct {
	Number   int         `json:"number"`
	Name     string      `json:"name"`
	Side     BracketSide `json:"side"`
	MatchIDs []string    `json:"match_ids"`
}

type Standing struct {
	Team              *Team   `json:"team"`
	MatchesPlayed     int     `json:"matches_played"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Ties              int     `json:"ties"`
	PointsFor         int     `json:"points_for"`
	PointsAgainst     int     `json:"points_against"`
	PointDifferential int     `json:"point_differential"`
	WinPercentage     float64 `json:"win_percentage"`
}

type Pool struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Teams     []*Team    `json:"teams"`
	Rounds    []Round    `json:"rounds"`
	Standings []Standing `json:"standings"`
	Closed    bool       `json:"closed"`
}

// Bracket is the whole match graph of one tournament. Matches is an
// arena: every match of every sub-bracket lives there exactly once and
// rounds refer to matches by id.
type Bracket struct {
	ID         uuid.UUID  `json:"id"`
	Format     Format     `json:"format"`
	GameFormat GameFormat `json:"game_format"`
	Courts     int        `json:"courts"`

	TeamCount    int `json:"team_count"`
	BracketSize  int `json:"bracket_size,omitempty"`
	ByeCount     int `json:"bye_count,omitempty"`
	RoundCount   int `json:"round_count,omitempty"`
	TotalMatches int `json:"total_matches"`

	Teams   []*Team  `json:"teams"`
	Matches []*Match `json:"matches"`
	Rounds  []Round  `json:"rounds"`

	LosersRounds []Round `json:"losers_rounds,omitempty"`
	GrandFinalID string  `json:"grand_final_id,omitempty"`

	Standings []Standing `json:"standings,omitempty"`

	Pools         []Pool  `json:"pools,omitempty"`
	PlayoffRounds []Round `json:"playoff_rounds,omitempty"`
	Placeholders  []*Team `json:"placeholders,omitempty"`
	// placeholder id -> bound team id
	PlayoffBindings map[string]string `json:"playoff_bindings,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	index map[string]*Match
}

// Match looks a match up by id in the arena.
func (b *Bracket) Match(id string) *Match {
	if b.index == nil || len(b.index) != len(b.Matches) {
		b.reindex()
	}
	return b.index[id]
}

func (b *Bracket) reindex() {
	b.index = make(map[string]*Match, len(b.Matches))
	for _, m := range b.Matches {
		b.index[m.ID] = m
	}
}

// AddMatch appends to the arena.
func (b *Bracket) AddMatch(m *Match) {
	b.Matches = append(b.Matches, m)
	if b.index != nil {
		b.index[m.ID] = m
	}
}

func (b *Bracket) RoundMatches(r Round) []*Match {
	matches := make([]*Match, 0, len(r.MatchIDs))
	for _, id := range r.MatchIDs {
		if m := b.Match(id); m != nil {
			matches = append(matches, m)
		}
	}
	return matches
}

// FinalMatch is the single terminal match of the top-level bracket:
// the grand final for double elimination, the last playoff or winners
// round match otherwise. Round robin has none.
func (b *Bracket) FinalMatch() *Match {
	switch b.Format {
	case DoubleElimination:
		return b.Match(b.GrandFinalID)
	case PoolPlay:
		return lastRoundMatch(b, b.PlayoffRounds)
	case SingleElimination:
		return lastRoundMatch(b, b.Rounds)
	}
	return nil
}

func lastRoundMatch(b *Bracket, rounds []Round) *Match {
	if len(rounds) == 0 {
		return nil
	}
	last := rounds[len(rounds)-1]
	if len(last.MatchIDs) != 1 {
		return nil
	}
	return b.Match(last.MatchIDs[0])
}

// Champion returns the winner of the final match once it is completed.
func (b *Bracket) Champion() (*Team, error) {
	final := b.FinalMatch()
	if final == nil {
		return nil, fmt.Errorf("%w: %s brackets do not crown a champion", ErrNoChampion, b.Format.DisplayName())
	}
	if final.Status != MatchCompleted || final.Winner == nil {
		return nil, fmt.Errorf("%w: final match %s is not completed", ErrNoChampion, final.ID)
	}
	return final.Winner, nil
}

func (b *Bracket) Pool(id string) *Pool {
	for i := range b.Pools {
		if b.Pools[i].ID == id {
			return &b.Pools[i]
		}
	}
	return nil
}

func (b *Bracket) Team(id string) *Team {
	for _, t := range b.Teams {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (b *Bracket) Placeholder(id string) *Team {
	for _, t := range b.Placeholders {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// RoundName finds the display name of the round a match belongs to.
func (b *Bracket) RoundName(matchID string) string {
	if matchID == b.GrandFinalID && matchID != "" {
		return "Grand Finals"
	}
	groups := [][]Round{b.Rounds, b.LosersRounds, b.PlayoffRounds}
	for _, p := range b.Pools {
		groups = append(groups, p.Rounds)
	}
	for _, rounds := range groups {
		for _, r := range rounds {
			for _, id := range r.MatchIDs {
				if id == matchID {
					return r.Name
				}
			}
		}
	}
	return ""
}

// Clone deep-copies the mutable parts of the bracket. Teams are shared:
// they are never mutated after the bracket is built.
func (b *Bracket) Clone() *Bracket {
	c := *b
	c.index = nil

	c.Teams = append([]*Team(nil), b.Teams...)
	c.Placeholders = append([]*Team(nil), b.Placeholders...)

	c.Matches = make([]*Match, len(b.Matches))
	for i, m := range b.Matches {
		c.Matches[i] = m.clone()
	}

	c.Rounds = cloneRounds(b.Rounds)
	c.LosersRounds = cloneRounds(b.LosersRounds)
	c.PlayoffRounds = cloneRounds(b.PlayoffRounds)
	c.Standings = append([]Standing(nil), b.Standings...)

	if b.PlayoffBindings != nil {
		c.PlayoffBindings = make(map[string]string, len(b.PlayoffBindings))
		for k, v := range b.PlayoffBindings {
			c.PlayoffBindings[k] = v
		}
	}

	if b.Pools != nil {
		c.Pools = make([]Pool, len(b.Pools))
		for i, p := range b.Pools {
			p.Teams = append([]*Team(nil), p.Teams...)
			p.Rounds = cloneRounds(p.Rounds)
			p.Standings = append([]Standing(nil), p.Standings...)
			c.Pools[i] = p
		}
	}

	return &c
}

func cloneRounds(rounds []Round) []Round {
	if rounds == nil {
		return nil
	}
	out := make([]Round, len(rounds))
	for i, r := range rounds {
		r.MatchIDs = append([]string(nil), r.MatchIDs...)
		out[i] = r
	}
	return out
}

package bracket

import "time"

type MatchStatus string

const (
	MatchPending   MatchStatus = "pending"
	MatchScheduled MatchStatus = "scheduled"
	MatchCompleted MatchStatus = "completed"
)

type BracketSide string

const (
	WinnersSide    BracketSide = "winners"
	LosersSide     BracketSide = "losers"
	FinalsSide     BracketSide = "finals"
	RoundRobinSide BracketSide = "round_robin"
	PoolSide       BracketSide = "pool"
	PlayoffSide    BracketSide = "playoff"
)

// Slot is one of the two places in a match.
type Slot int

const (
	Slot1 Slot = 1
	Slot2 Slot = 2
)

// GameScore is a single game of a match series.
type GameScore struct {
	Side1 int `json:"side1"`
	Side2 int `json:"side2"`
}

type Match struct {
	ID     string      `json:"id"`
	Side   BracketSide `json:"side"`
	PoolID string      `json:"pool_id,omitempty"`

	// Position in the bracket for reconstructing the view
	Round    int `json:"round"`
	Position int `json:"position"`

	Team1 *Team `json:"team1"`
	Team2 *Team `json:"team2"`

	Scores      []GameScore `json:"scores"`
	Winner      *Team       `json:"winner"`
	Loser       *Team       `json:"loser"`
	Status      MatchStatus `json:"status"`
	IsBye       bool        `json:"is_bye,omitempty"`
	IsTie       bool        `json:"is_tie,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`

	WinnerNextMatchID *string `json:"winner_next_match_id,omitempty"`
	WinnerNextSlot    *Slot   `json:"winner_next_slot,omitempty"`

	LoserNextMatchID *string `json:"loser_next_match_id,omitempty"`
	LoserNextSlot    *Slot   `json:"loser_next_slot,omitempty"`
}

func (m *Match) Team(slot Slot) *Team {
	if slot == Slot1 {
		return m.Team1
	}
	return m.Team2
}

func (m *Match) SetTeam(slot Slot, team *Team) {
	if slot == Slot1 {
		m.Team1 = team
	} else {
		m.Team2 = team
	}
}

// Filled reports whether both slots hold something, byes and placeholders included.
func (m *Match) Filled() bool {
	return m.Team1 != nil && m.Team2 != nil
}

// Playable reports whether two real teams are in the match and it is still open.
func (m *Match) Playable() bool {
	return m.Status != MatchCompleted && m.Team1.IsReal() && m.Team2.IsReal()
}

func (m *Match) HasTeam(teamID string) bool {
	return (m.Team1 != nil && m.Team1.ID == teamID) || (m.Team2 != nil && m.Team2.ID == teamID)
}

func (m *Match) IsWinner(slot Slot) bool {
	return m.Status == MatchCompleted && sameTeam(m.Winner, m.Team(slot))
}

func (m *Match) IsLoser(slot Slot) bool {
	return m.Status == MatchCompleted && sameTeam(m.Loser, m.Team(slot))
}

// PlayerIDs is the union of both teams' players.
func (m *Match) PlayerIDs() []string {
	ids := make([]string, 0, 4)
	ids = append(ids, m.Team1.PlayerIDs()...)
	ids = append(ids, m.Team2.PlayerIDs()...)
	return ids
}

// PointDifferential is side 1's total points minus side 2's.
func (m *Match) PointDifferential() int {
	diff := 0
	for _, g := range m.Scores {
		diff += g.Side1 - g.Side2
	}
	return diff
}

func (m *Match) clone() *Match {
	c := *m
	if m.Scores != nil {
		c.Scores = append([]GameScore(nil), m.Scores...)
	}
	if m.CompletedAt != nil {
		completedAt := *m.CompletedAt
		c.CompletedAt = &completedAt
	}
	return &c
}

package service

import (
	"fmt"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/AdamBeresnev/courtbracket/internal/utils"
	"github.com/google/uuid"
)

// BuildBracket validates the roster and constructs the full match graph for
// the requested format. Byes are already resolved on the returned bracket.
func BuildBracket(format bracket.Format, roster []bracket.Team, gameFormat bracket.GameFormat, now time.Time) (*bracket.Bracket, error) {
	if err := gameFormat.Validate(); err != nil {
		return nil, err
	}

	teams, err := prepareRoster(roster)
	if err != nil {
		return nil, err
	}

	b := &bracket.Bracket{
		ID:         uuid.New(),
		Format:     format,
		GameFormat: gameFormat,
		TeamCount:  len(teams),
		Teams:      teams,
		CreatedAt:  now,
	}

	switch format {
	case bracket.SingleElimination:
		err = buildSingleElimination(b, now)
	case bracket.DoubleElimination:
		err = buildDoubleElimination(b, now)
	case bracket.RoundRobin:
		buildRoundRobin(b)
	case bracket.PoolPlay:
		err = buildPoolPlay(b, now)
	default:
		err = fmt.Errorf("%w: unknown format %q", bracket.ErrInvalidFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return b, nil
}

// RoundName names an elimination round by its distance from the final.
func RoundName(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Finals"
	case 1:
		return "Semifinals"
	case 2:
		return "Quarterfinals"
	case 3:
		return "Round of 16"
	case 4:
		return "Round of 32"
	default:
		return fmt.Sprintf("Round %d", round)
	}
}

type eliminationLayout struct {
	side       bracket.BracketSide
	idPrefix   string
	namePrefix string
}

func (l eliminationLayout) matchID(round, index int) string {
	return fmt.Sprintf("%sR%d-M%d", l.idPrefix, round, index+1)
}

// slotFor alternates the successor slot: even matches feed team1, odd feed team2.
func slotFor(index int) bracket.Slot {
	if index%2 == 0 {
		return bracket.Slot1
	}
	return bracket.Slot2
}

// addEliminationRounds appends a seeded single-elimination tree to the arena.
// Match m of round r feeds match m/2 of round r+1. Round one is filled from
// the seed order; later rounds fill as results come in.
func addEliminationRounds(b *bracket.Bracket, teams []*bracket.Team, layout eliminationLayout) ([]bracket.Round, error) {
	bracketSize := NextPowerOf2(len(teams))
	totalRounds := CalculateRounds(bracketSize)

	slots, err := seedTeams(teams, bracketSize)
	if err != nil {
		return nil, err
	}

	rounds := make([]bracket.Round, 0, totalRounds)
	for r := 1; r <= totalRounds; r++ {
		matchesInRound := bracketSize >> r
		round := bracket.Round{
			Number:   r,
			Name:     layout.namePrefix + RoundName(r, totalRounds),
			Side:     layout.side,
			MatchIDs: make([]string, 0, matchesInRound),
		}

		for i := 0; i < matchesInRound; i++ {
			m := &bracket.Match{
				ID:       layout.matchID(r, i),
				Side:     layout.side,
				Round:    r,
				Position: i + 1,
				Status:   bracket.MatchPending,
			}

			if r < totalRounds {
				m.WinnerNextMatchID = utils.Ptr(layout.matchID(r+1, i/2))
				m.WinnerNextSlot = utils.Ptr(slotFor(i))
			}

			if r == 1 {
				m.Team1 = slots[2*i]
				m.Team2 = slots[2*i+1]
			}

			b.AddMatch(m)
			round.MatchIDs = append(round.MatchIDs, m.ID)
		}

		rounds = append(rounds, round)
	}

	return rounds, nil
}

func buildSingleElimination(b *bracket.Bracket, now time.Time) error {
	rounds, err := addEliminationRounds(b, b.Teams, eliminationLayout{side: bracket.WinnersSide})
	if err != nil {
		return err
	}

	b.Rounds = rounds
	b.BracketSize = NextPowerOf2(b.TeamCount)
	b.ByeCount = CalculateByes(b.TeamCount)
	b.RoundCount = len(rounds)
	b.TotalMatches = b.TeamCount - 1

	resolve(b, rounds[0].MatchIDs, now)
	return nil
}

package service

import (
	"fmt"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/AdamBeresnev/courtbracket/internal/utils"
)

const grandFinalID = "GF"

func losersMatchID(round, index int) string {
	return fmt.Sprintf("L%d-M%d", round, index+1)
}

// losersRoundSize is the number of matches in losers round r: two rounds
// per halving, starting at a quarter of the bracket.
func losersRoundSize(bracketSize, round int) int {
	return bracketSize >> ((round+1)/2 + 1)
}

// buildDoubleElimination lays out the winners tree, a losers tree of
// 2(k-1) rounds and one grand final.
//
// Odd losers rounds play among themselves; even rounds take the drop-downs
// from the next winners round in reverse order so rematches are pushed
// as late as possible.
func buildDoubleElimination(b *bracket.Bracket, now time.Time) error {
	winners, err := addEliminationRounds(b, b.Teams, eliminationLayout{
		side:       bracket.WinnersSide,
		namePrefix: "Winners ",
	})
	if err != nil {
		return err
	}

	bracketSize := NextPowerOf2(b.TeamCount)
	k := len(winners)
	losersRounds := 2 * (k - 1)

	gf := &bracket.Match{
		ID:     grandFinalID,
		Side:   bracket.FinalsSide,
		Round:  losersRounds + 1,
		Status: bracket.MatchPending,
	}
	if k == 1 {
		gf.Round = 2
	}

	var losers []bracket.Round
	for r := 1; r <= losersRounds; r++ {
		count := losersRoundSize(bracketSize, r)
		name := fmt.Sprintf("Losers Round %d", r)
		if r == losersRounds {
			name = "Losers Finals"
		}

		round := bracket.Round{Number: r, Name: name, Side: bracket.LosersSide, MatchIDs: make([]string, 0, count)}
		for i := 0; i < count; i++ {
			m := &bracket.Match{
				ID:       losersMatchID(r, i),
				Side:     bracket.LosersSide,
				Round:    r,
				Position: i + 1,
				Status:   bracket.MatchPending,
			}

			switch {
			case r == losersRounds:
				m.WinnerNextMatchID = utils.Ptr(grandFinalID)
				m.WinnerNextSlot = utils.Ptr(bracket.Slot2)
			case r%2 == 1:
				m.WinnerNextMatchID = utils.Ptr(losersMatchID(r+1, i))
				m.WinnerNextSlot = utils.Ptr(bracket.Slot1)
			default:
				m.WinnerNextMatchID = utils.Ptr(losersMatchID(r+1, i/2))
				m.WinnerNextSlot = utils.Ptr(slotFor(i))
			}

			b.AddMatch(m)
			round.MatchIDs = append(round.MatchIDs, m.ID)
		}
		losers = append(losers, round)
	}

	// Drop-downs from the winners side
	for j, round := range winners {
		winnersRound := j + 1
		count := len(round.MatchIDs)

		for i, id := range round.MatchIDs {
			m := b.Match(id)

			switch {
			case k == 1:
				m.LoserNextMatchID = utils.Ptr(grandFinalID)
				m.LoserNextSlot = utils.Ptr(bracket.Slot2)
			case winnersRound == 1:
				m.LoserNextMatchID = utils.Ptr(losersMatchID(1, i/2))
				m.LoserNextSlot = utils.Ptr(slotFor(i))
			default:
				m.LoserNextMatchID = utils.Ptr(losersMatchID(2*(winnersRound-1), count-1-i))
				m.LoserNextSlot = utils.Ptr(bracket.Slot2)
			}

			if winnersRound == k {
				m.WinnerNextMatchID = utils.Ptr(grandFinalID)
				m.WinnerNextSlot = utils.Ptr(bracket.Slot1)
			}
		}
	}

	b.AddMatch(gf)

	b.Rounds = winners
	b.LosersRounds = losers
	b.GrandFinalID = grandFinalID
	b.BracketSize = bracketSize
	b.ByeCount = CalculateByes(b.TeamCount)
	b.RoundCount = k
	b.TotalMatches = 2*b.TeamCount - 2

	resolve(b, winners[0].MatchIDs, now)
	return nil
}

package service

import (
	"fmt"
	"math/bits"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
)

// NextPowerOf2 rounds up to the nearest power of 2, so with input 5 it returns 8 and so on
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func CalculateByes(teamCount int) int {
	return NextPowerOf2(teamCount) - teamCount
}

// CalculateRounds is the number of elimination rounds for a field of this size.
func CalculateRounds(teamCount int) int {
	if teamCount <= 1 {
		return 0
	}
	return bits.Len(uint(NextPowerOf2(teamCount))) - 1
}

func isPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// SeedOrder returns, for every slot of a bracket of the given size, the
// zero-based seed that starts there. Slots 2k and 2k+1 meet in round one.
//
// Built by doubling: every seed p of the half-size order is followed by
// its mirror 2n-1-p, so 1 plays 8, 4 plays 5 and the top seeds stay in
// separate halves until the final.
func SeedOrder(bracketSize int) ([]int, error) {
	if bracketSize < 2 || !isPowerOf2(bracketSize) {
		return nil, fmt.Errorf("%w: bracket size %d is not a power of 2", bracket.ErrInvalidRoster, bracketSize)
	}

	order := []int{0}
	for len(order) < bracketSize {
		size := len(order) * 2
		next := make([]int, 0, size)
		for _, seed := range order {
			next = append(next, seed, size-1-seed)
		}
		order = next
	}

	return order, nil
}

// seedTeams lays the seed-sorted teams out over the bracket slots and
// fills whatever is left with byes.
func seedTeams(teams []*bracket.Team, bracketSize int) ([]*bracket.Team, error) {
	if len(teams) > bracketSize {
		return nil, fmt.Errorf("%w: %d teams do not fit a bracket of %d", bracket.ErrInvalidRoster, len(teams), bracketSize)
	}

	order, err := SeedOrder(bracketSize)
	if err != nil {
		return nil, err
	}

	slots := make([]*bracket.Team, bracketSize)
	for slot, seed := range order {
		if seed < len(teams) {
			slots[slot] = teams[seed]
		} else {
			slots[slot] = bracket.NewBye(seed + 1)
		}
	}

	return slots, nil
}

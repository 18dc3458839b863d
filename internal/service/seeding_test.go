package service

import (
	"testing"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPowerOf2(t *testing.T) {
	testCases := []struct {
		in, expected int
	}{
		{1, 1}, {2, 2}, {3, 4}, {5, 8}, {8, 8}, {9, 16}, {17, 32},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, NextPowerOf2(tc.in), "NextPowerOf2(%d)", tc.in)
	}
}

func TestCalculateByes(t *testing.T) {
	testCases := []struct {
		teams, byes, rounds int
	}{
		{teams: 2, byes: 0, rounds: 1},
		{teams: 5, byes: 3, rounds: 3},
		{teams: 6, byes: 2, rounds: 3},
		{teams: 8, byes: 0, rounds: 3},
		{teams: 12, byes: 4, rounds: 4},
		{teams: 33, byes: 31, rounds: 6},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.byes, CalculateByes(tc.teams), "byes for %d teams", tc.teams)
		assert.Equal(t, tc.rounds, CalculateRounds(tc.teams), "rounds for %d teams", tc.teams)
	}
}

func TestSeedOrder(t *testing.T) {
	testCases := []struct {
		name     string
		size     int
		expected []int
	}{
		{name: "2 slots", size: 2, expected: []int{0, 1}},
		{name: "4 slots", size: 4, expected: []int{0, 3, 1, 2}},
		{name: "8 slots", size: 8, expected: []int{0, 7, 3, 4, 1, 6, 2, 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order, err := SeedOrder(tc.size)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, order)
		})
	}
}

func TestSeedOrderProperties(t *testing.T) {
	for _, size := range []int{2, 4, 8, 16, 32, 64} {
		order, err := SeedOrder(size)
		require.NoError(t, err)
		require.Len(t, order, size)

		assert.Equal(t, 0, order[0])
		assert.Equal(t, size-1, order[1])
		assert.ElementsMatch(t, seq(size), order)

		// round one pairs always add up to the mirror seed
		for i := 0; i < size; i += 2 {
			assert.Equal(t, size-1, order[i]+order[i+1])
		}

		if size >= 4 {
			// the top two seeds sit in opposite halves
			half := size / 2
			assert.Contains(t, order[half:], 1)
		}
	}
}

// The top 2^k seeds land in 2^k different sections of the bracket, so
// seeds 1-4 can only meet in the semifinals, 1-8 in the quarterfinals.
func TestSeedOrderSpreadsTopSeeds(t *testing.T) {
	for _, size := range []int{4, 8, 16, 32} {
		order, err := SeedOrder(size)
		require.NoError(t, err)

		for sections := 2; sections <= size; sections *= 2 {
			width := size / sections
			seen := make(map[int]int)
			for slot, seed := range order {
				if seed < sections {
					seen[slot/width]++
				}
			}
			assert.Len(t, seen, sections, "size %d, top %d seeds", size, sections)
		}
	}

	order, err := SeedOrder(8)
	require.NoError(t, err)
	quarters := map[int]int{}
	for slot, seed := range order {
		if seed < 4 {
			quarters[slot/2] = seed
		}
	}
	assert.Equal(t, map[int]int{0: 0, 1: 3, 2: 1, 3: 2}, quarters)
}

func TestSeedOrderRejectsOddSizes(t *testing.T) {
	for _, size := range []int{0, 1, 3, 6, 12} {
		_, err := SeedOrder(size)
		assert.ErrorIs(t, err, bracket.ErrInvalidRoster, "size %d", size)
	}
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

package service

import (
	"sort"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
)

type RoundView struct {
	Number  int              `json:"number"`
	Name    string           `json:"name"`
	Matches []*bracket.Match `json:"matches"`
}

// BracketView groups a bracket's matches by side and round, in play order,
// so clients can draw it without following match ids.
type BracketView struct {
	ID      string                 `json:"id"`
	Format  bracket.Format         `json:"format"`
	Winners []RoundView            `json:"winners,omitempty"`
	Losers  []RoundView            `json:"losers,omitempty"`
	Finals  []RoundView            `json:"finals,omitempty"`
	League  []RoundView            `json:"league,omitempty"`
	Pools   map[string][]RoundView `json:"pools,omitempty"`
	Playoff []RoundView            `json:"playoff,omitempty"`
}

func PrepareBracketView(b *bracket.Bracket) BracketView {
	grouped := make(map[bracket.BracketSide]map[int][]*bracket.Match)
	pools := make(map[string]map[int][]*bracket.Match)

	for _, m := range b.Matches {
		rounds := grouped[m.Side]
		if m.Side == bracket.PoolSide {
			rounds = pools[m.PoolID]
		}
		if rounds == nil {
			rounds = make(map[int][]*bracket.Match)
			if m.Side == bracket.PoolSide {
				pools[m.PoolID] = rounds
			} else {
				grouped[m.Side] = rounds
			}
		}
		rounds[m.Round] = append(rounds[m.Round], m)
	}

	view := BracketView{
		ID:      b.ID.String(),
		Format:  b.Format,
		Winners: sortRounds(b, grouped[bracket.WinnersSide]),
		Losers:  sortRounds(b, grouped[bracket.LosersSide]),
		Finals:  sortRounds(b, grouped[bracket.FinalsSide]),
		League:  sortRounds(b, grouped[bracket.RoundRobinSide]),
		Playoff: sortRounds(b, grouped[bracket.PlayoffSide]),
	}
	if len(pools) > 0 {
		view.Pools = make(map[string][]RoundView, len(pools))
		for id, rounds := range pools {
			view.Pools[id] = sortRounds(b, rounds)
		}
	}
	return view
}

func sortRounds(b *bracket.Bracket, rounds map[int][]*bracket.Match) []RoundView {
	if len(rounds) == 0 {
		return nil
	}

	nums := make([]int, 0, len(rounds))
	for r := range rounds {
		nums = append(nums, r)
	}
	sort.Ints(nums)

	out := make([]RoundView, 0, len(nums))
	for _, r := range nums {
		matches := rounds[r]
		sort.Slice(matches, func(i, j int) bool {
			return matches[i].Position < matches[j].Position
		})
		out = append(out, RoundView{
			Number:  r,
			Name:    b.RoundName(matches[0].ID),
			Matches: matches,
		})
	}
	return out
}

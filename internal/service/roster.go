package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/google/uuid"
)

// prepareRoster copies the host's roster into bracket teams sorted by seed.
// Missing ids get a fresh uuid. When no team carries a seed the roster
// order is the seed order.
func prepareRoster(roster []bracket.Team) ([]*bracket.Team, error) {
	if len(roster) < 2 {
		return nil, fmt.Errorf("%w: at least 2 teams are required, got %d", bracket.ErrInvalidRoster, len(roster))
	}

	seeded := false
	for _, t := range roster {
		if t.Seed != 0 {
			seeded = true
			break
		}
	}

	teams := make([]*bracket.Team, 0, len(roster))
	ids := make(map[string]struct{}, len(roster))
	seeds := make(map[int]string, len(roster))

	for i, input := range roster {
		if input.IsBye || input.IsPlaceholder {
			return nil, fmt.Errorf("%w: team %q is not a real team", bracket.ErrInvalidRoster, input.Name)
		}

		t := &bracket.Team{
			ID:      strings.TrimSpace(input.ID),
			Name:    input.Name,
			Seed:    input.Seed,
			Players: append([]string(nil), input.Players...),
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if !seeded {
			t.Seed = i + 1
		}

		if t.Seed < 1 {
			return nil, fmt.Errorf("%w: team %q has seed %d", bracket.ErrInvalidRoster, t.Name, t.Seed)
		}
		if other, dup := seeds[t.Seed]; dup {
			return nil, fmt.Errorf("%w: seed %d is shared by %q and %q", bracket.ErrInvalidRoster, t.Seed, other, t.Name)
		}
		if _, dup := ids[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate team id %q", bracket.ErrInvalidRoster, t.ID)
		}

		seeds[t.Seed] = t.Name
		ids[t.ID] = struct{}{}
		teams = append(teams, t)
	}

	sort.Slice(teams, func(i, j int) bool {
		return teams[i].Seed < teams[j].Seed
	})

	return teams, nil
}

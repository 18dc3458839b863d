package bracket

import "fmt"

type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Seed    int      `json:"seed"`
	Players []string `json:"players,omitempty"`

	IsBye         bool `json:"is_bye,omitempty"`
	IsPlaceholder bool `json:"is_placeholder,omitempty"`
}

func NewBye(seed int) *Team {
	return &Team{
		ID:    fmt.Sprintf("BYE-%d", seed),
		Name:  "BYE",
		Seed:  seed,
		IsBye: true,
	}
}

// IsReal reports whether the team can actually take the court.
func (t *Team) IsReal() bool {
	return t != nil && !t.IsBye && !t.IsPlaceholder
}

// PlayerIDs falls back to the team ID when no players were registered,
// so rest tracking still works for rosters without player lists.
func (t *Team) PlayerIDs() []string {
	if t == nil || t.IsBye {
		return nil
	}
	if len(t.Players) > 0 {
		return t.Players
	}
	return []string{t.ID}
}

func (t *Team) DisplayName() string {
	if t == nil {
		return "TBD"
	}
	return t.Name
}

func sameTeam(a, b *Team) bool {
	return a != nil && b != nil && a.ID == b.ID
}

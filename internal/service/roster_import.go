package service

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
)

// ParseRoster reads a pasted, one-team-per-line roster. A line is either a
// bare team name or "Team Name: player1, player2". Blank lines and lines
// starting with '#' are skipped; line order is seed order.
func ParseRoster(text string) ([]bracket.Team, error) {
	var teams []bracket.Team

	scanner := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		name, players, hasPlayers := strings.Cut(raw, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: line %d has no team name", bracket.ErrInvalidRoster, line)
		}

		t := bracket.Team{Name: name, Seed: len(teams) + 1}
		if hasPlayers {
			for _, p := range strings.Split(players, ",") {
				if p = strings.TrimSpace(p); p != "" {
					t.Players = append(t.Players, p)
				}
			}
		}
		teams = append(teams, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

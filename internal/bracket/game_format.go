package bracket

import "fmt"

// GameFormat holds the scoring rules for every match of a bracket.
type GameFormat struct {
	PointsToWin   int `json:"points_to_win"`
	WinBy         int `json:"win_by"`
	GamesPerMatch int `json:"games_per_match"`
}

// DefaultGameFormat is games to 11, win by 2, best of 3.
func DefaultGameFormat() GameFormat {
	return GameFormat{PointsToWin: 11, WinBy: 2, GamesPerMatch: 3}
}

func (f GameFormat) Validate() error {
	if f.PointsToWin < 1 {
		return fmt.Errorf("%w: points to win must be positive, got %d", ErrInvalidFormat, f.PointsToWin)
	}
	if f.WinBy < 1 {
		return fmt.Errorf("%w: win by must be positive, got %d", ErrInvalidFormat, f.WinBy)
	}
	if f.GamesPerMatch < 1 {
		return fmt.Errorf("%w: games per match must be positive, got %d", ErrInvalidFormat, f.GamesPerMatch)
	}
	return nil
}

// GamesToWin is the majority of the series.
func (f GameFormat) GamesToWin() int {
	return f.GamesPerMatch/2 + 1
}

// IsValidGameScore checks a finished game. The winner needs at least
// PointsToWin and a lead of WinBy; once past PointsToWin the game ends
// the moment the lead reaches WinBy, so the margin must be exactly WinBy.
// With WinBy 1 the first side to PointsToWin wins, so there is no overtime.
func (f GameFormat) IsValidGameScore(score1, score2 int) bool {
	if score1 < 0 || score2 < 0 {
		return false
	}

	high, low := score1, score2
	if low > high {
		high, low = low, high
	}

	if high-low < f.WinBy {
		return false
	}
	if high < f.PointsToWin {
		return false
	}
	if high > f.PointsToWin && (f.WinBy == 1 || high-low != f.WinBy) {
		return false
	}
	return true
}

// GamesWon counts the games taken by each side.
func GamesWon(scores []GameScore) (side1, side2 int) {
	for _, g := range scores {
		switch {
		case g.Side1 > g.Side2:
			side1++
		case g.Side2 > g.Side1:
			side2++
		}
	}
	return side1, side2
}

// MatchWinner returns the slot that reached a majority of games,
// or false while the series is still undecided.
func (f GameFormat) MatchWinner(scores []GameScore) (Slot, bool) {
	side1, side2 := GamesWon(scores)
	need := f.GamesToWin()

	switch {
	case side1 >= need:
		return Slot1, true
	case side2 >= need:
		return Slot2, true
	}
	return 0, false
}

package bracket

import (
	"fmt"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/utils"
	"github.com/google/uuid"
)

type ScheduleConfig struct {
	Courts           int    `json:"courts"`
	MatchDurationMin int    `json:"match_duration_min"`
	WarmupMin        int    `json:"warmup_min"`
	DayStart         string `json:"day_start"`
	DayEnd           string `json:"day_end"`
	MinRestMin       int    `json:"min_rest_min"`
}

func DefaultScheduleConfig(courts int) ScheduleConfig {
	return ScheduleConfig{
		Courts:           courts,
		MatchDurationMin: 45,
		WarmupMin:        5,
		DayStart:         "08:00",
		DayEnd:           "20:00",
		MinRestMin:       30,
	}
}

// SlotMinutes is how long a court is busy for one match.
func (c ScheduleConfig) SlotMinutes() int {
	return c.MatchDurationMin + c.WarmupMin
}

// Window parses and checks the playing day.
func (c ScheduleConfig) Window() (start, end utils.TimeOfDay, err error) {
	if c.Courts < 1 {
		return 0, 0, fmt.Errorf("%w: at least one court is required", ErrInvalidFormat)
	}
	if c.MatchDurationMin < 1 || c.WarmupMin < 0 || c.MinRestMin < 0 {
		return 0, 0, fmt.Errorf("%w: durations must not be negative", ErrInvalidFormat)
	}

	start, err = utils.ParseTimeOfDay(c.DayStart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: day start: %w", ErrInvalidFormat, err)
	}
	end, err = utils.ParseTimeOfDay(c.DayEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: day end: %w", ErrInvalidFormat, err)
	}
	if end <= start {
		return 0, 0, fmt.Errorf("%w: day end %s is not after day start %s", ErrInvalidFormat, end, start)
	}
	return start, end, nil
}

type ScheduledMatch struct {
	MatchID   string          `json:"match_id"`
	CourtID   string          `json:"court_id"`
	Start     utils.TimeOfDay `json:"start"`
	End       utils.TimeOfDay `json:"end"`
	Team1     string          `json:"team1"`
	Team2     string          `json:"team2"`
	RoundName string          `json:"round_name"`
}

type Court struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Matches []ScheduledMatch `json:"matches"`
}

// EndTime is when the court's last match finishes, or the fallback when idle.
func (c *Court) EndTime(idle utils.TimeOfDay) utils.TimeOfDay {
	if len(c.Matches) == 0 {
		return idle
	}
	return c.Matches[len(c.Matches)-1].End
}

type Assignment struct {
	MatchID string          `json:"match_id"`
	CourtID string          `json:"court_id"`
	Start   utils.TimeOfDay `json:"start"`
}

type Schedule struct {
	ID          uuid.UUID      `json:"id"`
	BracketID   uuid.UUID      `json:"bracket_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Config      ScheduleConfig `json:"config"`
	Courts      []Court        `json:"courts"`
	Assignments []Assignment   `json:"assignments"`
	Unplaced    []string       `json:"unplaced,omitempty"`
}

func (s *Schedule) Court(id string) *Court {
	for i := range s.Courts {
		if s.Courts[i].ID == id {
			return &s.Courts[i]
		}
	}
	return nil
}

func (s *Schedule) Clone() *Schedule {
	c := *s
	c.Courts = make([]Court, len(s.Courts))
	for i, court := range s.Courts {
		court.Matches = append([]ScheduledMatch(nil), court.Matches...)
		c.Courts[i] = court
	}
	c.Assignments = append([]Assignment(nil), s.Assignments...)
	c.Unplaced = append([]string(nil), s.Unplaced...)
	return &c
}

package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/AdamBeresnev/courtbracket/internal/utils"
	"github.com/google/uuid"
)

// GenerateSchedule assigns every currently playable match a court and a
// start time. Matches go out in round order; each one takes the court
// that frees up first, no earlier than the moment all of its players have
// rested since their previous match.
//
// This is a single greedy pass with no backtracking. Matches that would
// run past the end of the day are listed in Unplaced and the partial
// schedule is returned together with ErrSchedulingInfeasible.
func GenerateSchedule(b *bracket.Bracket, cfg bracket.ScheduleConfig, now time.Time) (*bracket.Schedule, error) {
	dayStart, dayEnd, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	s := &bracket.Schedule{
		ID:          uuid.New(),
		BracketID:   b.ID,
		GeneratedAt: now,
		Config:      cfg,
		Courts:      make([]bracket.Court, cfg.Courts),
	}
	for i := range s.Courts {
		s.Courts[i] = bracket.Court{
			ID:   fmt.Sprintf("C%d", i+1),
			Name: fmt.Sprintf("Court %d", i+1),
		}
	}

	readyAt := make(map[string]utils.TimeOfDay)
	candidates := schedulableMatches(b)

	for _, m := range candidates {
		players := m.PlayerIDs()

		floor := dayStart
		for _, p := range players {
			if t, ok := readyAt[p]; ok {
				floor = utils.MaxTime(floor, t)
			}
		}
		floor = floor.RoundUp()

		best := 0
		for i := 1; i < len(s.Courts); i++ {
			if s.Courts[i].EndTime(dayStart) < s.Courts[best].EndTime(dayStart) {
				best = i
			}
		}
		court := &s.Courts[best]

		start := utils.MaxTime(court.EndTime(dayStart), floor).RoundUp()
		end := start.AddMinutes(cfg.SlotMinutes())
		if end > dayEnd {
			s.Unplaced = append(s.Unplaced, m.ID)
			continue
		}

		court.Matches = append(court.Matches, bracket.ScheduledMatch{
			MatchID:   m.ID,
			CourtID:   court.ID,
			Start:     start,
			End:       end,
			Team1:     m.Team1.DisplayName(),
			Team2:     m.Team2.DisplayName(),
			RoundName: b.RoundName(m.ID),
		})
		s.Assignments = append(s.Assignments, bracket.Assignment{MatchID: m.ID, CourtID: court.ID, Start: start})

		for _, p := range players {
			readyAt[p] = end.AddMinutes(cfg.MinRestMin)
		}
	}

	for i := range s.Courts {
		sortCourt(&s.Courts[i])
	}

	if len(s.Unplaced) > 0 {
		return s, fmt.Errorf("%w: %d of %d matches unplaced", bracket.ErrSchedulingInfeasible, len(s.Unplaced), len(candidates))
	}
	return s, nil
}

// schedulableMatches lists open matches with two real teams, earliest
// round first and bracket order within a round.
func schedulableMatches(b *bracket.Bracket) []*bracket.Match {
	var matches []*bracket.Match
	for _, m := range b.Matches {
		if m.Playable() {
			matches = append(matches, m)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Round < matches[j].Round
	})
	return matches
}

func sortCourt(c *bracket.Court) {
	sort.SliceStable(c.Matches, func(i, j int) bool {
		return c.Matches[i].Start < c.Matches[j].Start
	})
}

// RescheduleMatch moves a scheduled match to another court and start time,
// keeping its length. Rest and overlap are the caller's responsibility.
func RescheduleMatch(s *bracket.Schedule, matchID, courtID string, start utils.TimeOfDay) error {
	target := s.Court(courtID)
	if target == nil {
		return fmt.Errorf("%w: %s", bracket.ErrCourtNotFound, courtID)
	}

	var (
		entry bracket.ScheduledMatch
		found bool
	)
	for i := range s.Courts {
		c := &s.Courts[i]
		for j, sm := range c.Matches {
			if sm.MatchID == matchID {
				entry = sm
				c.Matches = append(c.Matches[:j:j], c.Matches[j+1:]...)
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s is not on the schedule", bracket.ErrMatchNotFound, matchID)
	}

	length := int(entry.End - entry.Start)
	entry.CourtID = courtID
	entry.Start = start
	entry.End = start.AddMinutes(length)

	target.Matches = append(target.Matches, entry)
	sortCourt(target)

	for i := range s.Assignments {
		if s.Assignments[i].MatchID == matchID {
			s.Assignments[i].CourtID = courtID
			s.Assignments[i].Start = start
		}
	}
	return nil
}

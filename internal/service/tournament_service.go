package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/AdamBeresnev/courtbracket/internal/utils"
	"github.com/google/uuid"
)

// BracketStore persists bracket and schedule snapshots. Implementations
// return bracket.ErrBracketNotFound and bracket.ErrScheduleNotFound for
// unknown ids.
type BracketStore interface {
	SaveBracket(ctx context.Context, b *bracket.Bracket) error
	GetBracket(ctx context.Context, id uuid.UUID) (*bracket.Bracket, error)
	SaveSchedule(ctx context.Context, s *bracket.Schedule) error
	GetSchedule(ctx context.Context, id uuid.UUID) (*bracket.Schedule, error)
}

// Notifier is told about every change to a bracket.
type Notifier interface {
	Publish(bracketID uuid.UUID, event string, payload any)
}

const (
	EventBracketCreated   = "bracket.created"
	EventResultRecorded   = "match.completed"
	EventScheduleUpdated  = "schedule.updated"
	EventPoolClosed       = "pool.closed"
	EventPlayoffSlotBound = "playoff.bound"
)

// TournamentService keeps every live bracket in memory and serialises
// mutations per bracket. Reads hand out deep copies.
type TournamentService struct {
	mu        sync.RWMutex
	brackets  map[uuid.UUID]*tournamentEntry
	schedules map[uuid.UUID]uuid.UUID // schedule id -> bracket id

	store    BracketStore
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

type tournamentEntry struct {
	mu       sync.Mutex
	bracket  *bracket.Bracket
	schedule *bracket.Schedule
}

type Option func(*TournamentService)

func WithStore(store BracketStore) Option {
	return func(s *TournamentService) { s.store = store }
}

func WithNotifier(n Notifier) Option {
	return func(s *TournamentService) { s.notifier = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *TournamentService) { s.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(s *TournamentService) { s.now = now }
}

func NewTournamentService(opts ...Option) *TournamentService {
	s := &TournamentService{
		brackets:  make(map[uuid.UUID]*tournamentEntry),
		schedules: make(map[uuid.UUID]uuid.UUID),
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateBracketInput struct {
	Roster     []bracket.Team     `json:"roster"`
	Format     bracket.Format     `json:"format"`
	Courts     int                `json:"courts"`
	GameFormat bracket.GameFormat `json:"game_format"`
}

func (s *TournamentService) CreateBracket(ctx context.Context, in CreateBracketInput) (*bracket.Bracket, error) {
	gameFormat := in.GameFormat
	if gameFormat == (bracket.GameFormat{}) {
		gameFormat = bracket.DefaultGameFormat()
	}
	if in.Courts < 0 {
		return nil, fmt.Errorf("%w: court count must not be negative", bracket.ErrInvalidFormat)
	}

	b, err := BuildBracket(in.Format, in.Roster, gameFormat, s.now())
	if err != nil {
		return nil, err
	}
	b.Courts = in.Courts

	if s.store != nil {
		if err := s.store.SaveBracket(ctx, b); err != nil {
			return nil, fmt.Errorf("failed to save bracket: %w", err)
		}
	}

	s.mu.Lock()
	s.brackets[b.ID] = &tournamentEntry{bracket: b}
	s.mu.Unlock()

	s.logger.Info("bracket created",
		"bracket_id", b.ID,
		"format", b.Format,
		"teams", b.TeamCount,
		"matches", b.TotalMatches,
	)

	snapshot := b.Clone()
	s.publish(b.ID, EventBracketCreated, snapshot)
	return snapshot, nil
}

func (s *TournamentService) GetBracket(ctx context.Context, id uuid.UUID) (*bracket.Bracket, error) {
	e, err := s.entry(ctx, id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bracket.Clone(), nil
}

// RecordResult scores a match. Incomplete series are kept as progress and
// still return ErrIncompleteMatch.
func (s *TournamentService) RecordResult(ctx context.Context, bracketID uuid.UUID, matchID string, scores []bracket.GameScore) (*bracket.Bracket, error) {
	var (
		snapshot   *bracket.Bracket
		incomplete error
	)

	err := s.mutate(ctx, bracketID, func(b *bracket.Bracket) error {
		err := RecordResult(b, matchID, scores, s.now())
		if errors.Is(err, bracket.ErrIncompleteMatch) {
			// keep the games played so far
			incomplete = err
			return nil
		}
		if err != nil {
			return err
		}
		snapshot = b.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if incomplete != nil {
		return nil, incomplete
	}

	m := snapshot.Match(matchID)
	s.logger.Info("result recorded",
		"bracket_id", bracketID,
		"match_id", matchID,
		"winner", m.Winner.DisplayName(),
		"tie", m.IsTie,
	)
	s.publish(bracketID, EventResultRecorded, snapshot)
	return snapshot, nil
}

func (s *TournamentService) GetChampion(ctx context.Context, bracketID uuid.UUID) (*bracket.Team, error) {
	e, err := s.entry(ctx, bracketID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	champion, err := e.bracket.Champion()
	if err != nil {
		return nil, err
	}
	c := *champion
	return &c, nil
}

// GenerateSchedule replaces the bracket's schedule with a fresh one. A
// zero court count falls back to the bracket's courts. On
// ErrSchedulingInfeasible the partial schedule is still stored and
// returned.
func (s *TournamentService) GenerateSchedule(ctx context.Context, bracketID uuid.UUID, cfg bracket.ScheduleConfig) (*bracket.Schedule, error) {
	var (
		previousID  uuid.UUID
		hadPrevious bool
	)

	e, err := s.entry(ctx, bracketID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if cfg.Courts == 0 {
		cfg.Courts = e.bracket.Courts
	}

	sched, infeasible := GenerateSchedule(e.bracket, cfg, s.now())
	if infeasible != nil && !errors.Is(infeasible, bracket.ErrSchedulingInfeasible) {
		e.mu.Unlock()
		return nil, infeasible
	}

	if s.store != nil {
		if err := s.store.SaveSchedule(ctx, sched); err != nil {
			e.mu.Unlock()
			return nil, fmt.Errorf("failed to save schedule: %w", err)
		}
	}

	if e.schedule != nil {
		previousID, hadPrevious = e.schedule.ID, true
	}
	e.schedule = sched
	snapshot := sched.Clone()
	e.mu.Unlock()

	s.mu.Lock()
	if hadPrevious {
		delete(s.schedules, previousID)
	}
	s.schedules[snapshot.ID] = bracketID
	s.mu.Unlock()

	if infeasible != nil {
		s.logger.Warn("schedule incomplete",
			"bracket_id", bracketID,
			"schedule_id", snapshot.ID,
			"unplaced", len(snapshot.Unplaced),
		)
	} else {
		s.logger.Info("schedule generated",
			"bracket_id", bracketID,
			"schedule_id", snapshot.ID,
			"matches", len(snapshot.Assignments),
		)
	}

	s.publish(bracketID, EventScheduleUpdated, snapshot)
	return snapshot, infeasible
}

func (s *TournamentService) GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*bracket.Schedule, error) {
	e, err := s.scheduleEntry(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.schedule == nil || e.schedule.ID != scheduleID {
		return nil, fmt.Errorf("%w: %s", bracket.ErrScheduleNotFound, scheduleID)
	}
	return e.schedule.Clone(), nil
}

// RescheduleMatch moves one match on the current schedule. start is "HH:MM".
func (s *TournamentService) RescheduleMatch(ctx context.Context, scheduleID uuid.UUID, matchID, courtID, start string) (*bracket.Schedule, error) {
	startAt, err := utils.ParseTimeOfDay(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bracket.ErrInvalidFormat, err)
	}

	e, err := s.scheduleEntry(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.schedule == nil || e.schedule.ID != scheduleID {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", bracket.ErrScheduleNotFound, scheduleID)
	}
	// work on a copy so a failed save leaves the live schedule untouched
	moved := e.schedule.Clone()
	if err := RescheduleMatch(moved, matchID, courtID, startAt); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	if s.store != nil {
		if err := s.store.SaveSchedule(ctx, moved); err != nil {
			e.mu.Unlock()
			return nil, fmt.Errorf("failed to save schedule: %w", err)
		}
	}
	e.schedule = moved
	snapshot := moved.Clone()
	bracketID := e.bracket.ID
	e.mu.Unlock()

	s.logger.Info("match rescheduled",
		"schedule_id", scheduleID,
		"match_id", matchID,
		"court_id", courtID,
		"start", startAt,
	)
	s.publish(bracketID, EventScheduleUpdated, snapshot)
	return snapshot, nil
}

func (s *TournamentService) ClosePool(ctx context.Context, bracketID uuid.UUID, poolID string) ([]bracket.Standing, error) {
	var (
		standings []bracket.Standing
		snapshot  *bracket.Bracket
	)
	err := s.mutate(ctx, bracketID, func(b *bracket.Bracket) error {
		var err error
		standings, err = ClosePool(b, poolID)
		if err != nil {
			return err
		}
		snapshot = b.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("pool closed", "bracket_id", bracketID, "pool_id", poolID)
	s.publish(bracketID, EventPoolClosed, snapshot)
	return standings, nil
}

func (s *TournamentService) BindPlayoffSlot(ctx context.Context, bracketID uuid.UUID, placeholderID, teamID string) (*bracket.Bracket, error) {
	var snapshot *bracket.Bracket
	err := s.mutate(ctx, bracketID, func(b *bracket.Bracket) error {
		if err := BindPlayoffSlot(b, placeholderID, teamID, s.now()); err != nil {
			return err
		}
		snapshot = b.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("playoff slot bound",
		"bracket_id", bracketID,
		"placeholder_id", placeholderID,
		"team_id", teamID,
	)
	s.publish(bracketID, EventPlayoffSlotBound, snapshot)
	return snapshot, nil
}

// mutate runs fn against a copy of the bracket under its lock. The copy
// replaces the live bracket only once fn succeeds and the store accepts it.
func (s *TournamentService) mutate(ctx context.Context, bracketID uuid.UUID, fn func(b *bracket.Bracket) error) error {
	e, err := s.entry(ctx, bracketID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	work := e.bracket.Clone()
	if err := fn(work); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.SaveBracket(ctx, work); err != nil {
			s.logger.Error("failed to save bracket", "bracket_id", bracketID, "error", err)
			return fmt.Errorf("failed to save bracket: %w", err)
		}
	}
	e.bracket = work
	return nil
}

// entry finds a live bracket, loading it from the store on a miss.
func (s *TournamentService) entry(ctx context.Context, id uuid.UUID) (*tournamentEntry, error) {
	s.mu.RLock()
	e, ok := s.brackets[id]
	s.mu.RUnlock()
	if ok {
		return e, nil
	}

	if s.store == nil {
		return nil, fmt.Errorf("%w: %s", bracket.ErrBracketNotFound, id)
	}

	b, err := s.store.GetBracket(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.brackets[id]; ok {
		return existing, nil
	}
	e = &tournamentEntry{bracket: b}
	s.brackets[id] = e
	return e, nil
}

func (s *TournamentService) scheduleEntry(ctx context.Context, scheduleID uuid.UUID) (*tournamentEntry, error) {
	s.mu.RLock()
	bracketID, ok := s.schedules[scheduleID]
	s.mu.RUnlock()
	if ok {
		return s.entry(ctx, bracketID)
	}

	if s.store == nil {
		return nil, fmt.Errorf("%w: %s", bracket.ErrScheduleNotFound, scheduleID)
	}

	sched, err := s.store.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	e, err := s.entry(ctx, sched.BracketID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.schedule == nil {
		e.schedule = sched
	}
	current := e.schedule.ID
	e.mu.Unlock()

	if current != scheduleID {
		return nil, fmt.Errorf("%w: %s was replaced by %s", bracket.ErrScheduleNotFound, scheduleID, current)
	}

	s.mu.Lock()
	s.schedules[scheduleID] = sched.BracketID
	s.mu.Unlock()
	return e, nil
}

func (s *TournamentService) publish(bracketID uuid.UUID, event string, payload any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(bracketID, event, payload)
}

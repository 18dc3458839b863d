package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/courtbracket/internal/bracket"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TournamentStore keeps one JSON snapshot per bracket and one current
// schedule per bracket.
type TournamentStore struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db, now: time.Now}
}

type bracketRow struct {
	ID        uuid.UUID `db:"id"`
	Format    string    `db:"format"`
	TeamCount int       `db:"team_count"`
	Payload   string    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type scheduleRow struct {
	ID          uuid.UUID `db:"id"`
	BracketID   uuid.UUID `db:"bracket_id"`
	Payload     string    `db:"payload"`
	Unplaced    int       `db:"unplaced"`
	GeneratedAt time.Time `db:"generated_at"`
}

// BracketSummary is a bracket row without its payload.
type BracketSummary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Format    string    `db:"format" json:"format"`
	TeamCount int       `db:"team_count" json:"team_count"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (s *TournamentStore) SaveBracket(ctx context.Context, b *bracket.Bracket) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to encode bracket: %w", err)
	}

	row := bracketRow{
		ID:        b.ID,
		Format:    string(b.Format),
		TeamCount: b.TeamCount,
		Payload:   string(payload),
		CreatedAt: b.CreatedAt,
		UpdatedAt: s.now(),
	}

	_, err = s.db.NamedExecContext(ctx, `INSERT INTO brackets (id, format, team_count, payload, created_at, updated_at)
		VALUES (:id, :format, :team_count, :payload, :created_at, :updated_at)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`, row)
	return err
}

func (s *TournamentStore) GetBracket(ctx context.Context, id uuid.UUID) (*bracket.Bracket, error) {
	var row bracketRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM brackets WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", bracket.ErrBracketNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var b bracket.Bracket
	if err := json.Unmarshal([]byte(row.Payload), &b); err != nil {
		return nil, fmt.Errorf("failed to decode bracket %s: %w", id, err)
	}
	relinkTeams(&b)
	return &b, nil
}

func (s *TournamentStore) ListBrackets(ctx context.Context) ([]BracketSummary, error) {
	var brackets []BracketSummary
	err := s.db.SelectContext(ctx, &brackets, "SELECT id, format, team_count, created_at, updated_at FROM brackets ORDER BY created_at DESC")
	return brackets, err
}

// SaveSchedule stores s as the bracket's only schedule, dropping any older one.
func (s *TournamentStore) SaveSchedule(ctx context.Context, sched *bracket.Schedule) error {
	payload, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM schedules WHERE bracket_id = ? AND id != ?", sched.BracketID, sched.ID); err != nil {
		return err
	}

	row := scheduleRow{
		ID:          sched.ID,
		BracketID:   sched.BracketID,
		Payload:     string(payload),
		Unplaced:    len(sched.Unplaced),
		GeneratedAt: sched.GeneratedAt,
	}
	_, err = tx.NamedExecContext(ctx, `INSERT INTO schedules (id, bracket_id, payload, unplaced, generated_at)
		VALUES (:id, :bracket_id, :payload, :unplaced, :generated_at)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, unplaced = excluded.unplaced`, row)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *TournamentStore) GetSchedule(ctx context.Context, id uuid.UUID) (*bracket.Schedule, error) {
	var row scheduleRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM schedules WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", bracket.ErrScheduleNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var sched bracket.Schedule
	if err := json.Unmarshal([]byte(row.Payload), &sched); err != nil {
		return nil, fmt.Errorf("failed to decode schedule %s: %w", id, err)
	}
	return &sched, nil
}

// relinkTeams points every match slot back at the bracket's own team
// values after decoding, which produces a fresh copy per reference.
func relinkTeams(b *bracket.Bracket) {
	teams := make(map[string]*bracket.Team, len(b.Teams)+len(b.Placeholders))
	for _, t := range b.Teams {
		teams[t.ID] = t
	}
	for _, t := range b.Placeholders {
		teams[t.ID] = t
	}

	relink := func(t *bracket.Team) *bracket.Team {
		if t == nil {
			return nil
		}
		if known, ok := teams[t.ID]; ok {
			return known
		}
		return t
	}

	for _, m := range b.Matches {
		m.Team1 = relink(m.Team1)
		m.Team2 = relink(m.Team2)
		m.Winner = relink(m.Winner)
		m.Loser = relink(m.Loser)
	}
	for i := range b.Standings {
		b.Standings[i].Team = relink(b.Standings[i].Team)
	}
	for i := range b.Pools {
		p := &b.Pools[i]
		for j := range p.Teams {
			p.Teams[j] = relink(p.Teams[j])
		}
		for j := range p.Standings {
			p.Standings[j].Team = relink(p.Standings[j].Team)
		}
	}
}

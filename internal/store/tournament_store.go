package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/tournament"
	"github.com/jmoiron/sqlx"
)

// TournamentStore reads and writes tournaments and their events. Write methods
// take the executor to run on so a service can choose between a transaction and
// discrete statements on the pool.
type TournamentStore struct {
	db *sqlx.DB
}

const (
	createTournamentQuery = `
		INSERT INTO tournaments (id, name, is_boys, is_girls, status, created_at, updated_at)
		VALUES (:id, :name, :is_boys, :is_girls, :status, :created_at, :updated_at)
	`
	updateTournamentQuery = `
		UPDATE tournaments SET
		name = :name,
		is_boys = :is_boys,
		is_girls = :is_girls,
		status = :status,
		updated_at = :updated_at
		WHERE id = :id
	`
	deleteTournamentQuery = "DELETE FROM tournaments WHERE id = ?"
	getTournamentQuery    = "SELECT * FROM tournaments WHERE id = ?"
	listTournamentsQuery  = `
		SELECT t.*, (SELECT COUNT(*) FROM events e WHERE e.tournament_id = t.id) AS event_count
		FROM tournaments t
		ORDER BY t.created_at DESC
	`

	createEventsQuery = `
		INSERT INTO events (id, tournament_id, event_number, name, entry_type, match_format, matches_per_event,
			max_participants, scheduled_date, entry_start, entry_end, checkin_start, checkin_end, rules, status,
			created_at, updated_at)
		VALUES (:id, :tournament_id, :event_number, :name, :entry_type, :match_format, :matches_per_event,
			:max_participants, :scheduled_date, :entry_start, :entry_end, :checkin_start, :checkin_end, :rules, :status,
			:created_at, :updated_at)
	`
	// event_number and status are never rewritten by an edit.
	updateEventQuery = `
		UPDATE events SET
		name = :name,
		entry_type = :entry_type,
		match_format = :match_format,
		matches_per_event = :matches_per_event,
		max_participants = :max_participants,
		scheduled_date = :scheduled_date,
		entry_start = :entry_start,
		entry_end = :entry_end,
		checkin_start = :checkin_start,
		checkin_end = :checkin_end,
		rules = :rules,
		updated_at = :updated_at
		WHERE id = :id AND tournament_id = :tournament_id
	`
	deleteEventsQuery = "DELETE FROM events WHERE tournament_id = ? AND id IN (?)"
	getEventRefsQuery = "SELECT id, event_number FROM events WHERE tournament_id = ? ORDER BY event_number ASC"
	getEventsQuery    = "SELECT * FROM events WHERE tournament_id = ? ORDER BY event_number ASC"
)

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

func (s *TournamentStore) CreateTournament(ctx context.Context, ext sqlx.ExtContext, t *tournament.Tournament) error {
	_, err := sqlx.NamedExecContext(ctx, ext, createTournamentQuery, t)
	return err
}

func (s *TournamentStore) UpdateTournament(ctx context.Context, ext sqlx.ExtContext, t *tournament.Tournament) error {
	_, err := sqlx.NamedExecContext(ctx, ext, updateTournamentQuery, t)
	return err
}

func (s *TournamentStore) DeleteTournament(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) error {
	_, err := ext.ExecContext(ctx, ext.Rebind(deleteTournamentQuery), id)
	return err
}

func (s *TournamentStore) GetTournament(ctx context.Context, id uuid.UUID) (*tournament.Tournament, error) {
	return s.GetTournamentTx(ctx, s.db, id)
}

func (s *TournamentStore) GetTournamentTx(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID) (*tournament.Tournament, error) {
	var t tournament.Tournament
	if err := sqlx.GetContext(ctx, ext, &t, ext.Rebind(getTournamentQuery), id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TournamentStore) ListTournaments(ctx context.Context) ([]tournament.Summary, error) {
	summaries := make([]tournament.Summary, 0)
	err := s.db.SelectContext(ctx, &summaries, listTournamentsQuery)
	return summaries, err
}

// CreateEvents inserts the batch in a single statement.
func (s *TournamentStore) CreateEvents(ctx context.Context, ext sqlx.ExtContext, events []tournament.Event) error {
	if len(events) == 0 {
		return nil
	}
	_, err := sqlx.NamedExecContext(ctx, ext, createEventsQuery, events)
	return err
}

func (s *TournamentStore) UpdateEvent(ctx context.Context, ext sqlx.ExtContext, ev *tournament.Event) error {
	_, err := sqlx.NamedExecContext(ctx, ext, updateEventQuery, ev)
	return err
}

func (s *TournamentStore) DeleteEvents(ctx context.Context, ext sqlx.ExtContext, tournamentID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(deleteEventsQuery, tournamentID, ids)
	if err != nil {
		return err
	}
	_, err = ext.ExecContext(ctx, ext.Rebind(query), args...)
	return err
}

func (s *TournamentStore) GetEventRefs(ctx context.Context, ext sqlx.ExtContext, tournamentID uuid.UUID) ([]tournament.EventRef, error) {
	var refs []tournament.EventRef
	err := sqlx.SelectContext(ctx, ext, &refs, ext.Rebind(getEventRefsQuery), tournamentID)
	return refs, err
}

func (s *TournamentStore) GetEvents(ctx context.Context, tournamentID uuid.UUID) ([]tournament.Event, error) {
	var events []tournament.Event
	err := s.db.SelectContext(ctx, &events, s.db.Rebind(getEventsQuery), tournamentID)
	return events, err
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/metrics"
	"github.com/jirorimi/cup-registration/internal/store"
	"github.com/jirorimi/cup-registration/internal/tournament"
	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/jmoiron/sqlx"
)

const (
	opCreate = "create"
	opUpdate = "update"
)

type TournamentService struct {
	db       *sqlx.DB
	store    *store.TournamentStore
	discrete bool
	metrics  *metrics.Recorder
	now      func() time.Time
}

type Option func(*TournamentService)

// WithDiscreteWrites runs every statement on the pool instead of one transaction.
// A failed event batch at creation is then undone by deleting the tournament row,
// and a failed update leaves whatever statements already succeeded.
func WithDiscreteWrites() Option {
	return func(s *TournamentService) { s.discrete = true }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(s *TournamentService) { s.metrics = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *TournamentService) { s.now = now }
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, opts ...Option) *TournamentService {
	s := &TournamentService{db: db, store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TournamentDetail is a tournament with its events in edit-form shape.
type TournamentDetail struct {
	Tournament *tournament.Tournament  `json:"tournament"`
	Events     []tournament.EventInput `json:"events"`
}

func authorize(caller users.Caller) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	if !caller.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// CreateTournament stores a draft tournament with its events numbered 1..N in
// submission order.
func (s *TournamentService) CreateTournament(ctx context.Context, caller users.Caller, in *tournament.CreateInput) (uuid.UUID, error) {
	id, err := s.createTournament(ctx, caller, in)
	s.metrics.Mutation(opCreate, outcomeOf(err))
	return id, err
}

func (s *TournamentService) createTournament(ctx context.Context, caller users.Caller, in *tournament.CreateInput) (uuid.UUID, error) {
	if err := authorize(caller); err != nil {
		return uuid.Nil, err
	}

	now := s.now().UTC()
	t := &tournament.Tournament{
		ID:        uuid.New(),
		Name:      in.Name,
		IsBoys:    in.IsBoys,
		IsGirls:   in.IsGirls,
		Status:    tournament.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	events := make([]tournament.Event, 0, len(in.Events))
	for i, eventIn := range in.Events {
		ev, err := newEvent(eventIn, t.ID, i+1, now)
		if err != nil {
			return uuid.Nil, err
		}
		events = append(events, ev)
	}

	var err error
	if s.discrete {
		err = s.createDiscrete(ctx, t, events)
	} else {
		err = s.createAtomic(ctx, t, events)
	}
	if err != nil {
		return uuid.Nil, err
	}

	s.metrics.EventChanges(0, 0, len(events))
	slog.Info("tournament created", "tournament_id", t.ID, "events", len(events), "by", caller.ID)
	return t.ID, nil
}

func (s *TournamentService) createAtomic(ctx context.Context, t *tournament.Tournament, events []tournament.Event) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.CreateTournament(ctx, tx, t); err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	if err := s.store.CreateEvents(ctx, tx, events); err != nil {
		return fmt.Errorf("failed to create events: %w", err)
	}

	return tx.Commit()
}

func (s *TournamentService) createDiscrete(ctx context.Context, t *tournament.Tournament, events []tournament.Event) error {
	if err := s.store.CreateTournament(ctx, s.db, t); err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	if err := s.store.CreateEvents(ctx, s.db, events); err != nil {
		s.compensate(ctx, t.ID)
		return fmt.Errorf("failed to create events: %w", err)
	}
	return nil
}

// compensate removes a tournament whose events could not be stored. It runs even
// when the request was cancelled, and its own failure is only logged.
func (s *TournamentService) compensate(ctx context.Context, id uuid.UUID) {
	err := s.store.DeleteTournament(context.WithoutCancel(ctx), s.db, id)
	s.metrics.Compensation(err)
	if err != nil {
		slog.Error("compensation delete failed, tournament left without events", "tournament_id", id, "error", err)
		return
	}
	slog.Warn("tournament removed after event insert failure", "tournament_id", id)
}

// UpdateTournament rewrites the tournament row and reconciles its events against
// the submitted list. Reconciliation runs before the first write, so a foreign or
// repeated event id leaves the tournament untouched.
func (s *TournamentService) UpdateTournament(ctx context.Context, caller users.Caller, id uuid.UUID, in *tournament.UpdateInput) error {
	err := s.updateTournament(ctx, caller, id, in)
	s.metrics.Mutation(opUpdate, outcomeOf(err))
	return err
}

func (s *TournamentService) updateTournament(ctx context.Context, caller users.Caller, id uuid.UUID, in *tournament.UpdateInput) error {
	if err := authorize(caller); err != nil {
		return err
	}

	var changes eventChanges
	if s.discrete {
		c, err := s.applyUpdate(ctx, s.db, id, in)
		if err != nil {
			return err
		}
		changes = c
	} else {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		c, err := s.applyUpdate(ctx, tx, id, in)
		if err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit update: %w", err)
		}
		changes = c
	}

	s.metrics.EventChanges(changes.deleted, changes.updated, changes.inserted)
	slog.Info("tournament updated", "tournament_id", id, "by", caller.ID,
		"deleted", changes.deleted, "updated", changes.updated, "inserted", changes.inserted)
	return nil
}

type eventChanges struct {
	deleted, updated, inserted int
}

func (s *TournamentService) applyUpdate(ctx context.Context, ext sqlx.ExtContext, id uuid.UUID, in *tournament.UpdateInput) (eventChanges, error) {
	var none eventChanges

	t, err := s.store.GetTournamentTx(ctx, ext, id)
	if errors.Is(err, sql.ErrNoRows) {
		return none, ErrTournamentNotFound
	}
	if err != nil {
		return none, fmt.Errorf("failed to get tournament: %w", err)
	}

	refs, err := s.store.GetEventRefs(ctx, ext, id)
	if err != nil {
		return none, fmt.Errorf("failed to get events: %w", err)
	}

	plan, err := tournament.Reconcile(refs, in.Events)
	if err != nil {
		return none, err
	}

	now := s.now().UTC()
	updates := make([]tournament.Event, 0, len(plan.Updates))
	for _, u := range plan.Updates {
		ev, err := u.Input.ToEvent(id, u.EventNumber, now)
		if err != nil {
			return none, err
		}
		ev.ID = u.ID
		updates = append(updates, ev)
	}
	inserts := make([]tournament.Event, 0, len(plan.Inserts))
	for _, ins := range plan.Inserts {
		ev, err := newEvent(ins.Input, id, ins.EventNumber, now)
		if err != nil {
			return none, err
		}
		inserts = append(inserts, ev)
	}

	t.Name = in.Name
	t.IsBoys = in.IsBoys
	t.IsGirls = in.IsGirls
	t.Status = in.Status
	t.UpdatedAt = now
	if err := s.store.UpdateTournament(ctx, ext, t); err != nil {
		return none, fmt.Errorf("failed to update tournament: %w", err)
	}

	if err := s.store.DeleteEvents(ctx, ext, id, plan.DeleteIDs()); err != nil {
		return none, fmt.Errorf("failed to delete events: %w", err)
	}
	for i := range updates {
		if err := s.store.UpdateEvent(ctx, ext, &updates[i]); err != nil {
			return none, fmt.Errorf("failed to update event %d: %w", updates[i].EventNumber, err)
		}
	}
	if err := s.store.CreateEvents(ctx, ext, inserts); err != nil {
		return none, fmt.Errorf("failed to create events: %w", err)
	}

	return eventChanges{deleted: len(plan.Deletes), updated: len(updates), inserted: len(inserts)}, nil
}

// ListTournaments returns every tournament, newest first. Drafts are only listed
// for administrators.
func (s *TournamentService) ListTournaments(ctx context.Context, caller users.Caller) ([]tournament.Summary, error) {
	list, err := s.store.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return list, nil
	}

	visible := make([]tournament.Summary, 0, len(list))
	for _, t := range list {
		if t.Status != tournament.StatusDraft {
			visible = append(visible, t)
		}
	}
	return visible, nil
}

// GetTournament loads a tournament with its events. A draft looks missing to
// anyone but an administrator.
func (s *TournamentService) GetTournament(ctx context.Context, caller users.Caller, id uuid.UUID) (*TournamentDetail, error) {
	t, err := s.store.GetTournament(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTournamentNotFound
	}
	if err != nil {
		return nil, err
	}
	if t.Status == tournament.StatusDraft && !caller.IsAdmin() {
		return nil, ErrTournamentNotFound
	}

	events, err := s.store.GetEvents(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &TournamentDetail{Tournament: t, Events: make([]tournament.EventInput, 0, len(events))}
	for _, ev := range events {
		detail.Events = append(detail.Events, ev.Input())
	}
	return detail, nil
}

func newEvent(in tournament.EventInput, tournamentID uuid.UUID, number int, now time.Time) (tournament.Event, error) {
	ev, err := in.ToEvent(tournamentID, number, now)
	if err != nil {
		return tournament.Event{}, err
	}
	ev.ID = uuid.New()
	ev.Status = tournament.EventScheduled
	return ev, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrForbidden):
		return metrics.OutcomeDenied
	case errors.Is(err, ErrTournamentNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, tournament.ErrForeignEventID), errors.Is(err, tournament.ErrDuplicateEventID):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeFailed
	}
}

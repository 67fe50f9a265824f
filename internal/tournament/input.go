package tournament

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/jst"
	"github.com/jirorimi/cup-registration/internal/utils"
)

// EventInput is one validated event row from a create or update request. The
// window fields hold local "YYYY-MM-DDTHH:MM" strings in Japan time.
type EventInput struct {
	ID              *uuid.UUID  `json:"id,omitempty"`
	Name            string      `json:"name"`
	EntryType       EntryType   `json:"entry_type"`
	MatchFormat     MatchFormat `json:"match_format"`
	MatchesPerEvent int         `json:"matches_per_event"`
	MaxParticipants *int        `json:"max_participants"`
	ScheduledDate   string      `json:"scheduled_date"`
	EntryStart      string      `json:"entry_start"`
	EntryEnd        string      `json:"entry_end"`
	CheckinStart    string      `json:"checkin_start"`
	CheckinEnd      string      `json:"checkin_end"`
	Rules           *string     `json:"rules,omitempty"`
}

type CreateInput struct {
	Name    string       `json:"name"`
	IsBoys  bool         `json:"is_boys"`
	IsGirls bool         `json:"is_girls"`
	Events  []EventInput `json:"events"`
}

type UpdateInput struct {
	CreateInput
	Status Status `json:"status"`
}

// ToEvent maps the input onto an event row of the given tournament. The row keeps
// a zero ID and status; callers decide whether it is an insert or an update.
func (in EventInput) ToEvent(tournamentID uuid.UUID, number int, now time.Time) (Event, error) {
	windows := [4]time.Time{}
	for i, local := range [4]string{in.EntryStart, in.EntryEnd, in.CheckinStart, in.CheckinEnd} {
		t, err := jst.ParseLocal(local)
		if err != nil {
			return Event{}, fmt.Errorf("event %q: %w", in.Name, err)
		}
		windows[i] = t
	}

	var matches *int
	if in.MatchFormat.UsesMatchCount() {
		matches = utils.Ptr(in.MatchesPerEvent)
	}

	return Event{
		TournamentID:    tournamentID,
		EventNumber:     number,
		Name:            in.Name,
		EntryType:       in.EntryType,
		MatchFormat:     in.MatchFormat,
		MatchesPerEvent: matches,
		MaxParticipants: in.MaxParticipants,
		ScheduledDate:   in.ScheduledDate,
		EntryStart:      windows[0],
		EntryEnd:        windows[1],
		CheckinStart:    windows[2],
		CheckinEnd:      windows[3],
		Rules:           utils.NilIfEmpty(in.Rules),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Input turns a persisted event back into the form shape, so a GET response can be
// edited and sent back as an update request.
func (e Event) Input() EventInput {
	id := e.ID
	matches := 0
	if e.MatchesPerEvent != nil {
		matches = *e.MatchesPerEvent
	}
	return EventInput{
		ID:              &id,
		Name:            e.Name,
		EntryType:       e.EntryType,
		MatchFormat:     e.MatchFormat,
		MatchesPerEvent: matches,
		MaxParticipants: e.MaxParticipants,
		ScheduledDate:   e.ScheduledDate,
		EntryStart:      jst.FormatLocal(e.EntryStart),
		EntryEnd:        jst.FormatLocal(e.EntryEnd),
		CheckinStart:    jst.FormatLocal(e.CheckinStart),
		CheckinEnd:      jst.FormatLocal(e.CheckinEnd),
		Rules:           e.Rules,
	}
}

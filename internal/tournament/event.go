package tournament

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

// Event statuses are set by administrators only; nothing advances them on a timer.
const (
	EventScheduled             EventStatus = "scheduled"
	EventEntryOpen             EventStatus = "entry_open"
	EventEntryClosed           EventStatus = "entry_closed"
	EventCheckinOpen           EventStatus = "checkin_open"
	EventParticipantsConfirmed EventStatus = "participants_confirmed"
	EventInProgress            EventStatus = "in_progress"
	EventCompleted             EventStatus = "completed"
)

type EntryType string

const (
	EntryOpen   EntryType = "open"
	EntryInvite EntryType = "invite"
)

var EntryTypes = []EntryType{EntryOpen, EntryInvite}

type MatchFormat string

const (
	FormatSwiss             MatchFormat = "swiss"
	FormatDoubleElimination MatchFormat = "double_elimination"
	FormatSingleElimination MatchFormat = "single_elimination"
	FormatRoundRobin        MatchFormat = "round_robin"
)

var MatchFormats = []MatchFormat{FormatSwiss, FormatDoubleElimination, FormatSingleElimination, FormatRoundRobin}

// UsesMatchCount reports whether matches_per_event means anything for the format.
// Double elimination runs until a bracket finishes.
func (f MatchFormat) UsesMatchCount() bool {
	return f != FormatDoubleElimination
}

type Event struct {
	ID              uuid.UUID   `db:"id"`
	TournamentID    uuid.UUID   `db:"tournament_id"`
	EventNumber     int         `db:"event_number"`
	Name            string      `db:"name"`
	EntryType       EntryType   `db:"entry_type"`
	MatchFormat     MatchFormat `db:"match_format"`
	MatchesPerEvent *int        `db:"matches_per_event"`
	MaxParticipants *int        `db:"max_participants"`
	ScheduledDate   string      `db:"scheduled_date"`
	EntryStart      time.Time   `db:"entry_start"`
	EntryEnd        time.Time   `db:"entry_end"`
	CheckinStart    time.Time   `db:"checkin_start"`
	CheckinEnd      time.Time   `db:"checkin_end"`
	Rules           *string     `db:"rules"`
	Status          EventStatus `db:"status"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

// EventRef is the slice of a persisted event that reconciliation needs.
type EventRef struct {
	ID          uuid.UUID `db:"id"`
	EventNumber int       `db:"event_number"`
}

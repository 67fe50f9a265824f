package tournament

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

var Statuses = []Status{StatusDraft, StatusOpen, StatusInProgress, StatusCompleted}

type Category string

const (
	CategoryBoys  Category = "boys"
	CategoryGirls Category = "girls"
	CategoryBoth  Category = "both"
)

type Tournament struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	IsBoys          bool      `db:"is_boys" json:"is_boys"`
	IsGirls         bool      `db:"is_girls" json:"is_girls"`
	MatchesPerEvent int       `db:"matches_per_event" json:"matches_per_event"`
	GFAdvanceCount  int       `db:"gf_advance_count" json:"gf_advance_count"`
	MaxParticipants *int      `db:"max_participants" json:"max_participants"`
	Rules           *string   `db:"rules" json:"rules"`
	Status          Status    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Category derives the display category from the flag pair. A tournament with
// neither flag set is shown as a girls cup.
func (t *Tournament) Category() Category {
	switch {
	case t.IsBoys && t.IsGirls:
		return CategoryBoth
	case t.IsBoys:
		return CategoryBoys
	default:
		return CategoryGirls
	}
}

// Summary is a list row: the tournament plus how many events it carries.
type Summary struct {
	Tournament
	EventCount int `db:"event_count" json:"event_count"`
}

package views

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/middleware"
	"github.com/jirorimi/cup-registration/internal/tournament"
	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/jirorimi/cup-registration/internal/utils"
	"github.com/jirorimi/cup-registration/internal/validate"
)

func GetUser(ctx context.Context) *users.User {
	return middleware.GetAuthenticatedUser(ctx)
}

type option struct {
	value, label string
}

func fieldMessages(errs validate.Errors, name string) []string {
	var msgs []string
	for _, fe := range errs {
		if fe.Path == name {
			msgs = append(msgs, fe.Message)
		}
	}
	return msgs
}

// MyPageData is what the profile form is rendered from.
type MyPageData struct {
	User   *users.User
	Input  users.ProfileInput
	Errors validate.Errors
	Saved  bool
}

// ProfileFormFrom pre-fills the form with the stored profile.
func ProfileFormFrom(u *users.User) users.ProfileInput {
	xid := utils.OrZero(u.XID)
	if xid == users.PendingXID {
		xid = ""
	}
	return users.ProfileInput{
		PlayerName: utils.OrZero(u.PlayerName),
		XID:        xid,
		Gender:     utils.OrZero(u.Gender),
		FirstRole:  utils.OrZero(u.FirstRole),
		SecondRole: utils.OrZero(u.SecondRole),
		ThirdRole:  utils.OrZero(u.ThirdRole),
	}
}

func genderOptions() []option {
	opts := make([]option, 0, len(users.Genders))
	for _, g := range users.Genders {
		opts = append(opts, option{string(g), GenderLabel(g)})
	}
	return opts
}

func roleOptions() []option {
	opts := make([]option, 0, len(users.PlayerRoles))
	for _, r := range users.PlayerRoles {
		opts = append(opts, option{string(r), PlayerRoleLabel(r)})
	}
	return opts
}

// TournamentFormData backs the admin create and edit form. ID is nil for a new
// tournament.
type TournamentFormData struct {
	ID      *uuid.UUID
	Name    string
	IsBoys  bool
	IsGirls bool
	Status  tournament.Status
	Events  []tournament.EventInput
}

func (d TournamentFormData) title() string {
	if d.ID == nil {
		return "New tournament"
	}
	return "Edit tournament"
}

func (d TournamentFormData) method() string {
	if d.ID == nil {
		return "POST"
	}
	return "PUT"
}

func (d TournamentFormData) action() string {
	if d.ID == nil {
		return "/api/tournaments"
	}
	return "/api/tournaments/" + d.ID.String()
}

func blankEvent() tournament.EventInput {
	return tournament.EventInput{
		EntryType:       tournament.EntryOpen,
		MatchFormat:     tournament.FormatSwiss,
		MatchesPerEvent: 3,
	}
}

// NewTournamentForm is an empty form with a single event row.
func NewTournamentForm() TournamentFormData {
	return TournamentFormData{
		IsBoys:  true,
		IsGirls: true,
		Status:  tournament.StatusDraft,
		Events:  []tournament.EventInput{blankEvent()},
	}
}

func TournamentFormFrom(t *tournament.Tournament, events []tournament.EventInput) TournamentFormData {
	id := t.ID
	return TournamentFormData{
		ID:      &id,
		Name:    t.Name,
		IsBoys:  t.IsBoys,
		IsGirls: t.IsGirls,
		Status:  t.Status,
		Events:  events,
	}
}

func eventIDAttr(ev tournament.EventInput) string {
	if ev.ID == nil {
		return ""
	}
	return ev.ID.String()
}

// maxParticipantsValue is empty when the event has no cap.
func maxParticipantsValue(ev tournament.EventInput) string {
	if ev.MaxParticipants == nil {
		return ""
	}
	return strconv.Itoa(*ev.MaxParticipants)
}

func entryTypeOptions() []option {
	return []option{
		{string(tournament.EntryOpen), "Open entry"},
		{string(tournament.EntryInvite), "Invite only"},
	}
}

var matchFormatLabels = map[tournament.MatchFormat]string{
	tournament.FormatSwiss:             "Swiss",
	tournament.FormatDoubleElimination: "Double elimination",
	tournament.FormatSingleElimination: "Single elimination",
	tournament.FormatRoundRobin:        "Round robin",
}

func matchFormatOptions() []option {
	opts := make([]option, 0, len(tournament.MatchFormats))
	for _, f := range tournament.MatchFormats {
		opts = append(opts, option{string(f), matchFormatLabels[f]})
	}
	return opts
}

func statusOptions() []option {
	opts := make([]option, 0, len(tournament.Statuses))
	for _, s := range tournament.Statuses {
		opts = append(opts, option{string(s), StatusLabel(s)})
	}
	return opts
}

func eventRules(ev tournament.EventInput) string {
	return utils.OrZero(ev.Rules)
}

package users

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const UserKey ContextKey = "user"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type Gender string

const (
	GenderBoys  Gender = "boys"
	GenderGirls Gender = "girls"
)

var Genders = []Gender{GenderBoys, GenderGirls}

// PlayerRole is an in-game lane preference, not an access role.
type PlayerRole string

const (
	TopCarry PlayerRole = "top_carry"
	BotCarry PlayerRole = "bot_carry"
	Mid      PlayerRole = "mid"
	Tank     PlayerRole = "tank"
	Support  PlayerRole = "support"
)

var PlayerRoles = []PlayerRole{TopCarry, BotCarry, Mid, Tank, Support}

// PendingXID is the placeholder handle some imported profiles carry.
const PendingXID = "PENDING"

type User struct {
	ID         uuid.UUID   `db:"id"`
	Email      string      `db:"email"`
	Username   string      `db:"username"`
	Provider   *string     `db:"provider"`
	ProviderID *string     `db:"provider_id"`
	AvatarURL  *string     `db:"avatar_url"`
	PlayerName *string     `db:"player_name"`
	XID        *string     `db:"x_id"`
	Gender     *Gender     `db:"gender"`
	FirstRole  *PlayerRole `db:"first_role"`
	SecondRole *PlayerRole `db:"second_role"`
	ThirdRole  *PlayerRole `db:"third_role"`
	Role       Role        `db:"role"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName prefers the player name and falls back to the Discord name.
func (u *User) DisplayName() string {
	if u.PlayerName != nil && strings.TrimSpace(*u.PlayerName) != "" {
		return *u.PlayerName
	}
	if u.Username != "" {
		return u.Username
	}
	return "(no name)"
}

// IsProfileComplete reports whether the player filled in everything needed to
// enter a tournament.
func IsProfileComplete(u *User) bool {
	if u == nil {
		return false
	}
	if u.PlayerName == nil || strings.TrimSpace(*u.PlayerName) == "" {
		return false
	}
	if u.XID == nil || *u.XID == PendingXID || strings.TrimSpace(*u.XID) == "" {
		return false
	}
	if u.Gender == nil {
		return false
	}
	if u.FirstRole == nil || u.SecondRole == nil || u.ThirdRole == nil {
		return false
	}
	return *u.FirstRole != *u.SecondRole && *u.FirstRole != *u.ThirdRole && *u.SecondRole != *u.ThirdRole
}

// Caller is who is asking for a mutation. It is derived from the session on every
// request and handed to services explicitly.
type Caller struct {
	ID   uuid.UUID
	Role Role
}

func CallerOf(u *User) Caller {
	if u == nil {
		return Caller{}
	}
	return Caller{ID: u.ID, Role: u.Role}
}

func (c Caller) Authenticated() bool {
	return c.ID != uuid.Nil
}

func (c Caller) IsAdmin() bool {
	return c.Authenticated() && c.Role == RoleAdmin
}

// ProfileInput is a validated profile form.
type ProfileInput struct {
	PlayerName string     `json:"player_name"`
	XID        string     `json:"x_id"`
	Gender     Gender     `json:"gender"`
	FirstRole  PlayerRole `json:"first_role"`
	SecondRole PlayerRole `json:"second_role"`
	ThirdRole  PlayerRole `json:"third_role"`
}

package users

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func completeUser() *User {
	name, xid := "Jiro", "jiro_cup"
	gender := GenderBoys
	first, second, third := TopCarry, Mid, Support
	return &User{
		ID:         uuid.New(),
		PlayerName: &name,
		XID:        &xid,
		Gender:     &gender,
		FirstRole:  &first,
		SecondRole: &second,
		ThirdRole:  &third,
		Role:       RoleUser,
	}
}

func TestIsProfileComplete(t *testing.T) {
	assert.False(t, IsProfileComplete(nil))
	assert.True(t, IsProfileComplete(completeUser()))

	u := completeUser()
	blank := "   "
	u.PlayerName = &blank
	assert.False(t, IsProfileComplete(u))

	u = completeUser()
	pending := PendingXID
	u.XID = &pending
	assert.False(t, IsProfileComplete(u))

	u = completeUser()
	u.Gender = nil
	assert.False(t, IsProfileComplete(u))

	u = completeUser()
	dup := *u.FirstRole
	u.ThirdRole = &dup
	assert.False(t, IsProfileComplete(u))
}

func TestCaller(t *testing.T) {
	assert.False(t, CallerOf(nil).Authenticated())

	u := completeUser()
	assert.True(t, CallerOf(u).Authenticated())
	assert.False(t, CallerOf(u).IsAdmin())

	u.Role = RoleAdmin
	assert.True(t, CallerOf(u).IsAdmin())
	assert.False(t, Caller{Role: RoleAdmin}.IsAdmin(), "a role without an identity is not a caller")
}

func TestDisplayName(t *testing.T) {
	u := &User{Username: "discord#1"}
	assert.Equal(t, "discord#1", u.DisplayName())
	name := "Rimi"
	u.PlayerName = &name
	assert.Equal(t, "Rimi", u.DisplayName())
}

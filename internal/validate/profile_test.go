package validate

import (
	"strings"
	"testing"

	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() users.ProfileInput {
	return users.ProfileInput{
		PlayerName: "  Rimi  ",
		XID:        "rimi_cup",
		Gender:     users.GenderGirls,
		FirstRole:  users.Support,
		SecondRole: users.Tank,
		ThirdRole:  users.Mid,
	}
}

func TestProfile_Valid(t *testing.T) {
	out, err := Profile(validProfile())
	require.NoError(t, err)
	assert.Equal(t, "Rimi", out.PlayerName)
}

func TestProfile_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*users.ProfileInput)
		path   string
	}{
		{"blank name", func(p *users.ProfileInput) { p.PlayerName = "   " }, "player_name"},
		{"long name", func(p *users.ProfileInput) { p.PlayerName = strings.Repeat("a", 51) }, "player_name"},
		{"long x id", func(p *users.ProfileInput) { p.XID = strings.Repeat("a", 16) }, "x_id"},
		{"x id symbols", func(p *users.ProfileInput) { p.XID = "rimi-cup" }, "x_id"},
		{"pending x id", func(p *users.ProfileInput) { p.XID = "Pending" }, "x_id"},
		{"gender", func(p *users.ProfileInput) { p.Gender = "other" }, "gender"},
		{"unknown role", func(p *users.ProfileInput) { p.FirstRole = "jungle" }, "first_role"},
		{"second equals first", func(p *users.ProfileInput) { p.SecondRole = p.FirstRole }, "second_role"},
		{"third equals second", func(p *users.ProfileInput) { p.ThirdRole = p.SecondRole }, "third_role"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validProfile()
			tc.mutate(&in)
			_, err := Profile(in)
			require.Error(t, err)
			errs, ok := err.(Errors)
			require.True(t, ok)
			assert.True(t, errs.Has(tc.path), "%v", errs)
		})
	}
}

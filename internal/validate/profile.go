package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	users "github.com/jirorimi/cup-registration/internal/user"
)

const (
	maxPlayerNameLength = 50
	maxXIDLength        = 15
)

var xIDPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Profile trims and checks a submitted player profile.
func Profile(in users.ProfileInput) (*users.ProfileInput, error) {
	c := &checker{}
	out := users.ProfileInput{
		PlayerName: strings.TrimSpace(in.PlayerName),
		XID:        strings.TrimSpace(in.XID),
		Gender:     in.Gender,
		FirstRole:  in.FirstRole,
		SecondRole: in.SecondRole,
		ThirdRole:  in.ThirdRole,
	}

	switch n := utf8.RuneCountInString(out.PlayerName); {
	case n == 0:
		c.add("player_name", "player name is required")
	case n > maxPlayerNameLength:
		c.add("player_name", fmt.Sprintf("player name must be at most %d characters", maxPlayerNameLength))
	}

	switch {
	case out.XID == "":
		c.add("x_id", "X ID is required")
	case len(out.XID) > maxXIDLength:
		c.add("x_id", fmt.Sprintf("X ID must be at most %d characters", maxXIDLength))
	case !xIDPattern.MatchString(out.XID):
		c.add("x_id", "X ID may only contain letters, digits and underscores")
	case strings.EqualFold(out.XID, users.PendingXID):
		c.add("x_id", "enter a real X ID")
	}

	if !slices.Contains(users.Genders, out.Gender) {
		c.add("gender", "select a gender category")
	}

	roles := []struct {
		path string
		role users.PlayerRole
	}{
		{"first_role", out.FirstRole},
		{"second_role", out.SecondRole},
		{"third_role", out.ThirdRole},
	}
	valid := true
	for _, r := range roles {
		if !slices.Contains(users.PlayerRoles, r.role) {
			c.add(r.path, "select a role")
			valid = false
		}
	}
	if valid {
		if out.FirstRole == out.SecondRole {
			c.add("second_role", "second choice must differ from the first")
		}
		if out.FirstRole == out.ThirdRole {
			c.add("third_role", "third choice must differ from the first")
		}
		if out.SecondRole == out.ThirdRole {
			c.add("third_role", "third choice must differ from the second")
		}
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return &out, nil
}

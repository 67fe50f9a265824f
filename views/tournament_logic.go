package views

import (
	"time"

	"github.com/jirorimi/cup-registration/internal/jst"
	"github.com/jirorimi/cup-registration/internal/tournament"
	users "github.com/jirorimi/cup-registration/internal/user"
)

var statusLabels = map[tournament.Status]string{
	tournament.StatusDraft:      "Draft",
	tournament.StatusOpen:       "Open",
	tournament.StatusInProgress: "In progress",
	tournament.StatusCompleted:  "Completed",
}

func StatusLabel(s tournament.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

var categoryLabels = map[tournament.Category]string{
	tournament.CategoryBoys:  "Boys",
	tournament.CategoryGirls: "Girls",
	tournament.CategoryBoth:  "Boys & Girls",
}

func CategoryLabel(c tournament.Category) string {
	return categoryLabels[c]
}

var genderLabels = map[users.Gender]string{
	users.GenderBoys:  "Boys",
	users.GenderGirls: "Girls",
}

func GenderLabel(g users.Gender) string {
	if label, ok := genderLabels[g]; ok {
		return label
	}
	return string(g)
}

var playerRoleLabels = map[users.PlayerRole]string{
	users.TopCarry: "Top carry",
	users.BotCarry: "Bottom carry",
	users.Mid:      "Mid",
	users.Tank:     "Tank",
	users.Support:  "Support",
}

func PlayerRoleLabel(r users.PlayerRole) string {
	if label, ok := playerRoleLabels[r]; ok {
		return label
	}
	return string(r)
}

// FormatDateTime renders an instant as Japan wall-clock time, e.g. "2025/04/05 19:30".
func FormatDateTime(t time.Time) string {
	return t.In(jst.Zone).Format("2006/01/02 15:04")
}

package tournament

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/jst"
	"github.com/jirorimi/cup-registration/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() EventInput {
	return EventInput{
		Name:            "Qualifier 1",
		EntryType:       EntryOpen,
		MatchFormat:     FormatSwiss,
		MatchesPerEvent: 5,
		ScheduledDate:   "2025-05-10",
		EntryStart:      "2025-04-01T10:00",
		EntryEnd:        "2025-04-30T23:59",
		CheckinStart:    "2025-05-10T12:00",
		CheckinEnd:      "2025-05-10T12:30",
		Rules:           utils.Ptr("  "),
	}
}

func TestToEvent(t *testing.T) {
	tournamentID := uuid.New()
	now := time.Now().UTC()

	ev, err := sampleInput().ToEvent(tournamentID, 3, now)
	require.NoError(t, err)

	assert.Equal(t, tournamentID, ev.TournamentID)
	assert.Equal(t, 3, ev.EventNumber)
	require.NotNil(t, ev.MatchesPerEvent)
	assert.Equal(t, 5, *ev.MatchesPerEvent)
	assert.Nil(t, ev.MaxParticipants)
	assert.Nil(t, ev.Rules, "blank rules are stored as null")
	assert.Equal(t, "2025-04-01T10:00", jst.FormatLocal(ev.EntryStart))
	assert.True(t, ev.EntryStart.Equal(time.Date(2025, 4, 1, 1, 0, 0, 0, time.UTC)))
}

func TestToEvent_DoubleEliminationDropsMatchCount(t *testing.T) {
	in := sampleInput()
	in.MatchFormat = FormatDoubleElimination

	ev, err := in.ToEvent(uuid.New(), 1, time.Now())
	require.NoError(t, err)
	assert.Nil(t, ev.MatchesPerEvent)
}

func TestEventInputRoundTrip(t *testing.T) {
	in := sampleInput()
	in.Rules = utils.Ptr("Bo3 until top 8")
	in.MaxParticipants = utils.Ptr(64)

	ev, err := in.ToEvent(uuid.New(), 1, time.Now())
	require.NoError(t, err)
	ev.ID = uuid.New()

	back := ev.Input()
	require.NotNil(t, back.ID)
	assert.Equal(t, ev.ID, *back.ID)
	back.ID = nil
	assert.Equal(t, in, back)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, CategoryBoth, (&Tournament{IsBoys: true, IsGirls: true}).Category())
	assert.Equal(t, CategoryBoys, (&Tournament{IsBoys: true}).Category())
	assert.Equal(t, CategoryGirls, (&Tournament{IsGirls: true}).Category())
}

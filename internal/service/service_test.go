package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/db"
	"github.com/jirorimi/cup-registration/internal/tournament"
	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var (
	adminCaller  = users.Caller{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Role: users.RoleAdmin}
	playerCaller = users.Caller{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Role: users.RoleUser}
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Open(db.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	// Every connection to file::memory: gets its own database.
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database))
	return database
}

func eventInput(name string) tournament.EventInput {
	return tournament.EventInput{
		Name:            name,
		EntryType:       tournament.EntryOpen,
		MatchFormat:     tournament.FormatSwiss,
		MatchesPerEvent: 3,
		ScheduledDate:   "2025-04-05",
		EntryStart:      "2025-04-01T10:00",
		EntryEnd:        "2025-04-04T22:00",
		CheckinStart:    "2025-04-05T19:00",
		CheckinEnd:      "2025-04-05T19:45",
	}
}

func existingEvent(id uuid.UUID, name string) tournament.EventInput {
	in := eventInput(name)
	in.ID = &id
	return in
}

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/db"
	"github.com/jirorimi/cup-registration/internal/store"
	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/jirorimi/cup-registration/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"manage-admin", "--config", ""}, args...))
	return out.String(), err
}

func TestManageAdmin(t *testing.T) {
	exitCode := -1
	prev := cli.OsExiter
	cli.OsExiter = func(code int) { exitCode = code }
	t.Cleanup(func() { cli.OsExiter = prev })

	dsn := "file:" + filepath.Join(t.TempDir(), "cup.db")
	t.Setenv("DATABASE_DRIVER", db.DriverSQLite)
	t.Setenv("DATABASE_URL", dsn)

	out, err := run(t, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")

	conn, err := db.Open(db.DriverSQLite, dsn)
	require.NoError(t, err)
	defer conn.Close()
	now := time.Now().UTC()
	require.NoError(t, store.NewUserStore(conn).CreateUser(context.Background(), &users.User{
		ID:         uuid.New(),
		Username:   "organizer",
		Provider:   utils.Ptr("discord"),
		ProviderID: utils.Ptr("123456789"),
		Role:       users.RoleUser,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no admins")

	out, err = run(t, "grant", "123456789")
	require.NoError(t, err)
	assert.Contains(t, out, "granted admin to organizer")

	out, err = run(t, "grant", "123456789")
	require.NoError(t, err)
	assert.Contains(t, out, "already an admin")

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "123456789\torganizer")

	out, err = run(t, "revoke", "123456789")
	require.NoError(t, err)
	assert.Contains(t, out, "revoked admin from organizer")

	_, err = run(t, "grant", "000")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode)

	_, err = run(t, "grant")
	require.Error(t, err)
}

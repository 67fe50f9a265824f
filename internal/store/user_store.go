package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	db *sqlx.DB
}

const (
	getUserQuery           = "SELECT * FROM users WHERE id = ?"
	getUserByProviderQuery = `
        SELECT * FROM users
        WHERE provider = ?
        AND provider_id = ?
    `
	createUserQuery = `
		INSERT INTO users (id, email, username, provider, provider_id, avatar_url, role, created_at, updated_at) VALUES
		(:id, :email, :username, :provider, :provider_id, :avatar_url, :role, :created_at, :updated_at)
	`
	updateUserNameAndAvatarQuery = `
		UPDATE users SET
		username = :username,
		avatar_url = :avatar_url,
		updated_at = :updated_at
		WHERE id = :id
	`
	updateProfileQuery = `
		UPDATE users SET
		player_name = :player_name,
		x_id = :x_id,
		gender = :gender,
		first_role = :first_role,
		second_role = :second_role,
		third_role = :third_role,
		updated_at = :updated_at
		WHERE id = :id
	`
	setRoleQuery         = "UPDATE users SET role = ?, updated_at = ? WHERE id = ?"
	listUsersByRoleQuery = "SELECT * FROM users WHERE role = ? ORDER BY created_at ASC"
)

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUserByProvider(ctx context.Context, provider string, providerID string) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(getUserByProviderQuery), provider, providerID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) GetUser(ctx context.Context, id uuid.UUID) (*users.User, error) {
	var user users.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(getUserQuery), id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *users.User) error {
	_, err := s.db.NamedExecContext(ctx, createUserQuery, user)
	return err
}

func (s *UserStore) UpdateUserNameAndAvatar(ctx context.Context, user *users.User) error {
	_, err := s.db.NamedExecContext(ctx, updateUserNameAndAvatarQuery, user)
	return err
}

func (s *UserStore) UpdateProfile(ctx context.Context, user *users.User) error {
	_, err := s.db.NamedExecContext(ctx, updateProfileQuery, user)
	return err
}

// SetRole reports whether a user row was changed.
func (s *UserStore) SetRole(ctx context.Context, id uuid.UUID, role users.Role, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(setRoleQuery), role, at, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *UserStore) ListByRole(ctx context.Context, role users.Role) ([]users.User, error) {
	var list []users.User
	err := s.db.SelectContext(ctx, &list, s.db.Rebind(listUsersByRoleQuery), role)
	return list, err
}

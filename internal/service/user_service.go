package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/store"
	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/jirorimi/cup-registration/internal/utils"
	"github.com/jirorimi/cup-registration/internal/validate"
	"github.com/jmoiron/sqlx"
	"github.com/markbates/goth"
)

const DiscordProvider = "discord"

type UserService struct {
	db    *sqlx.DB
	store *store.UserStore
	now   func() time.Time
}

func NewUserService(db *sqlx.DB, store *store.UserStore) *UserService {
	return &UserService{db: db, store: store, now: time.Now}
}

// FindOrCreateUserByProvider creates the user on first sign-in and refreshes the
// Discord name and avatar on later ones.
func (s *UserService) FindOrCreateUserByProvider(ctx context.Context, gothUser goth.User) (*users.User, error) {
	now := s.now().UTC()
	name := providerName(gothUser)
	avatar := utils.StringOrNil(gothUser.AvatarURL)

	user, err := s.store.GetUserByProvider(ctx, gothUser.Provider, gothUser.UserID)
	if err == nil {
		if utils.OrZero(user.AvatarURL) != utils.OrZero(avatar) || user.Username != name {
			user.Username = name
			user.AvatarURL = avatar
			user.UpdatedAt = now
			if err := s.store.UpdateUserNameAndAvatar(ctx, user); err != nil {
				return nil, fmt.Errorf("failed to refresh user: %w", err)
			}
		}
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		newUser := &users.User{
			ID:         uuid.New(),
			Email:      gothUser.Email,
			Username:   name,
			Provider:   utils.Ptr(gothUser.Provider),
			ProviderID: utils.Ptr(gothUser.UserID),
			AvatarURL:  avatar,
			Role:       users.RoleUser,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.store.CreateUser(ctx, newUser); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return newUser, nil
	}

	return nil, err
}

func providerName(u goth.User) string {
	if u.NickName != "" {
		return u.NickName
	}
	return u.Name
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*users.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}
	return user, err
}

// UpdateProfile validates and stores the caller's own player profile.
func (s *UserService) UpdateProfile(ctx context.Context, caller users.Caller, in users.ProfileInput) (*users.User, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}

	profile, err := validate.Profile(in)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	user.PlayerName = utils.Ptr(profile.PlayerName)
	user.XID = utils.Ptr(profile.XID)
	user.Gender = utils.Ptr(profile.Gender)
	user.FirstRole = utils.Ptr(profile.FirstRole)
	user.SecondRole = utils.Ptr(profile.SecondRole)
	user.ThirdRole = utils.Ptr(profile.ThirdRole)
	user.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// GrantAdmin promotes the user with the given Discord id. It reports false when
// the user already was an administrator.
func (s *UserService) GrantAdmin(ctx context.Context, discordID string) (*users.User, bool, error) {
	return s.setRole(ctx, discordID, users.RoleAdmin)
}

func (s *UserService) RevokeAdmin(ctx context.Context, discordID string) (*users.User, bool, error) {
	return s.setRole(ctx, discordID, users.RoleUser)
}

func (s *UserService) setRole(ctx context.Context, discordID string, role users.Role) (*users.User, bool, error) {
	user, err := s.store.GetUserByProvider(ctx, DiscordProvider, discordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("%w: discord id %s", ErrUserNotFound, discordID)
	}
	if err != nil {
		return nil, false, err
	}
	if user.Role == role {
		return user, false, nil
	}

	changed, err := s.store.SetRole(ctx, user.ID, role, s.now().UTC())
	if err != nil {
		return nil, false, fmt.Errorf("failed to set role: %w", err)
	}
	user.Role = role
	return user, changed, nil
}

func (s *UserService) ListAdmins(ctx context.Context) ([]users.User, error) {
	return s.store.ListByRole(ctx, users.RoleAdmin)
}

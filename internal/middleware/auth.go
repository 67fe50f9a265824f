package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jirorimi/cup-registration/internal/config"
	"github.com/jirorimi/cup-registration/internal/httputil"
	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/discord"
)

// SessionUserKey holds the signed-in user's ID in the scs session.
const SessionUserKey = "userID"

// oauthStateMaxAge bounds the gothic cookie that carries the OAuth state.
const oauthStateMaxAge = 10 * 60

type UserGetter interface {
	GetUser(ctx context.Context, id uuid.UUID) (*users.User, error)
}

func InitAuth(discordCfg config.DiscordConfig, sessionSecret string, secure bool) {
	goth.UseProviders(
		discord.New(discordCfg.Key, discordCfg.Secret, discordCfg.CallbackURL, discord.ScopeIdentify, discord.ScopeEmail),
	)

	if sessionSecret != "" {
		store := sessions.NewCookieStore([]byte(sessionSecret))
		store.MaxAge(oauthStateMaxAge)
		store.Options.Path = "/"
		store.Options.HttpOnly = true
		store.Options.Secure = secure
		gothic.Store = store
	}
}

// LoadAuthenticatedUser puts the session's user, if any, into the request context.
// A session pointing at a deleted user is cleared.
func LoadAuthenticatedUser(sessionManager *scs.SessionManager, userGetter UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := sessionManager.GetString(r.Context(), SessionUserKey)
			if userIDStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				sessionManager.Remove(r.Context(), SessionUserKey)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userGetter.GetUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					sessionManager.Remove(r.Context(), SessionUserKey)
				} else {
					slog.Warn("failed to load session user", "user_id", userID, "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, users.UserKey, user)
}

func GetAuthenticatedUser(ctx context.Context) *users.User {
	val := ctx.Value(users.UserKey)
	if val == nil {
		return nil
	}
	user, ok := val.(*users.User)
	if !ok {
		return nil
	}
	return user
}

// CallerFromContext is the zero Caller for anonymous requests.
func CallerFromContext(ctx context.Context) users.Caller {
	return users.CallerOf(GetAuthenticatedUser(ctx))
}

func isAPI(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// RequireAuth sends anonymous page requests to /login and answers API requests
// with a JSON 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthenticatedUser(r.Context()) == nil {
			if isAPI(r) {
				httputil.Fail(w, http.StatusUnauthorized, "sign in required", nil)
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetAuthenticatedUser(r.Context()).IsAdmin() {
			if isAPI(r) {
				httputil.Fail(w, http.StatusForbidden, "administrator access required", nil)
				return
			}
			http.Redirect(w, r, "/forbidden", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectAuthenticated keeps signed-in users away from the login page.
func RedirectAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthenticatedUser(r.Context()) != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCompleteProfile sends signed-in users without a finished profile to
// /mypage. Anonymous requests, admin pages, API calls and the allowed path
// prefixes pass through.
func RequireCompleteProfile(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetAuthenticatedUser(r.Context())
			if user == nil || users.IsProfileComplete(user) || isAPI(r) || strings.HasPrefix(r.URL.Path, "/admin") {
				next.ServeHTTP(w, r)
				return
			}
			for _, prefix := range allowed {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Redirect(w, r, "/mypage", http.StatusFound)
		})
	}
}

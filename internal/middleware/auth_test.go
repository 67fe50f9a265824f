package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/jirorimi/cup-registration/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers map[uuid.UUID]*users.User

func (s stubUsers) GetUser(_ context.Context, id uuid.UUID) (*users.User, error) {
	if u, found := s[id]; found {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func completeUser(role users.Role) *users.User {
	return &users.User{
		ID:         uuid.New(),
		Username:   "player",
		PlayerName: utils.Ptr("Player"),
		XID:        utils.Ptr("player"),
		Gender:     utils.Ptr(users.GenderBoys),
		FirstRole:  utils.Ptr(users.Mid),
		SecondRole: utils.Ptr(users.Tank),
		ThirdRole:  utils.Ptr(users.Support),
		Role:       role,
	}
}

// withSessionUser stores id in a fresh session before the rest of the chain runs.
func withSessionUser(sm *scs.SessionManager, id string, next http.Handler) http.Handler {
	return sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id != "" {
			sm.Put(r.Context(), SessionUserKey, id)
		}
		next.ServeHTTP(w, r)
	}))
}

func TestLoadAuthenticatedUser(t *testing.T) {
	admin := completeUser(users.RoleAdmin)
	store := stubUsers{admin.ID: admin}

	tests := []struct {
		name      string
		sessionID string
		wantUser  bool
	}{
		{"anonymous", "", false},
		{"known user", admin.ID.String(), true},
		{"malformed id", "not-a-uuid", false},
		{"deleted user", uuid.NewString(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := scs.New()
			var got users.Caller
			var remaining string
			final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = CallerFromContext(r.Context())
				remaining = sm.GetString(r.Context(), SessionUserKey)
			})
			handler := withSessionUser(sm, tt.sessionID, LoadAuthenticatedUser(sm, store)(final))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			if tt.wantUser {
				assert.Equal(t, users.Caller{ID: admin.ID, Role: users.RoleAdmin}, got)
				assert.True(t, got.IsAdmin())
			} else {
				assert.False(t, got.Authenticated())
				assert.Empty(t, remaining)
			}
		})
	}
}

func serve(t *testing.T, h http.Handler, path string, user *users.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != nil {
		req = req.WithContext(WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(okHandler)

	rec := serve(t, h, "/mypage", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = serve(t, h, "/api/tournaments", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"sign in required"}`, rec.Body.String())

	rec = serve(t, h, "/mypage", completeUser(users.RoleUser))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(okHandler)

	rec := serve(t, h, "/admin/tournaments", completeUser(users.RoleUser))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/forbidden", rec.Header().Get("Location"))

	rec = serve(t, h, "/api/tournaments", completeUser(users.RoleUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, h, "/admin/tournaments", completeUser(users.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireCompleteProfile(t *testing.T) {
	h := RequireCompleteProfile("/mypage", "/logout")(okHandler)
	incomplete := &users.User{ID: uuid.New(), Role: users.RoleUser, XID: utils.Ptr(users.PendingXID)}

	rec := serve(t, h, "/", incomplete)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/mypage", rec.Header().Get("Location"))

	for _, path := range []string{"/mypage", "/logout", "/admin/tournaments", "/api/profile"} {
		assert.Equal(t, http.StatusNoContent, serve(t, h, path, incomplete).Code, path)
	}
	assert.Equal(t, http.StatusNoContent, serve(t, h, "/", nil).Code)
	assert.Equal(t, http.StatusNoContent, serve(t, h, "/", completeUser(users.RoleUser)).Code)
}

func TestRedirectAuthenticated(t *testing.T) {
	h := RedirectAuthenticated(okHandler)

	assert.Equal(t, http.StatusNoContent, serve(t, h, "/login", nil).Code)
	rec := serve(t, h, "/login", completeUser(users.RoleUser))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

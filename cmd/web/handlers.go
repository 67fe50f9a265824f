package main

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/httputil"
	"github.com/jirorimi/cup-registration/internal/middleware"
	"github.com/jirorimi/cup-registration/internal/service"
	users "github.com/jirorimi/cup-registration/internal/user"
	"github.com/jirorimi/cup-registration/internal/validate"
	"github.com/jirorimi/cup-registration/views"
	"github.com/markbates/goth/gothic"
)

const maxBodyBytes = 1 << 20

func (app *application) loginPage(w http.ResponseWriter, r *http.Request) {
	views.Render(w, r, views.LoginPage())
}

func (app *application) forbiddenPage(w http.ResponseWriter, r *http.Request) {
	views.RenderStatus(w, r, http.StatusForbidden, views.ForbiddenPage())
}

func (app *application) beginAuth(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	gothic.BeginAuthHandler(w, gothic.GetContextWithProvider(r, provider))
}

func (app *application) completeAuth(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	r = gothic.GetContextWithProvider(r, provider)

	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		httputil.BadRequest(w, "Authentication failure", err)
		return
	}

	user, err := app.users.FindOrCreateUserByProvider(r.Context(), gothUser)
	if err != nil {
		httputil.InternalServerError(w, "Failed to find or create user", err)
		return
	}

	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to renew session", err)
		return
	}
	app.sessionManager.Put(r.Context(), middleware.SessionUserKey, user.ID.String())

	target := "/"
	if !users.IsProfileComplete(user) {
		target = "/mypage"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.Destroy(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to log out", err)
		return
	}
	gothic.Logout(w, r)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (app *application) indexPage(w http.ResponseWriter, r *http.Request) {
	list, err := app.tournaments.ListTournaments(r.Context(), middleware.CallerFromContext(r.Context()))
	if err != nil {
		httputil.InternalServerError(w, "Failed to list tournaments", err)
		return
	}
	views.Render(w, r, views.IndexPage(list))
}

func (app *application) adminTournamentsPage(w http.ResponseWriter, r *http.Request) {
	list, err := app.tournaments.ListTournaments(r.Context(), middleware.CallerFromContext(r.Context()))
	if err != nil {
		httputil.InternalServerError(w, "Failed to list tournaments", err)
		return
	}
	views.Render(w, r, views.AdminTournamentsPage(list))
}

func (app *application) newTournamentPage(w http.ResponseWriter, r *http.Request) {
	views.Render(w, r, views.TournamentFormPage(views.NewTournamentForm()))
}

func (app *application) editTournamentPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.NotFound(w, "Tournament not found", err)
		return
	}

	detail, err := app.tournaments.GetTournament(r.Context(), middleware.CallerFromContext(r.Context()), id)
	if errors.Is(err, service.ErrTournamentNotFound) {
		httputil.NotFound(w, "Tournament not found", err)
		return
	}
	if err != nil {
		httputil.InternalServerError(w, "Failed to load tournament", err)
		return
	}
	views.Render(w, r, views.TournamentFormPage(views.TournamentFormFrom(detail.Tournament, detail.Events)))
}

func (app *application) myPage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetAuthenticatedUser(r.Context())
	views.Render(w, r, views.MyPage(views.MyPageData{
		User:  user,
		Input: views.ProfileFormFrom(user),
		Saved: r.URL.Query().Get("saved") == "1",
	}))
}

func (app *application) listTournaments(w http.ResponseWriter, r *http.Request) {
	list, err := app.tournaments.ListTournaments(r.Context(), middleware.CallerFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, "failed to list tournaments", err)
		return
	}
	httputil.Success(w, list)
}

func (app *application) getTournament(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Fail(w, http.StatusBadRequest, "invalid tournament id", err)
		return
	}

	detail, err := app.tournaments.GetTournament(r.Context(), middleware.CallerFromContext(r.Context()), id)
	if err != nil {
		httputil.WriteError(w, "failed to load tournament", err)
		return
	}
	httputil.Success(w, detail)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		httputil.Fail(w, http.StatusBadRequest, "request body could not be read", err)
		return nil, false
	}
	return body, true
}

func (app *application) createTournament(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	in, err := validate.ParseCreateRequest(body)
	if err != nil {
		httputil.WriteError(w, "invalid tournament", err)
		return
	}

	id, err := app.tournaments.CreateTournament(r.Context(), middleware.CallerFromContext(r.Context()), in)
	if err != nil {
		httputil.WriteError(w, "failed to create tournament", err)
		return
	}
	httputil.Success(w, map[string]uuid.UUID{"id": id})
}

func (app *application) updateTournament(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.Fail(w, http.StatusBadRequest, "invalid tournament id", err)
		return
	}

	body, ok := readBody(w, r)
	if !ok {
		return
	}

	in, err := validate.ParseUpdateRequest(body)
	if err != nil {
		httputil.WriteError(w, "invalid tournament", err)
		return
	}

	if err := app.tournaments.UpdateTournament(r.Context(), middleware.CallerFromContext(r.Context()), id, in); err != nil {
		httputil.WriteError(w, "failed to update tournament", err)
		return
	}
	httputil.Success(w, nil)
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// updateProfile accepts JSON from scripts and urlencoded posts from the
// profile form. Form posts get a page back instead of JSON.
func (app *application) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in users.ProfileInput
	if isJSON(r) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		if err := json.Unmarshal(body, &in); err != nil {
			httputil.Fail(w, http.StatusBadRequest, "request body must be a JSON object", err)
			return
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "Invalid form data", err)
			return
		}
		in = users.ProfileInput{
			PlayerName: r.PostForm.Get("player_name"),
			XID:        r.PostForm.Get("x_id"),
			Gender:     users.Gender(r.PostForm.Get("gender")),
			FirstRole:  users.PlayerRole(r.PostForm.Get("first_role")),
			SecondRole: users.PlayerRole(r.PostForm.Get("second_role")),
			ThirdRole:  users.PlayerRole(r.PostForm.Get("third_role")),
		}
	}

	_, err := app.users.UpdateProfile(r.Context(), middleware.CallerFromContext(r.Context()), in)
	if isJSON(r) {
		if err != nil {
			httputil.WriteError(w, "failed to update profile", err)
			return
		}
		httputil.Success(w, nil)
		return
	}

	var verrs validate.Errors
	switch {
	case err == nil:
		http.Redirect(w, r, "/mypage?saved=1", http.StatusSeeOther)
	case errors.As(err, &verrs):
		views.RenderStatus(w, r, http.StatusBadRequest, views.MyPage(views.MyPageData{
			User:   middleware.GetAuthenticatedUser(r.Context()),
			Input:  in,
			Errors: verrs,
		}))
	default:
		httputil.InternalServerError(w, "Failed to update profile", err)
	}
}

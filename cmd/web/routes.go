package main

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jirorimi/cup-registration/internal/config"
	"github.com/jirorimi/cup-registration/internal/middleware"
	"github.com/jirorimi/cup-registration/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type application struct {
	cfg            *config.Config
	sessionManager *scs.SessionManager
	tournaments    *service.TournamentService
	users          *service.UserService
	registry       *prometheus.Registry
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	limiter := middleware.NewIPRateLimiter(rate.Limit(app.cfg.RateLimit.RPS), app.cfg.RateLimit.Burst)

	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)
		r.Use(middleware.LoadAuthenticatedUser(app.sessionManager, app.users))
		r.Use(middleware.RequireCompleteProfile("/mypage", "/auth/", "/logout", "/forbidden"))

		r.With(middleware.RedirectAuthenticated).Get("/login", app.loginPage)
		r.With(middleware.RateLimit(limiter)).Get("/auth/{provider}", app.beginAuth)
		r.Get("/auth/{provider}/callback", app.completeAuth)
		r.Post("/logout", app.logout)

		r.Get("/", app.indexPage)
		r.Get("/forbidden", app.forbiddenPage)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/mypage", app.myPage)

			r.Route("/admin/tournaments", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", app.adminTournamentsPage)
				r.Get("/new", app.newTournamentPage)
				r.Get("/{id}/edit", app.editTournamentPage)
			})
		})

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   app.cfg.CORS.AllowedOrigins,
				AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Content-Type"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
			r.Use(middleware.RateLimit(limiter))

			r.Get("/tournaments", app.listTournaments)
			r.Get("/tournaments/{id}", app.getTournament)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.With(middleware.RequireAdmin).Post("/tournaments", app.createTournament)
				r.With(middleware.RequireAdmin).Put("/tournaments/{id}", app.updateTournament)
				r.Post("/profile", app.updateProfile)
			})
		})
	})

	return r
}

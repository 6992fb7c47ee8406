package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jobconnect/jobconnect-go/internal/authz"
	"github.com/jobconnect/jobconnect-go/internal/metrics"
	"github.com/jobconnect/jobconnect-go/internal/middleware"
	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/session"
)

// Routes holds everything NewRouter mounts.
type Routes struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Pages        *PageHandler

	Gate     *authz.Gate
	Verifier authz.Verifier
	Cookie   *session.Cookie

	// AuthLimit guards register and login. Nil disables it.
	AuthLimit func(http.Handler) http.Handler
}

// NewRouter builds the HTTP routing tree. The page gate runs on every request
// so protected prefixes are covered for any method.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.PageGate(rt.Gate, rt.Cookie))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Get("/login", rt.Pages.HandleLogin)
	r.Get("/pending-approval", rt.Pages.HandlePendingApproval)

	r.Get("/seeker", rt.Pages.HandleSeeker)
	r.Get("/seeker/*", rt.Pages.HandleSeeker)
	r.Get("/employer", rt.Pages.HandleEmployer)
	r.Get("/employer/*", rt.Pages.HandleEmployer)
	r.Get("/admin", rt.Pages.HandleAdmin)
	r.Get("/admin/*", rt.Pages.HandleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if rt.AuthLimit != nil {
				r.Use(rt.AuthLimit)
			}
			r.Post("/auth/register", rt.Auth.HandleRegister)
			r.Post("/auth/login", rt.Auth.HandleLogin)
		})
		r.Post("/auth/logout", rt.Auth.HandleLogout)

		r.Get("/jobs", rt.Jobs.HandleList)
		r.Get("/jobs/locations", rt.Jobs.HandleLocations)
		r.Get("/jobs/{id}", rt.Jobs.HandleGet)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.Verifier, rt.Cookie))

			r.Get("/auth/me", rt.Auth.HandleMe)
			r.Post("/auth/refresh", rt.Auth.HandleRefresh)

			employer := middleware.RequireRole(model.RoleEmployer)
			seeker := middleware.RequireRole(model.RoleSeeker)

			r.With(employer).Post("/jobs", rt.Jobs.HandleCreate)
			r.With(employer).Put("/jobs/{id}", rt.Jobs.HandleUpdate)
			r.With(middleware.RequireRole(model.RoleEmployer, model.RoleAdmin)).Delete("/jobs/{id}", rt.Jobs.HandleDelete)

			r.Get("/applications", rt.Applications.HandleList)
			r.With(seeker).Post("/applications", rt.Applications.HandleCreate)
			r.With(seeker).Get("/applications/check", rt.Applications.HandleCheck)
			r.With(employer).Patch("/applications/{id}/status", rt.Applications.HandleUpdateStatus)

			r.Put("/users/{id}", rt.Users.HandleUpdate)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(model.RoleAdmin))
				r.Get("/users", rt.Users.HandleList)
				r.Get("/users/{id}", rt.Users.HandleGet)
				r.Post("/users/{id}/approve", rt.Users.HandleApprove)
				r.Post("/users/{id}/block", rt.Users.HandleToggleBlock)
			})
		})
	})

	return r
}

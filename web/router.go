package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jacobf001/iceland-db/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, auth AdminAuth) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(render))

	r.Route("/competitions", func(r chi.Router) {
		r.Get("/", listCompetitionsHandler(ctrl, render))
		r.Get("/{motnumer:\\d+}", getCompetitionHandler(ctrl, render))
	})

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", getTeamByNameHandler(ctrl, render))
		r.Get("/{teamID:\\d+}", getTeamHandler(ctrl, render))
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("iceland-db", map[string]string{auth.User: auth.Password}))
		r.Use(middleware.Timeout(5 * time.Minute)) // An ingest run walks every competition page

		r.Post("/ingest", ingestHandler(ctrl, render))
	})

	return r
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.health)
		r.Get("/api/version", h.getServerVersion)

		r.Post("/api/users/register", h.register)
		r.Post("/api/users/token", h.token)
		r.Post("/api/users/login", h.login)
	})

	// routes behind the bearer token gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/me", h.me)

		r.Route("/api/leads", func(r chi.Router) {
			r.Get("/", h.searchLeads)
			r.Post("/", h.createLeads)

			r.Route("/{leadID}", func(r chi.Router) {
				r.Get("/", h.getLead)
				r.Put("/", h.updateLead)
				r.Delete("/", h.deleteLead)

				r.Get("/activities", h.listActivities)
				r.Post("/activities", h.addActivities)
			})
		})

		r.Get("/api/dashboard", h.dashboard)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// credential-authorized routes: the request body carries email and
	// password, verified by the service layer
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/change_password", h.changePassword)
		r.Post("/api/user/delete", h.deleteAccount)
	})

	// token-authorized routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/logout", h.logout)

		r.Post("/api/deck/create", h.createDeck)
		r.Post("/api/deck/get", h.getDeck)
		r.Post("/api/deck/list", h.listDecks)
		r.Post("/api/deck/delete", h.deleteDeck)
		r.Post("/api/deck/import", h.importDeck)

		r.Post("/api/card/create", h.createCard)
		r.Post("/api/card/edit", h.editCard)
		r.Post("/api/card/delete", h.deleteCard)
		r.Post("/api/card/list", h.listCards)

		r.Post("/api/ai/prompt", h.prompt)
		r.Post("/api/search", h.searchDecks)
	})

	return router
}

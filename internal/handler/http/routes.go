package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.With(h.rateLimitLogin).Post("/api/auth/login", h.login)
		r.Post("/api/auth/verify-login", h.verifyLogin)
		r.Get("/api/shared/{linkToken}", h.sharedFile)
	})

	// routes requiring a live session
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/profile", h.profile)

		r.Post("/api/files/upload", h.upload)
		r.Get("/api/files", h.listFiles)
		r.Get("/api/files/download/{fileID}", h.download)
		r.Delete("/api/files/{fileID}", h.deleteFile)

		r.Get("/api/users", h.listUsers)
		r.Post("/api/share", h.createShare)
	})

	// administrative surface
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.adminOnly)

		r.Get("/api/admin/users", h.adminListUsers)
		r.Delete("/api/admin/users/{userID}", h.adminDeleteUser)
		r.Delete("/api/admin/files/{fileID}", h.adminDeleteFile)
	})

	return router
}

// ABOUTME: HTTP API for the document chat service built on fiber
// ABOUTME: Routes session lifecycle, uploads, chat, documents, summaries, and insights
package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/session"
)

// Server wires the session registry behind the HTTP API.
type Server struct {
	app      *fiber.App
	sessions session.Store
	cfg      *config.Config
}

// New builds the fiber app with all routes registered.
func New(cfg *config.Config, sessions session.Store) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadSize,
	})
	app.Use(logger.New())

	s := &Server{
		app:      app,
		sessions: sessions,
		cfg:      cfg,
	}

	app.Post("/session", s.createSession)
	app.Post("/upload", s.uploadDocument)
	app.Post("/chat", s.chat)
	app.Get("/documents/:session_id", s.listDocuments)
	app.Get("/summary/:session_id", s.documentSummary)
	app.Post("/insights/:session_id", s.contextualInsights)
	app.Delete("/session/:session_id", s.deleteSession)

	return s
}

// App exposes the underlying fiber app for testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on the configured port.
func (s *Server) Listen() error {
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Port))
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// ABOUTME: Route handlers translating HTTP requests into session facade calls
// ABOUTME: Uploads are staged on disk per session and removed after indexing
package server

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/docuchat/docuchat/internal/insights"
	"github.com/docuchat/docuchat/internal/models"
	"github.com/docuchat/docuchat/internal/processor"
	"github.com/docuchat/docuchat/internal/session"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type insightsRequest struct {
	Question string `json:"question"`
}

// createSession allocates a fresh session.
func (s *Server) createSession(c *fiber.Ctx) error {
	id, _, err := s.sessions.Create()
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"session_id": id})
}

// uploadDocument accepts a multipart file, indexes it into the session, and
// returns the upload insights. The staged file is removed after processing.
func (s *Server) uploadDocument(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}

	filename := filepath.Base(file.Filename)
	if filename == "" || filename == "." {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}
	if !processor.Supported(filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Unsupported file type. Supported types: %s",
				strings.Join(processor.SupportedExtensions(), ", ")),
		})
	}

	id, bot, err := s.sessions.GetOrCreate(c.FormValue("session_id"))
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	path := filepath.Join(s.cfg.UploadDir, id+"_"+filename)
	if err := c.SaveFile(file, path); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Printf("failed to remove staged upload %s: %v", path, err)
		}
	}()

	result, err := bot.ProcessDocument(c.Context(), path, filename)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message":    result.Message,
		"insights":   result.Insights,
		"session_id": id,
		"documents":  documentsOf(bot.Documents()),
	})
}

// chat answers a question against the session's documents.
func (s *Server) chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No question provided"})
	}
	if req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No session_id provided"})
	}

	bot, err := s.sessions.Get(req.SessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	resp, err := bot.AskQuestion(c.Context(), req.Question)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"response": resp})
}

// listDocuments returns the session's upload records. Unknown sessions get an
// empty list rather than an error.
func (s *Server) listDocuments(c *fiber.Ctx) error {
	bot, err := s.sessions.Get(c.Params("session_id"))
	if err != nil {
		return c.JSON(fiber.Map{"documents": []models.DocumentRecord{}})
	}
	return c.JSON(fiber.Map{"documents": documentsOf(bot.Documents())})
}

// documentSummary summarizes one document, or all of them without a filename.
func (s *Server) documentSummary(c *fiber.Ctx) error {
	bot, err := s.sessions.Get(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	summary, err := bot.DocumentSummary(c.Context(), c.Query("filename"))
	if err != nil {
		if errors.Is(err, insights.ErrNoDocuments) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"summary": summary})
}

// contextualInsights returns question-scoped insights without an answer.
func (s *Server) contextualInsights(c *fiber.Ctx) error {
	bot, err := s.sessions.Get(c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	var req insightsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No question provided"})
	}

	result, err := bot.ContextualInsights(c.Context(), req.Question)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"insights": result})
}

// deleteSession cleans up the session's index and removes it.
func (s *Server) deleteSession(c *fiber.Ctx) error {
	if err := s.sessions.Delete(c.Params("session_id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	return c.JSON(fiber.Map{"message": "Session deleted successfully"})
}

// documentsOf normalizes a nil record slice to an empty JSON array.
func documentsOf(docs []models.DocumentRecord) []models.DocumentRecord {
	if docs == nil {
		return []models.DocumentRecord{}
	}
	return docs
}

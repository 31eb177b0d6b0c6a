// ABOUTME: Session facade owning one processor, vector store, pipeline, and generator
// ABOUTME: Composes their outputs into unified responses and tracks uploaded documents
package chatbot

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/insights"
	"github.com/docuchat/docuchat/internal/models"
	"github.com/docuchat/docuchat/internal/processor"
	"github.com/docuchat/docuchat/internal/rag"
	"github.com/docuchat/docuchat/internal/vectorstore"
)

// NoDocumentsUploadedMessage is the sentinel answer for a session that has
// not received any documents yet.
const NoDocumentsUploadedMessage = "No documents have been uploaded yet. Please upload a document first."

// LanguageModel is the combined model surface the facade wires into its
// components. *llm.Client satisfies it.
type LanguageModel interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Chatbot holds all per-session state for document question answering.
type Chatbot struct {
	sessionID string
	processor *processor.Processor
	store     *vectorstore.Store
	pipeline  *rag.Pipeline
	insights  *insights.Generator
	documents []models.DocumentRecord
}

// New creates a session facade with its own vector store and pipelines.
func New(sessionID string, cfg *config.Config, model LanguageModel) *Chatbot {
	store := vectorstore.New(sessionID, model)
	return &Chatbot{
		sessionID: sessionID,
		processor: processor.New(cfg.ChunkSize, cfg.ChunkOverlap),
		store:     store,
		pipeline:  rag.New(store, model, cfg.RetrievalK, cfg.QATemperature),
		insights:  insights.New(store, model, cfg.InsightTemperature),
	}
}

// SessionID returns the owning session's id.
func (c *Chatbot) SessionID() string {
	return c.sessionID
}

// ProcessDocument loads and chunks the file, indexes the chunks, generates
// upload insights, and records the document.
func (c *Chatbot) ProcessDocument(ctx context.Context, path, filename string) (*models.UploadResult, error) {
	chunks, err := c.processor.Process(path, filename)
	if err != nil {
		return nil, err
	}

	if err := c.store.Add(ctx, chunks); err != nil {
		return nil, fmt.Errorf("error processing document: %w", err)
	}

	docInsights := c.insights.DocumentInsights(ctx, chunks, filename)

	c.documents = append(c.documents, models.DocumentRecord{
		Filename:   filename,
		Chunks:     len(chunks),
		UploadTime: time.Now(),
		Insights:   docInsights,
	})

	return &models.UploadResult{
		Message:  fmt.Sprintf("Successfully processed %s into %d chunks", filename, len(chunks)),
		Insights: docInsights,
	}, nil
}

// AskQuestion answers a question about the uploaded documents and attaches
// contextual insights. A session without documents gets the upload-first
// sentinel. Insight failures degrade to an answer without insights.
func (c *Chatbot) AskQuestion(ctx context.Context, question string) (*models.ChatResponse, error) {
	if !c.store.HasDocuments() {
		return &models.ChatResponse{
			Answer:   NoDocumentsUploadedMessage,
			Sources:  []models.Source{},
			Question: question,
		}, nil
	}

	answer, err := c.pipeline.Answer(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("error answering question: %w", err)
	}

	contextual, err := c.insights.ContextualInsights(ctx, question)
	if err != nil {
		log.Printf("contextual insights failed for session %s: %v", c.sessionID, err)
		contextual = nil
	}

	return &models.ChatResponse{
		Answer:   answer.Answer,
		Sources:  answer.Sources,
		Question: answer.Question,
		Insights: contextual,
	}, nil
}

// ContextualInsights exposes question-scoped insights without an answer.
func (c *Chatbot) ContextualInsights(ctx context.Context, question string) (*models.ContextualInsights, error) {
	return c.insights.ContextualInsights(ctx, question)
}

// DocumentSummary summarizes one document, or all of them when filename is empty.
func (c *Chatbot) DocumentSummary(ctx context.Context, filename string) (*models.SummaryResult, error) {
	return c.insights.DocumentSummary(ctx, filename)
}

// Documents returns the records of all successfully uploaded documents.
func (c *Chatbot) Documents() []models.DocumentRecord {
	return c.documents
}

// Cleanup releases the session's index and clears its document records.
func (c *Chatbot) Cleanup() {
	c.store.Cleanup()
	c.documents = nil
}

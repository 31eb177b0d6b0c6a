// ABOUTME: RAG pipeline composing retrieval with a language model call
// ABOUTME: Stuffs retrieved chunk text into a Q&A prompt and cites sources
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuchat/docuchat/internal/models"
	"github.com/docuchat/docuchat/internal/util"
	"github.com/docuchat/docuchat/internal/vectorstore"
)

// NoDocumentsMessage is returned as the answer when the session has no
// indexed documents yet. It is a sentinel, not an error.
const NoDocumentsMessage = "No documents available for querying."

// sourceExcerptLimit bounds the cited excerpt length.
const sourceExcerptLimit = 200

const qaPromptTemplate = `Use the following pieces of context to answer the question at the end. If you don't know the answer, just say that you don't know, don't try to make up an answer.

%s

Question: %s
Helpful Answer:`

// Completer invokes a language model with a prompt at a given temperature.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// DocumentStore is the slice of the vector store the pipeline depends on.
type DocumentStore interface {
	HasDocuments() bool
	Retriever(k int) vectorstore.RetrieverFunc
}

// Pipeline answers questions grounded in the session's indexed documents.
type Pipeline struct {
	store       DocumentStore
	llm         Completer
	k           int
	temperature float32
}

// New creates a pipeline bound to one session's store.
func New(store DocumentStore, llm Completer, k int, temperature float64) *Pipeline {
	return &Pipeline{
		store:       store,
		llm:         llm,
		k:           k,
		temperature: float32(temperature),
	}
}

// Answer retrieves the top-k chunks for the question and asks the language
// model for a grounded answer. A session with no documents yields the
// no-documents sentinel answer.
func (p *Pipeline) Answer(ctx context.Context, question string) (*models.Answer, error) {
	if !p.store.HasDocuments() {
		return &models.Answer{
			Answer:   NoDocumentsMessage,
			Sources:  []models.Source{},
			Question: question,
		}, nil
	}

	retrieve := p.store.Retriever(p.k)
	if retrieve == nil {
		return nil, fmt.Errorf("unable to construct retriever")
	}

	chunks := retrieve(ctx, question)

	answer, err := p.llm.Complete(ctx, buildPrompt(question, chunks), p.temperature)
	if err != nil {
		return nil, fmt.Errorf("error processing question: %w", err)
	}

	return &models.Answer{
		Answer:   answer,
		Sources:  formatSources(chunks),
		Question: question,
	}, nil
}

// buildPrompt concatenates the retrieved chunk text as context for the model.
func buildPrompt(question string, chunks []models.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	return fmt.Sprintf(qaPromptTemplate, strings.Join(texts, "\n\n"), question)
}

// formatSources converts consulted chunks into citation records.
func formatSources(chunks []models.Chunk) []models.Source {
	sources := make([]models.Source, 0, len(chunks))
	for _, c := range chunks {
		page := "N/A"
		if c.Metadata.Page > 0 {
			page = fmt.Sprintf("%d", c.Metadata.Page)
		}
		sources = append(sources, models.Source{
			Content: util.Truncate(c.Content, sourceExcerptLimit),
			Source:  c.Metadata.Source,
			Page:    page,
		})
	}
	return sources
}

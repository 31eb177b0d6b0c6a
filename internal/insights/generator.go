// ABOUTME: Insight generator combining local analytics with language model calls
// ABOUTME: Document analysis on upload, contextual insight per question, summarization
package insights

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/docuchat/docuchat/internal/models"
)

// ErrNoDocuments is returned when a summary is requested before any
// content has been indexed.
var ErrNoDocuments = errors.New("no documents available for summary")

// Content caps for the language model calls.
const (
	analysisSampleChunks = 3
	analysisContentLimit = 3000
	contextContentLimit  = 2000
	summaryContentLimit  = 4000
	contextualK          = 3
	summaryK             = 10
)

// allDocumentsScope labels an unfiltered summary.
const allDocumentsScope = "All documents"

// Completer invokes a language model with a prompt at a given temperature.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// SearchStore is the slice of the vector store the generator depends on.
type SearchStore interface {
	Search(ctx context.Context, query string, k int) []models.Chunk
	SearchBySource(source string, k int) ([]models.Chunk, error)
	Sample(k int) ([]models.Chunk, error)
}

// Generator produces insight bundles for a single session.
type Generator struct {
	store       SearchStore
	llm         Completer
	temperature float32
}

// New creates a generator bound to one session's store.
func New(store SearchStore, llm Completer, temperature float64) *Generator {
	return &Generator{
		store:       store,
		llm:         llm,
		temperature: float32(temperature),
	}
}

// DocumentInsights analyzes a freshly uploaded document. Statistics and
// suggested questions are computed locally; the model analysis degrades to
// a fallback message if the call fails, so the upload never fails on insights.
func (g *Generator) DocumentInsights(ctx context.Context, chunks []models.Chunk, filename string) *models.DocumentInsights {
	sample := capContent(joinChunkText(chunks, analysisSampleChunks), analysisContentLimit)

	analysis, err := g.llm.Complete(ctx, fmt.Sprintf(documentAnalysisPrompt, filename, sample), g.temperature)
	if err != nil {
		log.Printf("document analysis failed for %s: %v", filename, err)
		analysis = "Unable to generate AI analysis"
	}

	return &models.DocumentInsights{
		Statistics:         computeStats(chunks),
		AIAnalysis:         analysis,
		SuggestedQuestions: suggestQuestions(chunks),
	}
}

// ContextualInsights analyzes a question against the session's indexed
// content. When nothing relevant is found, a sentinel bundle is returned.
func (g *Generator) ContextualInsights(ctx context.Context, question string) (*models.ContextualInsights, error) {
	relevant := g.store.Search(ctx, question, contextualK)
	if len(relevant) == 0 {
		return &models.ContextualInsights{
			Message: "No relevant content found for contextual insights",
		}, nil
	}

	content := capContent(joinChunkText(relevant, len(relevant)), contextContentLimit)

	analysis, err := g.llm.Complete(ctx, fmt.Sprintf(contextualInsightsPrompt, question, content), g.temperature)
	if err != nil {
		return nil, fmt.Errorf("unable to generate contextual insights: %w", err)
	}

	return &models.ContextualInsights{
		ContextualAnalysis:  analysis,
		QuestionType:        classifyQuestion(question),
		RelatedContentFound: len(relevant),
		SuggestedFollowUps:  followUpQuestions(question),
	}, nil
}

// DocumentSummary summarizes one document when filename is given, or a
// sample across all documents otherwise.
func (g *Generator) DocumentSummary(ctx context.Context, filename string) (*models.SummaryResult, error) {
	var (
		chunks []models.Chunk
		err    error
		scope  = allDocumentsScope
	)

	if filename != "" {
		chunks, err = g.store.SearchBySource(filename, summaryK)
		scope = filename
	} else {
		chunks, err = g.store.Sample(summaryK)
	}
	if err != nil {
		return nil, fmt.Errorf("error generating summary: %w", err)
	}
	if len(chunks) == 0 {
		return nil, ErrNoDocuments
	}

	content := capContent(joinChunkText(chunks, len(chunks)), summaryContentLimit)

	summary, err := g.llm.Complete(ctx, fmt.Sprintf(summaryPrompt, content), g.temperature)
	if err != nil {
		return nil, fmt.Errorf("error generating summary: %w", err)
	}

	return &models.SummaryResult{
		Summary:        summary,
		ChunksAnalyzed: len(chunks),
		DocumentScope:  scope,
	}, nil
}

// capContent truncates s to at most limit bytes without severing a rune.
func capContent(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// joinChunkText concatenates up to limit chunks with newlines.
func joinChunkText(chunks []models.Chunk, limit int) string {
	var b strings.Builder
	for i, c := range chunks {
		if i == limit {
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(c.Content)
	}
	return b.String()
}

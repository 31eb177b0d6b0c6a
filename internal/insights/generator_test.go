// ABOUTME: Tests for the insight generator entry points
// ABOUTME: Uses fake store and completer to verify prompts, sentinels, and degradation
package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/docuchat/docuchat/internal/models"
)

type fakeSearchStore struct {
	chunks       []models.Chunk
	bySource     map[string][]models.Chunk
	sourceErr    error
	lastSearched string
}

func (f *fakeSearchStore) Search(_ context.Context, query string, k int) []models.Chunk {
	f.lastSearched = query
	if len(f.chunks) > k {
		return f.chunks[:k]
	}
	return f.chunks
}

func (f *fakeSearchStore) SearchBySource(source string, k int) ([]models.Chunk, error) {
	if f.sourceErr != nil {
		return nil, f.sourceErr
	}
	chunks := f.bySource[source]
	if len(chunks) > k {
		chunks = chunks[:k]
	}
	return chunks, nil
}

func (f *fakeSearchStore) Sample(k int) ([]models.Chunk, error) {
	if len(f.chunks) > k {
		return f.chunks[:k], nil
	}
	return f.chunks, nil
}

type fakeCompleter struct {
	response   string
	err        error
	lastPrompt string
	lastTemp   float32
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string, temperature float32) (string, error) {
	f.lastPrompt = prompt
	f.lastTemp = temperature
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestDocumentInsights(t *testing.T) {
	llm := &fakeCompleter{response: "This document covers gopher habitats."}
	g := New(&fakeSearchStore{}, llm, 0.3)

	chunks := []models.Chunk{
		chunk("The process involves three steps. Results show improvement."),
	}

	got := g.DocumentInsights(context.Background(), chunks, "notes.txt")

	if got.Statistics.TotalChunks != 1 {
		t.Errorf("TotalChunks = %d, want 1", got.Statistics.TotalChunks)
	}
	if got.AIAnalysis != "This document covers gopher habitats." {
		t.Errorf("AIAnalysis = %q", got.AIAnalysis)
	}
	if !containsQuestion(got.SuggestedQuestions, "How does this process work?") {
		t.Errorf("suggested questions %v missing process question", got.SuggestedQuestions)
	}
	if llm.lastTemp != 0.3 {
		t.Errorf("temperature = %f, want 0.3", llm.lastTemp)
	}
	if !strings.Contains(llm.lastPrompt, "notes.txt") {
		t.Error("analysis prompt should name the document")
	}
}

func TestDocumentInsights_ModelFailureDegrades(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("model down")}
	g := New(&fakeSearchStore{}, llm, 0.3)

	got := g.DocumentInsights(context.Background(), []models.Chunk{chunk("Some text.")}, "notes.txt")

	if got.AIAnalysis != "Unable to generate AI analysis" {
		t.Errorf("AIAnalysis = %q, want fallback", got.AIAnalysis)
	}
	// Local analytics still present
	if got.Statistics.TotalChunks != 1 {
		t.Errorf("TotalChunks = %d, want 1", got.Statistics.TotalChunks)
	}
	if len(got.SuggestedQuestions) == 0 {
		t.Error("suggested questions should survive model failure")
	}
}

func TestDocumentInsights_ContentCap(t *testing.T) {
	llm := &fakeCompleter{response: "ok"}
	g := New(&fakeSearchStore{}, llm, 0.3)

	big := strings.Repeat("a", 2000)
	chunks := []models.Chunk{chunk(big), chunk(big), chunk(big), chunk(big)}

	g.DocumentInsights(context.Background(), chunks, "big.txt")

	// Prompt includes at most 3000 chars of content plus the template itself
	if len(llm.lastPrompt) > 3000+len(documentAnalysisPrompt)+len("big.txt") {
		t.Errorf("prompt length = %d, content cap not applied", len(llm.lastPrompt))
	}
}

func TestDocumentInsights_ContentCapKeepsRunesIntact(t *testing.T) {
	llm := &fakeCompleter{response: "ok"}
	g := New(&fakeSearchStore{}, llm, 0.3)

	// Multi-byte content larger than the cap; the cap must not sever a rune.
	// The leading ASCII byte misaligns the rune grid against the cap offset.
	big := "x" + strings.Repeat("资料分析提示词", 300)
	g.DocumentInsights(context.Background(), []models.Chunk{chunk(big)}, "cjk.txt")

	if !utf8.ValidString(llm.lastPrompt) {
		t.Error("analysis prompt contains a severed rune at the content cap")
	}
}

func TestDocumentSummary_ContentCapKeepsRunesIntact(t *testing.T) {
	big := strings.Repeat("摘要内容示例", 300)
	store := &fakeSearchStore{chunks: []models.Chunk{chunk(big), chunk(big)}}
	llm := &fakeCompleter{response: "ok"}
	g := New(store, llm, 0.3)

	if _, err := g.DocumentSummary(context.Background(), ""); err != nil {
		t.Fatalf("DocumentSummary() error = %v", err)
	}
	if !utf8.ValidString(llm.lastPrompt) {
		t.Error("summary prompt contains a severed rune at the content cap")
	}
}

func TestContextualInsights(t *testing.T) {
	store := &fakeSearchStore{chunks: []models.Chunk{
		chunk("Gophers dig tunnels."),
		chunk("Gophers eat roots."),
	}}
	llm := &fakeCompleter{response: "The question touches on gopher behavior."}
	g := New(store, llm, 0.3)

	got, err := g.ContextualInsights(context.Background(), "How do gophers dig?")
	if err != nil {
		t.Fatalf("ContextualInsights() error = %v", err)
	}

	if got.ContextualAnalysis != "The question touches on gopher behavior." {
		t.Errorf("ContextualAnalysis = %q", got.ContextualAnalysis)
	}
	if got.QuestionType != CategoryProcess {
		t.Errorf("QuestionType = %q, want %q", got.QuestionType, CategoryProcess)
	}
	if got.RelatedContentFound != 2 {
		t.Errorf("RelatedContentFound = %d, want 2", got.RelatedContentFound)
	}
	if len(got.SuggestedFollowUps) == 0 {
		t.Error("expected follow-up questions")
	}
	if store.lastSearched != "How do gophers dig?" {
		t.Errorf("searched %q, want the question", store.lastSearched)
	}
}

func TestContextualInsights_NoContentSentinel(t *testing.T) {
	g := New(&fakeSearchStore{}, &fakeCompleter{response: "unused"}, 0.3)

	got, err := g.ContextualInsights(context.Background(), "Anything here?")
	if err != nil {
		t.Fatalf("ContextualInsights() error = %v", err)
	}
	if got.Message != "No relevant content found for contextual insights" {
		t.Errorf("Message = %q, want no-content sentinel", got.Message)
	}
	if got.ContextualAnalysis != "" {
		t.Error("sentinel bundle should carry no analysis")
	}
}

func TestContextualInsights_ModelFailure(t *testing.T) {
	store := &fakeSearchStore{chunks: []models.Chunk{chunk("text")}}
	g := New(store, &fakeCompleter{err: errors.New("model down")}, 0.3)

	if _, err := g.ContextualInsights(context.Background(), "Why?"); err == nil {
		t.Error("ContextualInsights() should surface model failure")
	}
}

func TestDocumentSummary_AllDocuments(t *testing.T) {
	store := &fakeSearchStore{chunks: []models.Chunk{
		chunk("Part one."), chunk("Part two."), chunk("Part three."),
	}}
	llm := &fakeCompleter{response: "A three part story."}
	g := New(store, llm, 0.3)

	got, err := g.DocumentSummary(context.Background(), "")
	if err != nil {
		t.Fatalf("DocumentSummary() error = %v", err)
	}
	if got.Summary != "A three part story." {
		t.Errorf("Summary = %q", got.Summary)
	}
	if got.ChunksAnalyzed != 3 {
		t.Errorf("ChunksAnalyzed = %d, want 3", got.ChunksAnalyzed)
	}
	if got.DocumentScope != "All documents" {
		t.Errorf("DocumentScope = %q, want %q", got.DocumentScope, "All documents")
	}
}

func TestDocumentSummary_FilteredByFilename(t *testing.T) {
	aChunk := chunk("Content of file a.")
	aChunk.Metadata.Source = "a.txt"
	store := &fakeSearchStore{
		chunks:   []models.Chunk{chunk("unfiltered")},
		bySource: map[string][]models.Chunk{"a.txt": {aChunk}},
	}
	llm := &fakeCompleter{response: "Summary of a."}
	g := New(store, llm, 0.3)

	got, err := g.DocumentSummary(context.Background(), "a.txt")
	if err != nil {
		t.Fatalf("DocumentSummary() error = %v", err)
	}
	if got.DocumentScope != "a.txt" {
		t.Errorf("DocumentScope = %q, want a.txt", got.DocumentScope)
	}
	if got.ChunksAnalyzed != 1 {
		t.Errorf("ChunksAnalyzed = %d, want 1", got.ChunksAnalyzed)
	}
	if !strings.Contains(llm.lastPrompt, "Content of file a.") {
		t.Error("summary prompt should contain only the filtered content")
	}
}

func TestDocumentSummary_NoDocuments(t *testing.T) {
	g := New(&fakeSearchStore{}, &fakeCompleter{response: "unused"}, 0.3)

	_, err := g.DocumentSummary(context.Background(), "")
	if !errors.Is(err, ErrNoDocuments) {
		t.Errorf("error = %v, want ErrNoDocuments", err)
	}
}

func TestDocumentSummary_UnknownFilename(t *testing.T) {
	store := &fakeSearchStore{
		chunks:   []models.Chunk{chunk("exists")},
		bySource: map[string][]models.Chunk{},
	}
	g := New(store, &fakeCompleter{response: "unused"}, 0.3)

	_, err := g.DocumentSummary(context.Background(), "missing.txt")
	if !errors.Is(err, ErrNoDocuments) {
		t.Errorf("error = %v, want ErrNoDocuments", err)
	}
}

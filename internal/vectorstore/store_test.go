// ABOUTME: Tests for the per-session vector store
// ABOUTME: Uses a deterministic fake embedder instead of the OpenAI API
package vectorstore

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docuchat/docuchat/internal/models"
)

// fakeEmbedder maps known words onto orthogonal axes so similarity
// ordering is fully deterministic.
type fakeEmbedder struct {
	calls int
	fail  bool
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float64, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("embedding backend down")
	}

	axes := []string{"apple", "banana", "cherry"}
	vec := make([]float64, len(axes)+1)
	lower := strings.ToLower(text)
	for i, word := range axes {
		vec[i] = float64(strings.Count(lower, word))
	}
	vec[len(axes)] = 0.1 // keep vectors non-zero
	return vec, nil
}

func testChunk(id, content, source string) models.Chunk {
	return models.Chunk{
		ID:      id,
		Content: content,
		Metadata: models.Metadata{
			Source:     source,
			UploadTime: time.Now(),
		},
	}
}

func TestHasDocuments_Lifecycle(t *testing.T) {
	store := New("sess-1", &fakeEmbedder{})
	defer store.Cleanup()

	if store.HasDocuments() {
		t.Error("fresh store should have no documents")
	}

	err := store.Add(context.Background(), []models.Chunk{testChunk("c1", "apple pie recipe", "a.txt")})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if !store.HasDocuments() {
		t.Error("store should have documents after successful Add")
	}
}

func TestAdd_EmbeddingFailureLeavesStoreUntouched(t *testing.T) {
	store := New("sess-2", &fakeEmbedder{fail: true})
	defer store.Cleanup()

	err := store.Add(context.Background(), []models.Chunk{testChunk("c1", "apple", "a.txt")})
	if err == nil {
		t.Fatal("Add() with failing embedder should error")
	}
	if store.HasDocuments() {
		t.Error("failed Add must not create an index")
	}
}

func TestAdd_EmptyChunks(t *testing.T) {
	store := New("sess-3", &fakeEmbedder{})
	defer store.Cleanup()

	if err := store.Add(context.Background(), nil); err != nil {
		t.Errorf("Add(nil) error = %v", err)
	}
	if store.HasDocuments() {
		t.Error("Add with no chunks must not create an index")
	}
}

func TestSearch_EmptyStore(t *testing.T) {
	store := New("sess-4", &fakeEmbedder{})
	defer store.Cleanup()

	if got := store.Search(context.Background(), "apple", 3); len(got) != 0 {
		t.Errorf("Search on empty store = %d chunks, want 0", len(got))
	}
}

func TestSearch_OrderingAndLimit(t *testing.T) {
	store := New("sess-5", &fakeEmbedder{})
	defer store.Cleanup()

	chunks := []models.Chunk{
		testChunk("c1", "banana bread", "a.txt"),
		testChunk("c2", "apple apple apple tart", "a.txt"),
		testChunk("c3", "cherry jam", "a.txt"),
		testChunk("c4", "apple cider", "a.txt"),
	}
	if err := store.Add(context.Background(), chunks); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got := store.Search(context.Background(), "apple", 2)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	for _, c := range got {
		if !strings.Contains(c.Content, "apple") {
			t.Errorf("result %q should be apple-related", c.Content)
		}
	}

	// k larger than the index returns everything
	all := store.Search(context.Background(), "apple", 10)
	if len(all) != 4 {
		t.Errorf("got %d results, want all 4", len(all))
	}
}

func TestSearchBySource(t *testing.T) {
	store := New("sess-6", &fakeEmbedder{})
	defer store.Cleanup()

	chunks := []models.Chunk{
		testChunk("c1", "apple one", "a.txt"),
		testChunk("c2", "banana two", "b.txt"),
		testChunk("c3", "apple three", "a.txt"),
	}
	if err := store.Add(context.Background(), chunks); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := store.SearchBySource("a.txt", 10)
	if err != nil {
		t.Fatalf("SearchBySource() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2", len(got))
	}
	for _, c := range got {
		if c.Metadata.Source != "a.txt" {
			t.Errorf("chunk source = %q, want a.txt", c.Metadata.Source)
		}
	}

	// Unknown source yields nothing
	none, err := store.SearchBySource("missing.txt", 10)
	if err != nil {
		t.Fatalf("SearchBySource() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d chunks for unknown source, want 0", len(none))
	}
}

func TestSample(t *testing.T) {
	store := New("sess-7", &fakeEmbedder{})
	defer store.Cleanup()

	// Empty store samples nothing
	got, err := store.Sample(5)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Sample on empty store = %d chunks, want 0", len(got))
	}

	chunks := []models.Chunk{
		testChunk("c1", "apple", "a.txt"),
		testChunk("c2", "banana", "a.txt"),
		testChunk("c3", "cherry", "b.txt"),
	}
	if err := store.Add(context.Background(), chunks); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err = store.Sample(2)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d chunks, want 2", len(got))
	}
}

func TestRetriever(t *testing.T) {
	store := New("sess-8", &fakeEmbedder{})
	defer store.Cleanup()

	if r := store.Retriever(3); r != nil {
		t.Error("Retriever on empty store should be nil")
	}

	if err := store.Add(context.Background(), []models.Chunk{testChunk("c1", "apple", "a.txt")}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	r := store.Retriever(3)
	if r == nil {
		t.Fatal("Retriever should not be nil after Add")
	}
	if got := r(context.Background(), "apple"); len(got) != 1 {
		t.Errorf("retriever returned %d chunks, want 1", len(got))
	}
}

func TestCleanup_Idempotent(t *testing.T) {
	store := New("sess-9", &fakeEmbedder{})

	// Cleanup on a never-populated store is a no-op
	store.Cleanup()
	store.Cleanup()

	if err := store.Add(context.Background(), []models.Chunk{testChunk("c1", "apple", "a.txt")}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	dir := store.dir
	if dir == "" {
		t.Fatal("expected index directory after Add")
	}

	store.Cleanup()
	if store.HasDocuments() {
		t.Error("store should have no documents after Cleanup")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("index directory %s should be removed", dir)
	}

	// Second cleanup has no further effect
	store.Cleanup()
	if got := store.Search(context.Background(), "apple", 3); len(got) != 0 {
		t.Errorf("Search after Cleanup = %d chunks, want 0", len(got))
	}
}

func TestAdd_MultipleBatches(t *testing.T) {
	store := New("sess-10", &fakeEmbedder{})
	defer store.Cleanup()

	if err := store.Add(context.Background(), []models.Chunk{testChunk("c1", "apple", "a.txt")}); err != nil {
		t.Fatalf("first Add() error = %v", err)
	}
	if err := store.Add(context.Background(), []models.Chunk{testChunk("c2", "banana", "b.txt")}); err != nil {
		t.Fatalf("second Add() error = %v", err)
	}

	all := store.Search(context.Background(), "apple banana", 10)
	if len(all) != 2 {
		t.Errorf("got %d chunks after two adds, want 2", len(all))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"length mismatch", []float64{1, 0}, []float64{1}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("CosineSimilarity = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vec := []float64{0.25, -1.5, 3.75, 0}
	got := blobToVector(vectorToBlob(vec))

	if len(got) != len(vec) {
		t.Fatalf("round trip length = %d, want %d", len(got), len(vec))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("element %d = %f, want %f", i, got[i], vec[i])
		}
	}
}

// ABOUTME: Per-session vector store backed by an ephemeral on-disk SQLite index
// ABOUTME: Embeds chunks on add, ranks by cosine similarity on search, removed on cleanup
package vectorstore

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/docuchat/docuchat/internal/models"
	_ "modernc.org/sqlite"
)

// Embedder converts text into a fixed-dimension embedding vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// RetrieverFunc is a reusable query-to-chunks function bound to a fixed top-k.
type RetrieverFunc func(ctx context.Context, query string) []models.Chunk

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    source TEXT NOT NULL,
    page INTEGER DEFAULT 0,
    upload_time DATETIME,
    vector BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_source ON chunks(source);
`

// Store holds one session's chunk index. The index is created lazily on the
// first successful Add and lives in a session-scoped temporary directory
// until Cleanup. All operations hold the store mutex; concurrent add,
// search, and cleanup on the same session serialize here.
type Store struct {
	sessionID string
	embedder  Embedder

	mu  sync.Mutex
	db  *sql.DB
	dir string
}

// New creates an empty store for the session. No storage is allocated
// until the first Add.
func New(sessionID string, embedder Embedder) *Store {
	return &Store{
		sessionID: sessionID,
		embedder:  embedder,
	}
}

// Add embeds the chunks and inserts them into the session index,
// allocating the index on first use. All chunks are embedded before any
// row is written, so an embedding failure leaves the index unchanged.
func (s *Store) Add(ctx context.Context, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	vectors := make([][]float64, len(chunks))
	for i, c := range chunks {
		vec, err := s.embedder.GenerateEmbedding(ctx, c.Content)
		if err != nil {
			return fmt.Errorf("embedding failed for chunk %d of %d: %w", i+1, len(chunks), err)
		}
		vectors[i] = vec
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureIndex(); err != nil {
		return fmt.Errorf("index allocation failed: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("index write failed: %w", err)
	}

	for i, c := range chunks {
		_, err := tx.Exec(`
			INSERT INTO chunks (id, content, source, page, upload_time, vector)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, c.Content, c.Metadata.Source, c.Metadata.Page, c.Metadata.UploadTime, vectorToBlob(vectors[i]))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("index write failed: %w", err)
		}
	}

	return tx.Commit()
}

// Search embeds the query and returns up to k chunks ordered by decreasing
// cosine similarity. A store with no index returns an empty result, never
// an error; internal failures are logged and return empty as well.
func (s *Store) Search(ctx context.Context, query string, k int) []models.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	queryVec, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("search embedding failed for session %s: %v", s.sessionID, err)
		return nil
	}

	rows, err := s.db.Query(`SELECT id, content, source, page, upload_time, vector FROM chunks`)
	if err != nil {
		log.Printf("search query failed for session %s: %v", s.sessionID, err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var scored []models.ScoredChunk
	for rows.Next() {
		chunk, blob, err := scanChunk(rows)
		if err != nil {
			log.Printf("search scan failed for session %s: %v", s.sessionID, err)
			return nil
		}
		scored = append(scored, models.ScoredChunk{
			Chunk: chunk,
			Score: CosineSimilarity(queryVec, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		log.Printf("search iteration failed for session %s: %v", s.sessionID, err)
		return nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	chunks := make([]models.Chunk, len(scored))
	for i, sc := range scored {
		chunks[i] = sc.Chunk
	}
	return chunks
}

// SearchBySource returns up to k chunks tagged with the given source
// filename, in document order.
func (s *Store) SearchBySource(source string, k int) ([]models.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT id, content, source, page, upload_time, vector
		FROM chunks WHERE source = ? ORDER BY rowid LIMIT ?
	`, source, k)
	if err != nil {
		return nil, fmt.Errorf("source lookup failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectChunks(rows)
}

// Sample returns up to k chunks across all documents, in insertion order.
func (s *Store) Sample(k int) ([]models.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT id, content, source, page, upload_time, vector
		FROM chunks ORDER BY rowid LIMIT ?
	`, k)
	if err != nil {
		return nil, fmt.Errorf("sample lookup failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectChunks(rows)
}

// Retriever returns a query function bound to top-k, or nil if no index exists.
func (s *Store) Retriever(k int) RetrieverFunc {
	if !s.HasDocuments() {
		return nil
	}
	return func(ctx context.Context, query string) []models.Chunk {
		return s.Search(ctx, query, k)
	}
}

// HasDocuments reports whether the index has been created.
func (s *Store) HasDocuments() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

// Cleanup closes the index and deletes its backing storage. Idempotent and
// safe to call on a store that never received documents.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("error closing index for session %s: %v", s.sessionID, err)
		}
		s.db = nil
	}

	if s.dir != "" {
		if err := os.RemoveAll(s.dir); err != nil {
			log.Printf("error removing index directory %s: %v", s.dir, err)
		} else {
			log.Printf("cleaned up index directory: %s", s.dir)
		}
		s.dir = ""
	}
}

// ensureIndex creates the on-disk index on first use. Caller holds the mutex.
func (s *Store) ensureIndex() error {
	if s.db != nil {
		return nil
	}

	dir, err := os.MkdirTemp("", fmt.Sprintf("docuchat_%s_", s.sessionID))
	if err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "index.db")+"?_pragma=journal_mode(WAL)")
	if err != nil {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("failed to open index database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = os.RemoveAll(dir)
		return fmt.Errorf("failed to initialize index schema: %w", err)
	}

	s.db = db
	s.dir = dir
	return nil
}

// scanChunk reads one chunk row plus its vector blob.
func scanChunk(rows *sql.Rows) (models.Chunk, []byte, error) {
	var (
		chunk      models.Chunk
		uploadTime time.Time
		blob       []byte
	)
	if err := rows.Scan(&chunk.ID, &chunk.Content, &chunk.Metadata.Source, &chunk.Metadata.Page, &uploadTime, &blob); err != nil {
		return models.Chunk{}, nil, err
	}
	chunk.Metadata.UploadTime = uploadTime
	return chunk, blob, nil
}

// collectChunks drains rows into a chunk slice.
func collectChunks(rows *sql.Rows) ([]models.Chunk, error) {
	var chunks []models.Chunk
	for rows.Next() {
		chunk, _, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

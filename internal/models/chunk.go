// ABOUTME: Chunk represents a bounded span of document text with source metadata
// ABOUTME: Produced by the document processor and stored in the per-session vector index
package models

import "time"

// Chunk is a bounded span of document text with attached source metadata.
type Chunk struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Metadata carries the provenance of a chunk.
// Page is 1-based for paginated formats and 0 when the format has no pages.
type Metadata struct {
	Source     string    `json:"source"`
	UploadTime time.Time `json:"upload_time"`
	Page       int       `json:"page,omitempty"`
}

// ScoredChunk pairs a chunk with its similarity score from a vector search.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

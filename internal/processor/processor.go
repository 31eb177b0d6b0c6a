// ABOUTME: Document processor that loads files and splits them into chunks
// ABOUTME: Selects a loader by extension and stamps source metadata on every chunk
package processor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/docuchat/docuchat/internal/models"
	"github.com/google/uuid"
)

// ErrUnsupportedFileType is returned for file extensions with no loader.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// SupportedExtensions lists the file extensions the processor can load.
func SupportedExtensions() []string {
	return []string{".txt", ".pdf", ".docx"}
}

// Supported reports whether the filename has a loadable extension.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}

// Processor loads documents and splits them into overlapping chunks.
type Processor struct {
	splitter *Splitter
}

// New creates a processor with the given chunking parameters.
func New(chunkSize, chunkOverlap int) *Processor {
	return &Processor{
		splitter: NewSplitter(chunkSize, chunkOverlap),
	}
}

// Process loads the file at path and returns its text as chunks stamped
// with the declared filename and the upload time.
func (p *Processor) Process(path, filename string) ([]models.Chunk, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	now := time.Now()

	switch ext {
	case ".txt":
		text, err := loadText(path)
		if err != nil {
			return nil, fmt.Errorf("error processing file %s: %w", filename, err)
		}
		return p.chunksFromText(text, filename, now, 0), nil

	case ".pdf":
		pages, err := loadPDF(path)
		if err != nil {
			return nil, fmt.Errorf("error processing file %s: %w", filename, err)
		}
		var chunks []models.Chunk
		for _, page := range pages {
			chunks = append(chunks, p.chunksFromText(page.Text, filename, now, page.Number)...)
		}
		return chunks, nil

	case ".docx":
		text, err := loadDocx(path)
		if err != nil {
			return nil, fmt.Errorf("error processing file %s: %w", filename, err)
		}
		return p.chunksFromText(text, filename, now, 0), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filename)
	}
}

// chunksFromText splits text and attaches metadata to each chunk.
func (p *Processor) chunksFromText(text, filename string, uploadTime time.Time, page int) []models.Chunk {
	parts := p.splitter.Split(text)

	chunks := make([]models.Chunk, 0, len(parts))
	for _, part := range parts {
		chunks = append(chunks, models.Chunk{
			ID:      uuid.New().String(),
			Content: part,
			Metadata: models.Metadata{
				Source:     filename,
				UploadTime: uploadTime,
				Page:       page,
			},
		})
	}
	return chunks
}

// ABOUTME: Character splitter producing overlapping chunks from document text
// ABOUTME: Breaks at sentence or line boundaries where possible, hard-cuts otherwise
package processor

import "unicode/utf8"

// Splitter splits text into overlapping chunks of bounded size.
// Chunks are exact substrings of the input so that consecutive chunks
// share the configured overlap region. Cut points always land on rune
// boundaries; a chunk is never invalid UTF-8 for valid input.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
}

// NewSplitter creates a splitter. Overlap must be smaller than size.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Split returns the text as overlapping substrings no longer than the chunk size.
func (s *Splitter) Split(text string) []string {
	if len(text) == 0 {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + s.chunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		end = snapToRuneStart(text, end, start)

		// Prefer a sentence or line boundary in the second half of the window
		for i := end; i > start+s.chunkSize/2; i-- {
			b := text[i-1]
			if b == '.' || b == '!' || b == '?' || b == '\n' {
				end = i
				break
			}
		}

		chunks = append(chunks, text[start:end])

		// Step forward keeping the overlap region; always make progress
		next := snapToRuneStart(text, end-s.chunkOverlap, start)
		if next <= start {
			_, size := utf8.DecodeRuneInString(text[start:])
			next = start + size
		}
		start = next
	}

	return chunks
}

// snapToRuneStart moves i back to the nearest rune boundary, never past floor.
func snapToRuneStart(text string, i, floor int) int {
	for i > floor && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

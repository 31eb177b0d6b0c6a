// ABOUTME: Local lexical statistics over document chunks
// ABOUTME: Counts, sentence estimation, and top keyword extraction with a stopword filter
package insights

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docuchat/docuchat/internal/models"
)

var (
	wordRe     = regexp.MustCompile(`\b\w+\b`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// stopWords are excluded from keyword extraction.
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "can": true, "a": true, "an": true,
	"this": true, "that": true, "these": true, "those": true,
}

// computeStats derives lexical statistics from the document's chunks.
func computeStats(chunks []models.Chunk) models.DocumentStats {
	stats := models.DocumentStats{
		TotalChunks: len(chunks),
		TopKeywords: []models.KeywordCount{},
	}
	if len(chunks) == 0 {
		return stats
	}

	var allText strings.Builder
	for i, c := range chunks {
		stats.TotalCharacters += len(c.Content)
		stats.TotalWords += len(strings.Fields(c.Content))
		if i > 0 {
			allText.WriteString(" ")
		}
		allText.WriteString(c.Content)
	}

	text := allText.String()
	stats.EstimatedSentences = len(sentenceRe.FindAllString(text, -1))
	stats.AvgWordsPerChunk = stats.TotalWords / len(chunks)
	stats.TopKeywords = topKeywords(text, 5)

	return stats
}

// topKeywords returns the most frequent non-stopword keywords. The ten most
// common words are considered before the stopword filter is applied, so
// stopword-heavy text can yield fewer than limit keywords.
func topKeywords(text string, limit int) []models.KeywordCount {
	counts := make(map[string]int)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		counts[w]++
	}

	ranked := make([]models.KeywordCount, 0, len(counts))
	for w, n := range counts {
		ranked = append(ranked, models.KeywordCount{Word: w, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	keywords := make([]models.KeywordCount, 0, limit)
	for _, kc := range ranked {
		if stopWords[kc.Word] {
			continue
		}
		keywords = append(keywords, kc)
		if len(keywords) == limit {
			break
		}
	}
	return keywords
}

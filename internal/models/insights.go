// ABOUTME: Insight bundles returned by the insight generator
// ABOUTME: Plain structured records with no persistent identity
package models

// KeywordCount is a keyword with its occurrence count.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// DocumentStats holds lexical statistics computed locally over a document's chunks.
type DocumentStats struct {
	TotalChunks        int            `json:"total_chunks"`
	TotalCharacters    int            `json:"total_characters"`
	TotalWords         int            `json:"total_words"`
	EstimatedSentences int            `json:"estimated_sentences"`
	AvgWordsPerChunk   int            `json:"avg_words_per_chunk"`
	TopKeywords        []KeywordCount `json:"top_keywords"`
}

// DocumentInsights is generated once when a document is uploaded.
type DocumentInsights struct {
	Statistics         DocumentStats `json:"statistics"`
	AIAnalysis         string        `json:"ai_analysis"`
	SuggestedQuestions []string      `json:"suggested_questions"`
}

// ContextualInsights is generated per question against the session's index.
// Message is set instead of the other fields when no relevant content was found.
type ContextualInsights struct {
	ContextualAnalysis  string   `json:"contextual_analysis,omitempty"`
	QuestionType        string   `json:"question_type,omitempty"`
	RelatedContentFound int      `json:"related_content_found,omitempty"`
	SuggestedFollowUps  []string `json:"suggested_follow_ups,omitempty"`
	Message             string   `json:"message,omitempty"`
}

// SummaryResult is the outcome of a document summarization request.
type SummaryResult struct {
	Summary        string `json:"summary"`
	ChunksAnalyzed int    `json:"chunks_analyzed"`
	DocumentScope  string `json:"document_scope"`
}

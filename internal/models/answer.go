// ABOUTME: Answer types returned by the RAG pipeline and the chatbot facade
// ABOUTME: Sources carry excerpt, filename, and page for every consulted chunk
package models

// Source identifies a chunk the language model consulted for an answer.
// Content is truncated to 200 characters with an ellipsis suffix.
type Source struct {
	Content string `json:"content"`
	Source  string `json:"source"`
	Page    string `json:"page"`
}

// Answer is a grounded answer produced by the RAG pipeline.
type Answer struct {
	Answer   string   `json:"answer"`
	Sources  []Source `json:"sources"`
	Question string   `json:"question"`
}

// ChatResponse merges a RAG answer with contextual insights for the question.
type ChatResponse struct {
	Answer   string              `json:"answer"`
	Sources  []Source            `json:"sources"`
	Question string              `json:"question"`
	Insights *ContextualInsights `json:"insights,omitempty"`
}

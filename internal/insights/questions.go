// ABOUTME: Heuristic question suggestion and follow-up generation
// ABOUTME: Fixed ordered trigger lists and per-category follow-up templates
package insights

import (
	"strings"

	"github.com/docuchat/docuchat/internal/models"
)

// suggestionTriggers map content keywords to a templated question, checked
// in order against a sample of the document.
var suggestionTriggers = []struct {
	keywords []string
	question string
}{
	{[]string{"process", "method"}, "How does this process work?"},
	{[]string{"result", "conclusion"}, "What are the main results or conclusions?"},
	{[]string{"problem", "issue"}, "What problems or issues are discussed?"},
	{[]string{"recommendation", "suggest"}, "What are the key recommendations?"},
}

// genericQuestions are always appended after the triggered ones.
var genericQuestions = []string{
	"What is the main purpose of this document?",
	"What are the key takeaways?",
	"Can you summarize the main points?",
}

const maxSuggestedQuestions = 5

// suggestQuestions derives up to five questions from the first two chunks.
func suggestQuestions(chunks []models.Chunk) []string {
	var sample strings.Builder
	for i, c := range chunks {
		if i == 2 {
			break
		}
		if i > 0 {
			sample.WriteString("\n")
		}
		sample.WriteString(c.Content)
	}
	lower := strings.ToLower(sample.String())

	var questions []string
	for _, trigger := range suggestionTriggers {
		for _, kw := range trigger.keywords {
			if strings.Contains(lower, kw) {
				questions = append(questions, trigger.question)
				break
			}
		}
	}

	questions = append(questions, genericQuestions...)
	if len(questions) > maxSuggestedQuestions {
		questions = questions[:maxSuggestedQuestions]
	}
	return questions
}

// followUpTemplates are the per-category follow-up question sets.
var followUpTemplates = map[string][]string{
	CategoryDefinitional: {
		"Can you provide more details about this?",
		"What are some examples of this?",
		"How does this relate to other concepts?",
	},
	CategoryProcess: {
		"What are the steps involved?",
		"What tools or resources are needed?",
		"What are common challenges in this process?",
	},
	CategoryCausal: {
		"What are the implications of this?",
		"Are there alternative explanations?",
		"What evidence supports this reasoning?",
	},
}

// defaultFollowUps serve every category without a dedicated template set.
var defaultFollowUps = []string{
	"Can you elaborate on this topic?",
	"What additional context is available?",
	"Are there related topics I should explore?",
}

const maxFollowUps = 3

// followUpQuestions returns up to three follow-ups for the question's category.
func followUpQuestions(question string) []string {
	followUps, ok := followUpTemplates[classifyQuestion(question)]
	if !ok {
		followUps = defaultFollowUps
	}
	if len(followUps) > maxFollowUps {
		followUps = followUps[:maxFollowUps]
	}
	return followUps
}

// ABOUTME: Keyword-based question classification into nine fixed categories
// ABOUTME: Ordered rule list with first-match-wins precedence
package insights

import "strings"

// Question categories, in classification precedence order.
const (
	CategoryDefinitional = "Definitional/Explanatory"
	CategoryProcess      = "Process/Method"
	CategoryCausal       = "Causal/Reasoning"
	CategoryTemporal     = "Temporal"
	CategoryLocation     = "Location-based"
	CategoryPerson       = "Person/Entity"
	CategoryComparative  = "Comparative"
	CategoryListing      = "Listing/Examples"
	CategoryGeneral      = "General Inquiry"
)

// classificationRules is an ordered rule list. The first category whose
// keyword matches wins; keywords match as substrings of the lowercased
// question.
var classificationRules = []struct {
	category string
	keywords []string
}{
	{CategoryDefinitional, []string{"what", "define", "explain", "describe"}},
	{CategoryProcess, []string{"how", "process", "method", "way"}},
	{CategoryCausal, []string{"why", "reason", "cause", "because"}},
	{CategoryTemporal, []string{"when", "time", "date", "period"}},
	{CategoryLocation, []string{"where", "location", "place"}},
	{CategoryPerson, []string{"who", "person", "people", "author"}},
	{CategoryComparative, []string{"compare", "difference", "similar", "versus"}},
	{CategoryListing, []string{"list", "examples", "types", "kinds"}},
}

// classifyQuestion maps any question to exactly one category.
func classifyQuestion(question string) string {
	lower := strings.ToLower(question)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

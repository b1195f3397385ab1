package quiz

import (
	"strings"

	"github.com/azureprep/quiz-service/internal/models"
)

// DetectRule pairs a predicate over the lower-cased prompt with the type it
// classifies. Rules are evaluated in order, first match wins.
type DetectRule struct {
	Type  models.QuestionType
	Match func(lower string) bool
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// DetectRules is the ordered classification rule list. Classification is a
// heuristic over prompt phrasing; a prompt satisfying multiple cues resolves
// to the first rule matched.
var DetectRules = []DetectRule{
	{
		Type: models.TypeOrdering,
		Match: func(lower string) bool {
			return containsAny(lower, "arrange", "order the", "sequence", "correct order")
		},
	},
	{
		Type: models.TypeCaseStudy,
		Match: func(lower string) bool {
			return containsAny(lower, "case study", "scenario:") ||
				(strings.Contains(lower, "company") && len(lower) > 300)
		},
	},
	{
		Type: models.TypeDropdownCommand,
		Match: func(lower string) bool {
			return containsAny(lower, "complete", "fill") &&
				containsAny(lower, "command", "cli", "powershell", "az ")
		},
	},
	{
		Type: models.TypeDropdownSingle,
		Match: func(lower string) bool {
			return containsAny(lower, "which command", "select the correct", "___", "[select]")
		},
	},
}

// DetectType classifies a question prompt into its interaction type.
func DetectType(prompt string) models.QuestionType {
	lower := strings.ToLower(prompt)
	for _, rule := range DetectRules {
		if rule.Match(lower) {
			return rule.Type
		}
	}
	return models.TypeStandard
}

package quiz

import (
	"slices"
	"strings"

	"github.com/azureprep/quiz-service/internal/models"
)

// ParseSelection splits a raw selection value into labels. Ordering and
// dropdown answers arrive as a single comma-separated value.
func ParseSelection(raw string) []string {
	if !strings.Contains(raw, ",") {
		return []string{raw}
	}

	var labels []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}
	return labels
}

// ValidateAnswer decides correctness of a selection for the given question
// type. An empty selection is always incorrect.
func ValidateAnswer(selected, correct []string, questionType models.QuestionType) bool {
	if len(selected) == 0 {
		return false
	}

	switch questionType {
	case models.TypeOrdering, models.TypeDropdownCommand:
		// Positional equality: a set-equal but order-different answer fails.
		if len(selected) != len(correct) {
			return false
		}
		for i, label := range selected {
			if label != correct[i] {
				return false
			}
		}
		return true

	case models.TypeStandard, models.TypeDropdownSingle, models.TypeCaseStudy:
		if len(correct) > 1 {
			// Exact set equality: no extras, no omissions.
			if len(selected) != len(correct) {
				return false
			}
			for _, label := range selected {
				if !slices.Contains(correct, label) {
					return false
				}
			}
			return true
		}
		return len(selected) == 1 && selected[0] == correct[0]

	default:
		return false
	}
}

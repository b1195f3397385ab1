package quiz

import (
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/azureprep/quiz-service/internal/models"
)

var optionPrefix = regexp.MustCompile(`^[A-D]\)\s*`)

// ShuffleSlice returns a uniformly random permutation of s using
// Fisher-Yates. The input is never mutated.
func ShuffleSlice[T any](s []T) []T {
	shuffled := make([]T, len(s))
	copy(shuffled, s)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// ShuffleQuestion permutes the four options of a question and re-labels them
// A-D in the new order, translating the correct-answer set into display
// labels. The option-text multiset is unchanged and
// len(DisplayCorrectAnswers) == len(CorrectAnswers).
func ShuffleQuestion(q models.Question) models.ShuffledQuestion {
	options := make([]models.ShuffledOption, len(q.Options))
	for i, text := range q.Options {
		options[i] = models.ShuffledOption{
			OriginalLabel: models.OptionLabels[i],
			Text:          strings.TrimSpace(optionPrefix.ReplaceAllString(text, "")),
		}
	}

	shuffled := ShuffleSlice(options)
	mapping := make(map[string]string, len(shuffled))
	for i := range shuffled {
		shuffled[i].DisplayLabel = models.OptionLabels[i]
		mapping[shuffled[i].OriginalLabel] = shuffled[i].DisplayLabel
	}

	display := make([]string, len(q.CorrectAnswers))
	for i, label := range q.CorrectAnswers {
		if mapped, ok := mapping[label]; ok {
			display[i] = mapped
		} else {
			display[i] = label
		}
	}

	return models.ShuffledQuestion{
		Question:              q,
		ShuffledOptions:       shuffled,
		DisplayCorrectAnswers: display,
	}
}

// ShuffleQuestions randomizes question order and then the options within
// each question, independently per question.
func ShuffleQuestions(questions []models.Question) []models.ShuffledQuestion {
	order := ShuffleSlice(questions)

	shuffled := make([]models.ShuffledQuestion, len(order))
	for i, q := range order {
		shuffled[i] = ShuffleQuestion(q)
	}
	return shuffled
}

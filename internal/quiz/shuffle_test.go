package quiz

import (
	"sort"
	"testing"

	"github.com/azureprep/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestion() models.Question {
	return models.Question{
		ID:     1,
		Domain: models.DomainStorage,
		Question: "Which storage redundancy option replicates data to a " +
			"secondary region?",
		Options:        []string{"LRS", "ZRS", "GRS", "Premium LRS"},
		MultiSelect:    false,
		CorrectAnswers: []string{"C"},
	}
}

func TestShuffleSliceIsPermutation(t *testing.T) {
	input := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	for i := 0; i < 50; i++ {
		shuffled := ShuffleSlice(input)
		require.Len(t, shuffled, len(input))

		sorted := make([]int, len(shuffled))
		copy(sorted, shuffled)
		sort.Ints(sorted)
		assert.Equal(t, input, sorted, "shuffle must preserve the multiset")
	}
}

func TestShuffleSliceDoesNotMutateInput(t *testing.T) {
	input := []string{"a", "b", "c", "d"}
	snapshot := []string{"a", "b", "c", "d"}

	for i := 0; i < 20; i++ {
		ShuffleSlice(input)
	}
	assert.Equal(t, snapshot, input)
}

func TestShuffleQuestionPreservesCorrectCardinality(t *testing.T) {
	q := sampleQuestion()
	q.MultiSelect = true
	q.CorrectAnswers = []string{"A", "C"}

	for i := 0; i < 50; i++ {
		shuffled := ShuffleQuestion(q)
		assert.Len(t, shuffled.DisplayCorrectAnswers, len(q.CorrectAnswers))
		assert.Len(t, shuffled.ShuffledOptions, 4)
	}
}

func TestShuffleQuestionLabelMappingRoundTrip(t *testing.T) {
	q := sampleQuestion()
	q.CorrectAnswers = []string{"B", "D"}

	for i := 0; i < 50; i++ {
		shuffled := ShuffleQuestion(q)

		// Invert the recorded mapping and walk the display labels back.
		inverse := make(map[string]string)
		for original, display := range shuffled.LabelMapping() {
			inverse[display] = original
		}

		recovered := make([]string, len(shuffled.DisplayCorrectAnswers))
		for j, display := range shuffled.DisplayCorrectAnswers {
			recovered[j] = inverse[display]
		}
		assert.Equal(t, q.CorrectAnswers, recovered)
	}
}

func TestShuffleQuestionPreservesOptionTexts(t *testing.T) {
	q := sampleQuestion()
	shuffled := ShuffleQuestion(q)

	texts := make([]string, 0, 4)
	for _, opt := range shuffled.ShuffledOptions {
		texts = append(texts, opt.Text)
	}
	assert.ElementsMatch(t, q.Options, texts)
}

func TestShuffleQuestionStripsOptionPrefixes(t *testing.T) {
	q := sampleQuestion()
	q.Options = []string{"A) LRS", "B) ZRS", "C) GRS", "D) Premium LRS"}

	shuffled := ShuffleQuestion(q)
	texts := make([]string, 0, 4)
	for _, opt := range shuffled.ShuffledOptions {
		texts = append(texts, opt.Text)
	}
	assert.ElementsMatch(t, []string{"LRS", "ZRS", "GRS", "Premium LRS"}, texts)
}

func TestShuffleQuestionsKeepsEveryQuestion(t *testing.T) {
	questions := make([]models.Question, 10)
	for i := range questions {
		q := sampleQuestion()
		q.ID = i + 1
		questions[i] = q
	}

	shuffled := ShuffleQuestions(questions)
	require.Len(t, shuffled, len(questions))

	seen := make(map[int]bool)
	for _, sq := range shuffled {
		seen[sq.ID] = true
	}
	assert.Len(t, seen, len(questions))
}

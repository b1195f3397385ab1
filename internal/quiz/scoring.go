package quiz

import (
	"fmt"
	"math"

	"github.com/azureprep/quiz-service/internal/models"
)

const (
	scorePenaltyPerHint = 2  // Percentage points
	timePenaltyPerHint  = 10 // Seconds
)

// CalculateScore computes the percentage score with the configured hint
// penalty applied. Only the "score" penalty type affects the score.
func CalculateScore(correctAnswers, totalQuestions, hintsUsed int, penaltyType models.PenaltyType) float64 {
	baseScore := float64(correctAnswers) / float64(totalQuestions) * 100

	if penaltyType == models.PenaltyScore {
		return math.Max(0, baseScore-float64(hintsUsed*scorePenaltyPerHint))
	}
	return baseScore
}

// ApplyTimePenalty returns the reported elapsed seconds. Only the "time"
// penalty type adds seconds per hint used.
func ApplyTimePenalty(elapsedSeconds, hintsUsed int, penaltyType models.PenaltyType) int {
	if penaltyType == models.PenaltyTime {
		return elapsedSeconds + hintsUsed*timePenaltyPerHint
	}
	return elapsedSeconds
}

// FormatTime renders seconds as zero-padded mm:ss. Minutes are unbounded:
// 3661s formats as "61:01".
func FormatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// CalculateStats assembles the final statistics of a completed session.
// A perfect run means every question was answered and answered correctly,
// independent of hint usage.
func CalculateStats(totalQuestions, questionsAnswered, correctAnswers, hintsUsed, elapsedSeconds int, penaltyType models.PenaltyType) models.QuizStats {
	score := CalculateScore(correctAnswers, totalQuestions, hintsUsed, penaltyType)

	return models.QuizStats{
		TotalQuestions:    totalQuestions,
		QuestionsAnswered: questionsAnswered,
		CorrectAnswers:    correctAnswers,
		HintsUsed:         hintsUsed,
		TotalTime:         ApplyTimePenalty(elapsedSeconds, hintsUsed, penaltyType),
		Score:             math.Round(score*100) / 100,
		IsPerfectRun:      correctAnswers == totalQuestions && questionsAnswered == totalQuestions,
	}
}

package models

import "time"

// QuizMode selects the behavior of a session.
type QuizMode string

const (
	ModePractice QuizMode = "practice"
	ModeExam     QuizMode = "exam"
)

// PenaltyType is the configured trade-off applied for hint usage.
type PenaltyType string

const (
	PenaltyScore PenaltyType = "score"
	PenaltyTime  PenaltyType = "time"
	PenaltyNone  PenaltyType = "none"
)

// QuizSettings are the per-exam persisted settings.
type QuizSettings struct {
	PenaltyType PenaltyType `json:"penalty_type" validate:"omitempty,penalty_type"`
}

// DefaultSettings apply when nothing is stored for an exam.
func DefaultSettings() QuizSettings {
	return QuizSettings{PenaltyType: PenaltyScore}
}

// Correctness is the tri-state result of the current question.
type Correctness string

const (
	CorrectnessUnknown   Correctness = "unknown"
	CorrectnessCorrect   Correctness = "correct"
	CorrectnessIncorrect Correctness = "incorrect"
)

// MissedQuestion records an incorrectly answered question for the session
// summary. Accumulated until the session ends or restarts.
type MissedQuestion struct {
	Question        ShuffledQuestion `json:"question"`
	SelectedAnswers []string         `json:"selected_answers"`
	CorrectAnswers  []string         `json:"correct_answers"`
}

// QuizStats are the computed results of a completed session.
type QuizStats struct {
	TotalQuestions    int     `json:"total_questions"`
	QuestionsAnswered int     `json:"questions_answered"`
	CorrectAnswers    int     `json:"correct_answers"`
	HintsUsed         int     `json:"hints_used"`
	TotalTime         int     `json:"total_time"` // Seconds, penalty-adjusted
	Score             float64 `json:"score"`
	IsPerfectRun      bool    `json:"is_perfect_run"`
}

// QuizSummary extends QuizStats with the missed-question list.
type QuizSummary struct {
	QuizStats
	MissedQuestions []MissedQuestion `json:"missed_questions"`
}

// PerfectRunRecord is a persisted best-run record for an exam and mode.
type PerfectRunRecord struct {
	Score float64   `json:"score"`
	Time  int       `json:"time"` // Seconds, penalty-adjusted
	Date  time.Time `json:"date"`
	Mode  QuizMode  `json:"mode"`
}

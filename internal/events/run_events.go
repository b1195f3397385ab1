package events

import (
	"time"

	"github.com/azureprep/quiz-service/internal/models"
	"github.com/google/uuid"
)

// RunEventType identifies what happened to a quiz run.
type RunEventType string

const (
	RunCompleted RunEventType = "run.completed"
	PerfectRun   RunEventType = "run.perfect"
)

// RunEvent is published when a quiz session completes.
type RunEvent struct {
	ID        string          `json:"id"`
	Type      RunEventType    `json:"type"`
	Source    string          `json:"source"`
	Version   string          `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   RunEventPayload `json:"payload"`
}

// RunEventPayload carries the outcome of the completed run.
type RunEventPayload struct {
	Exam         string          `json:"exam"`
	Mode         models.QuizMode `json:"mode"`
	Score        float64         `json:"score"`
	TotalTime    int             `json:"total_time"`
	HintsUsed    int             `json:"hints_used"`
	Restarts     int             `json:"restarts"`
	IsPerfectRun bool            `json:"is_perfect_run"`
}

// NewRunEvent builds a run event for a completed session. Perfect runs get
// their own event type so downstream consumers can react without inspecting
// the payload.
func NewRunEvent(exam string, mode models.QuizMode, stats models.QuizStats, restarts int) *RunEvent {
	eventType := RunCompleted
	if stats.IsPerfectRun {
		eventType = PerfectRun
	}

	return &RunEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "quiz-service",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Payload: RunEventPayload{
			Exam:         exam,
			Mode:         mode,
			Score:        stats.Score,
			TotalTime:    stats.TotalTime,
			HintsUsed:    stats.HintsUsed,
			Restarts:     restarts,
			IsPerfectRun: stats.IsPerfectRun,
		},
	}
}

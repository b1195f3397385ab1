package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RunRecord archives one completed quiz session. Best-run records stay in
// the key-value gateway; this table keeps the full history for reporting.
type RunRecord struct {
	ID   uint     `json:"id" gorm:"primaryKey"`
	Exam string   `json:"exam" gorm:"not null;size:20;index" validate:"required"`
	Mode QuizMode `json:"mode" gorm:"not null;size:10;index" validate:"required,quiz_mode"`

	Score        float64 `json:"score" gorm:"not null"`
	TotalTime    int     `json:"total_time" gorm:"not null"` // Seconds, penalty-adjusted
	HintsUsed    int     `json:"hints_used" gorm:"default:0"`
	Restarts     int     `json:"restarts" gorm:"default:0"`
	IsPerfectRun bool    `json:"is_perfect_run" gorm:"default:false;index"`

	// Snapshot of the missed questions at completion, if any.
	MissedQuestions datatypes.JSON `json:"missed_questions" gorm:"type:jsonb"`

	CompletedAt time.Time      `json:"completed_at" gorm:"not null;index"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (RunRecord) TableName() string {
	return "run_records"
}

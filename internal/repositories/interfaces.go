package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/azureprep/quiz-service/internal/models"
	"gorm.io/gorm"
)

// RunRecordFilters narrows run-history listings.
type RunRecordFilters struct {
	Exam        string           `json:"exam"`
	Mode        *models.QuizMode `json:"mode"`
	PerfectOnly bool             `json:"perfect_only"`
	DateFrom    *time.Time       `json:"date_from"`
	DateTo      *time.Time       `json:"date_to"`
	Limit       int              `json:"limit"`
	Offset      int              `json:"offset"`
}

// RunRecordRepository archives completed quiz sessions.
type RunRecordRepository interface {
	Create(ctx context.Context, record *models.RunRecord) error
	GetByID(ctx context.Context, id uint) (*models.RunRecord, error)
	List(ctx context.Context, filters RunRecordFilters) ([]*models.RunRecord, int64, error)
	BestScore(ctx context.Context, exam string, mode models.QuizMode) (*models.RunRecord, error)
}

// IsNotFoundError reports whether err is a record-not-found condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

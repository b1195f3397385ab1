package postgres

import (
	"context"

	"github.com/azureprep/quiz-service/internal/models"
	"github.com/azureprep/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type RunRecordPostgreSQL struct {
	db *gorm.DB
}

func NewRunRecordPostgreSQL(db *gorm.DB) repositories.RunRecordRepository {
	return &RunRecordPostgreSQL{db: db}
}

func (r *RunRecordPostgreSQL) Create(ctx context.Context, record *models.RunRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *RunRecordPostgreSQL) GetByID(ctx context.Context, id uint) (*models.RunRecord, error) {
	var record models.RunRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *RunRecordPostgreSQL) List(ctx context.Context, filters repositories.RunRecordFilters) ([]*models.RunRecord, int64, error) {
	var records []*models.RunRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&models.RunRecord{})

	if filters.Exam != "" {
		query = query.Where("exam = ?", filters.Exam)
	}
	if filters.Mode != nil {
		query = query.Where("mode = ?", *filters.Mode)
	}
	if filters.PerfectOnly {
		query = query.Where("is_perfect_run = ?", true)
	}
	if filters.DateFrom != nil {
		query = query.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("completed_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Order("completed_at DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *RunRecordPostgreSQL) BestScore(ctx context.Context, exam string, mode models.QuizMode) (*models.RunRecord, error) {
	var record models.RunRecord
	err := r.db.WithContext(ctx).
		Where("exam = ? AND mode = ?", exam, mode).
		Order("score DESC, total_time ASC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

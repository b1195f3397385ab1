package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/azureprep/quiz-service/internal/events"
	"github.com/azureprep/quiz-service/internal/models"
	"github.com/azureprep/quiz-service/internal/repositories"
	"github.com/azureprep/quiz-service/internal/storage"
)

type recordService struct {
	gateway   *storage.RecordGateway
	runRepo   repositories.RunRecordRepository
	publisher events.RunEventPublisher
	logger    *slog.Logger
}

func NewRecordService(
	gateway *storage.RecordGateway,
	runRepo repositories.RunRecordRepository,
	publisher events.RunEventPublisher,
	logger *slog.Logger,
) RecordService {
	return &recordService{
		gateway:   gateway,
		runRepo:   runRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *recordService) Settings(ctx context.Context, exam string) models.QuizSettings {
	return s.gateway.GetSettings(ctx, exam)
}

func (s *recordService) SaveSettings(ctx context.Context, exam string, settings models.QuizSettings) bool {
	return s.gateway.SaveSettings(ctx, exam, settings)
}

func (s *recordService) BestRecord(ctx context.Context, exam string, mode models.QuizMode) *models.PerfectRunRecord {
	return s.gateway.BestRecord(ctx, exam, mode)
}

func (s *recordService) BestScoreRecord(ctx context.Context, exam string, mode models.QuizMode) *models.PerfectRunRecord {
	return s.gateway.BestScoreRecord(ctx, exam, mode)
}

// RecordCompletion persists everything a finished run produces. Failures in
// any sink are logged and swallowed: completing a quiz must never fail from
// the player's point of view.
func (s *recordService) RecordCompletion(ctx context.Context, exam string, mode models.QuizMode, stats models.QuizStats, restarts int, missed []models.MissedQuestion) {
	if stats.IsPerfectRun {
		s.gateway.SavePerfectRun(ctx, exam, stats.Score, stats.TotalTime, mode)
	}

	if s.runRepo != nil {
		record := &models.RunRecord{
			Exam:         exam,
			Mode:         mode,
			Score:        stats.Score,
			TotalTime:    stats.TotalTime,
			HintsUsed:    stats.HintsUsed,
			Restarts:     restarts,
			IsPerfectRun: stats.IsPerfectRun,
			CompletedAt:  time.Now().UTC(),
		}
		if len(missed) > 0 {
			if raw, err := json.Marshal(missed); err == nil {
				record.MissedQuestions = raw
			}
		}

		if err := s.runRepo.Create(ctx, record); err != nil {
			s.logger.Error("failed to archive run record",
				"exam", exam,
				"mode", mode,
				"error", err)
		}
	}

	event := events.NewRunEvent(exam, mode, stats, restarts)
	if err := s.publisher.PublishRunEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish run event",
			"exam", exam,
			"event_type", event.Type,
			"error", err)
	}
}

// ClearRecords wipes the stored settings and best-run records of one exam.
// The run-history archive is untouched.
func (s *recordService) ClearRecords(ctx context.Context, exam string) bool {
	cleared := s.gateway.ClearExam(ctx, exam)
	if cleared {
		s.logger.Info("cleared exam records", "exam", exam)
	}
	return cleared
}

func (s *recordService) ListRuns(ctx context.Context, filters repositories.RunRecordFilters) ([]*models.RunRecord, int64, error) {
	if s.runRepo == nil {
		return nil, 0, nil
	}
	return s.runRepo.List(ctx, filters)
}

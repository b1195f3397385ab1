package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/azureprep/quiz-service/internal/events"
	"github.com/azureprep/quiz-service/internal/models"
	"github.com/azureprep/quiz-service/internal/repositories"
	"github.com/azureprep/quiz-service/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRunRecordRepository is a mock implementation of RunRecordRepository
type MockRunRecordRepository struct {
	mock.Mock
}

func (m *MockRunRecordRepository) Create(ctx context.Context, record *models.RunRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRunRecordRepository) GetByID(ctx context.Context, id uint) (*models.RunRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.RunRecord), args.Error(1)
}

func (m *MockRunRecordRepository) List(ctx context.Context, filters repositories.RunRecordFilters) ([]*models.RunRecord, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.RunRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockRunRecordRepository) BestScore(ctx context.Context, exam string, mode models.QuizMode) (*models.RunRecord, error) {
	args := m.Called(ctx, exam, mode)
	return args.Get(0).(*models.RunRecord), args.Error(1)
}

func newRecordTestService(repo repositories.RunRecordRepository) (RecordService, *storage.MemoryStore, *events.MockRunEventPublisher) {
	logger := slog.Default()
	store := storage.NewMemoryStore()
	gateway := storage.NewRecordGateway(store, logger)
	publisher := events.NewMockRunEventPublisher(logger)
	return NewRecordService(gateway, repo, publisher, logger), store, publisher
}

func TestRecordCompletionArchivesRun(t *testing.T) {
	repo := new(MockRunRecordRepository)
	svc, _, publisher := newRecordTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.RunRecord) bool {
		return r.Exam == "az104" &&
			r.Mode == models.ModePractice &&
			r.Score == 80 &&
			r.Restarts == 1 &&
			!r.IsPerfectRun &&
			len(r.MissedQuestions) > 0
	})).Return(nil)

	stats := models.QuizStats{
		TotalQuestions:    10,
		QuestionsAnswered: 10,
		CorrectAnswers:    8,
		TotalTime:         300,
		Score:             80,
	}
	missed := []models.MissedQuestion{{SelectedAnswers: []string{"A"}, CorrectAnswers: []string{"B"}}}
	svc.RecordCompletion(context.Background(), "az104", models.ModePractice, stats, 1, missed)

	repo.AssertExpectations(t)

	published := publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.RunCompleted, published[0].Type)
}

func TestRecordCompletionPerfectRunSavesBestRecord(t *testing.T) {
	repo := new(MockRunRecordRepository)
	svc, _, publisher := newRecordTestService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	stats := models.QuizStats{
		TotalQuestions:    10,
		QuestionsAnswered: 10,
		CorrectAnswers:    10,
		TotalTime:         240,
		Score:             100,
		IsPerfectRun:      true,
	}
	svc.RecordCompletion(context.Background(), "az104", models.ModeExam, stats, 0, nil)

	best := svc.BestRecord(context.Background(), "az104", models.ModeExam)
	require.NotNil(t, best)
	assert.Equal(t, 240, best.Time)
	assert.Equal(t, float64(100), best.Score)

	published := publisher.PublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.PerfectRun, published[0].Type)
}

func TestRecordCompletionSurvivesArchiveFailure(t *testing.T) {
	repo := new(MockRunRecordRepository)
	svc, _, publisher := newRecordTestService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	stats := models.QuizStats{
		TotalQuestions:    5,
		QuestionsAnswered: 5,
		CorrectAnswers:    3,
		TotalTime:         90,
		Score:             60,
	}
	svc.RecordCompletion(context.Background(), "az204", models.ModePractice, stats, 0, nil)

	// The archive write failed but the event still went out.
	repo.AssertExpectations(t)
	assert.Len(t, publisher.PublishedEvents(), 1)
}

func TestRecordCompletionWithoutRepository(t *testing.T) {
	svc, _, publisher := newRecordTestService(nil)

	stats := models.QuizStats{
		TotalQuestions:    5,
		QuestionsAnswered: 5,
		CorrectAnswers:    5,
		TotalTime:         60,
		Score:             100,
		IsPerfectRun:      true,
	}
	svc.RecordCompletion(context.Background(), "az500", models.ModePractice, stats, 0, nil)

	require.NotNil(t, svc.BestRecord(context.Background(), "az500", models.ModePractice))
	assert.Len(t, publisher.PublishedEvents(), 1)
}

func TestClearRecordsWipesExamState(t *testing.T) {
	svc, _, _ := newRecordTestService(nil)
	ctx := context.Background()

	svc.SaveSettings(ctx, "az104", models.QuizSettings{PenaltyType: models.PenaltyTime})
	stats := models.QuizStats{
		TotalQuestions:    5,
		QuestionsAnswered: 5,
		CorrectAnswers:    5,
		TotalTime:         60,
		Score:             100,
		IsPerfectRun:      true,
	}
	svc.RecordCompletion(ctx, "az104", models.ModePractice, stats, 0, nil)
	require.NotNil(t, svc.BestRecord(ctx, "az104", models.ModePractice))

	require.True(t, svc.ClearRecords(ctx, "az104"))
	assert.Nil(t, svc.BestRecord(ctx, "az104", models.ModePractice))
	assert.Equal(t, models.PenaltyScore, svc.Settings(ctx, "az104").PenaltyType)
}

func TestListRunsDelegatesToRepository(t *testing.T) {
	repo := new(MockRunRecordRepository)
	svc, _, _ := newRecordTestService(repo)

	filters := repositories.RunRecordFilters{Exam: "az104", Limit: 10}
	expected := []*models.RunRecord{{Exam: "az104", Score: 70}}
	repo.On("List", mock.Anything, filters).Return(expected, int64(1), nil)

	runs, total, err := svc.ListRuns(context.Background(), filters)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, expected, runs)
	repo.AssertExpectations(t)
}

func TestListRunsWithoutRepository(t *testing.T) {
	svc, _, _ := newRecordTestService(nil)

	runs, total, err := svc.ListRuns(context.Background(), repositories.RunRecordFilters{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Nil(t, runs)
}

package services

import (
	"context"
	"log/slog"

	"github.com/azureprep/quiz-service/internal/events"
	"github.com/azureprep/quiz-service/internal/models"
	"github.com/azureprep/quiz-service/internal/questionbank"
	"github.com/azureprep/quiz-service/internal/repositories"
	"github.com/azureprep/quiz-service/internal/storage"
	"github.com/azureprep/quiz-service/internal/utils"
)

// SessionService drives quiz sessions through their state machine.
type SessionService interface {
	Create(ctx context.Context, req *CreateSessionRequest) (*SessionView, error)
	Get(ctx context.Context, id string) (*SessionView, error)
	Select(ctx context.Context, id string, req *SelectAnswerRequest) (*SessionView, error)
	Submit(ctx context.Context, id string) (*SessionView, error)
	Next(ctx context.Context, id string) (*SessionView, error)
	Restart(ctx context.Context, id string) (*SessionView, error)
	ShowHint(ctx context.Context, id string) (*SessionView, error)
	SetMode(ctx context.Context, id string, req *SetModeRequest) (*SessionView, error)
	UpdateSettings(ctx context.Context, id string, req *UpdateSettingsRequest) (*SessionView, error)
	Summary(ctx context.Context, id string) (*models.QuizSummary, error)
}

// RecordService owns durable quiz state: per-exam settings, best-run
// records, the run-history archive and run-completed events.
type RecordService interface {
	Settings(ctx context.Context, exam string) models.QuizSettings
	SaveSettings(ctx context.Context, exam string, settings models.QuizSettings) bool
	BestRecord(ctx context.Context, exam string, mode models.QuizMode) *models.PerfectRunRecord
	BestScoreRecord(ctx context.Context, exam string, mode models.QuizMode) *models.PerfectRunRecord
	RecordCompletion(ctx context.Context, exam string, mode models.QuizMode, stats models.QuizStats, restarts int, missed []models.MissedQuestion)
	ClearRecords(ctx context.Context, exam string) bool
	ListRuns(ctx context.Context, filters repositories.RunRecordFilters) ([]*models.RunRecord, int64, error)
}

// ExportService renders question banks and session summaries as XLSX.
type ExportService interface {
	ExportQuestionBank(ctx context.Context, exam string) ([]byte, error)
	ExportMissedQuestions(ctx context.Context, sessionID string) ([]byte, error)
}

// ServiceManager wires all services behind one accessor, mirroring how the
// handler layer consumes them.
type ServiceManager interface {
	Session() SessionService
	Record() RecordService
	Export() ExportService
}

type serviceManager struct {
	session SessionService
	record  RecordService
	export  ExportService
}

func NewServiceManager(
	bank *questionbank.Bank,
	gateway *storage.RecordGateway,
	runRepo repositories.RunRecordRepository,
	publisher events.RunEventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) ServiceManager {
	record := NewRecordService(gateway, runRepo, publisher, logger)
	session := NewSessionService(bank, record, logger, validator)
	export := NewExportService(bank, session, logger)

	return &serviceManager{
		session: session,
		record:  record,
		export:  export,
	}
}

func (m *serviceManager) Session() SessionService { return m.session }
func (m *serviceManager) Record() RecordService   { return m.record }
func (m *serviceManager) Export() ExportService   { return m.export }

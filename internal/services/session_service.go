package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/azureprep/quiz-service/internal/models"
	"github.com/azureprep/quiz-service/internal/questionbank"
	"github.com/azureprep/quiz-service/internal/quiz"
	"github.com/azureprep/quiz-service/internal/utils"
	"github.com/google/uuid"
)

// ===== REQUEST / RESPONSE STRUCTURES =====

type CreateSessionRequest struct {
	Exam string          `json:"exam" validate:"required"`
	Mode models.QuizMode `json:"mode" validate:"omitempty,quiz_mode"`
}

type SelectAnswerRequest struct {
	Option string `json:"option" validate:"required"`
}

type SetModeRequest struct {
	Mode models.QuizMode `json:"mode" validate:"required,quiz_mode"`
}

type UpdateSettingsRequest struct {
	PenaltyType models.PenaltyType `json:"penalty_type" validate:"required,penalty_type"`
}

// QuestionView is the presentation shape of the current question. Correct
// answers are never included; the hint only once revealed, the explanation
// only once submitted.
type QuestionView struct {
	ID          int                     `json:"id"`
	Domain      models.Domain           `json:"domain"`
	Type        models.QuestionType     `json:"type"`
	Prompt      string                  `json:"prompt"`
	Options     []models.ShuffledOption `json:"options"`
	MultiSelect bool                    `json:"multi_select"`
	HasHint     bool                    `json:"has_hint"`
	Hint        string                  `json:"hint,omitempty"`
	Explanation string                  `json:"explanation,omitempty"`
}

// SessionView is everything the presentation layer consumes mid-run.
type SessionView struct {
	ID              string              `json:"id"`
	Exam            string              `json:"exam"`
	Mode            models.QuizMode     `json:"mode"`
	Settings        models.QuizSettings `json:"settings"`
	CurrentQuestion *QuestionView       `json:"current_question,omitempty"`
	QuestionIndex   int                 `json:"question_index"`
	TotalQuestions  int                 `json:"total_questions"`
	SelectedAnswers []string            `json:"selected_answers"`
	IsSubmitted     bool                `json:"is_submitted"`
	Correctness     models.Correctness  `json:"correctness"`
	HintsUsed       int                 `json:"hints_used"`
	Restarts        int                 `json:"restarts"`
	Progress        float64             `json:"progress"`
	ElapsedSeconds  int                 `json:"elapsed_seconds"`
	ElapsedDisplay  string              `json:"elapsed_display"`
	IsComplete      bool                `json:"is_complete"`
}

// ===== SERVICE =====

type sessionService struct {
	bank      *questionbank.Bank
	records   RecordService
	logger    *slog.Logger
	validator *utils.Validator

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService(bank *questionbank.Bank, records RecordService, logger *slog.Logger, validator *utils.Validator) SessionService {
	return &sessionService{
		bank:      bank,
		records:   records,
		logger:    logger,
		validator: validator,
		sessions:  make(map[string]*Session),
	}
}

func (s *sessionService) Create(ctx context.Context, req *CreateSessionRequest) (*SessionView, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	questions, ok := s.bank.Questions(req.Exam)
	if !ok {
		return nil, ErrExamNotFound
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModePractice
	}

	settings := s.records.Settings(ctx, req.Exam)
	session := newSession(uuid.NewString(), req.Exam, questions, mode, settings)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.Info("quiz session created",
		"session_id", session.ID,
		"exam", req.Exam,
		"mode", mode,
		"questions", len(questions))

	return s.view(session), nil
}

func (s *sessionService) get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *sessionService) Select(ctx context.Context, id string, req *SelectAnswerRequest) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	session.Select(req.Option)
	return s.view(session), nil
}

func (s *sessionService) Submit(ctx context.Context, id string) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}

	session.Submit()
	return s.view(session), nil
}

func (s *sessionService) Next(ctx context.Context, id string) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if completed := session.Next(); completed {
		s.finalize(ctx, session)
	}
	return s.view(session), nil
}

func (s *sessionService) Restart(ctx context.Context, id string) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}

	session.Restart()
	s.logger.Info("quiz session restarted", "session_id", id, "restarts", session.restarts)
	return s.view(session), nil
}

func (s *sessionService) ShowHint(ctx context.Context, id string) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}

	session.ShowHint()
	return s.view(session), nil
}

func (s *sessionService) SetMode(ctx context.Context, id string, req *SetModeRequest) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	session.SetMode(req.Mode)
	return s.view(session), nil
}

func (s *sessionService) UpdateSettings(ctx context.Context, id string, req *UpdateSettingsRequest) (*SessionView, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	settings := models.QuizSettings{PenaltyType: req.PenaltyType}
	session.UpdateSettings(settings)
	s.records.SaveSettings(ctx, session.Exam, settings)
	return s.view(session), nil
}

func (s *sessionService) Summary(ctx context.Context, id string) (*models.QuizSummary, error) {
	session, err := s.get(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	complete := session.complete()
	missed := append([]models.MissedQuestion(nil), session.missed...)
	session.mu.Unlock()

	if !complete {
		return nil, ErrNotCompleted
	}

	return &models.QuizSummary{
		QuizStats:       session.Stats(),
		MissedQuestions: missed,
	}, nil
}

// finalize runs the completion side effects: best-run records, the run
// archive and the run-completed event.
func (s *sessionService) finalize(ctx context.Context, session *Session) {
	stats := session.Stats()

	session.mu.Lock()
	exam := session.Exam
	mode := session.mode
	restarts := session.restarts
	missed := append([]models.MissedQuestion(nil), session.missed...)
	session.mu.Unlock()

	s.logger.Info("quiz session completed",
		"session_id", session.ID,
		"exam", exam,
		"mode", mode,
		"score", stats.Score,
		"perfect", stats.IsPerfectRun)

	s.records.RecordCompletion(ctx, exam, mode, stats, restarts, missed)
}

// ===== VIEW BUILDING =====

func (s *sessionService) view(session *Session) *SessionView {
	session.mu.Lock()
	defer session.mu.Unlock()

	view := &SessionView{
		ID:              session.ID,
		Exam:            session.Exam,
		Mode:            session.mode,
		Settings:        session.settings,
		QuestionIndex:   session.index,
		TotalQuestions:  len(session.questions),
		SelectedAnswers: append([]string(nil), session.selected...),
		IsSubmitted:     session.submitted,
		Correctness:     session.correctness,
		HintsUsed:       session.hintsUsed,
		Restarts:        session.restarts,
		ElapsedSeconds:  session.elapsedSeconds(),
		IsComplete:      session.complete(),
	}
	view.ElapsedDisplay = quiz.FormatTime(view.ElapsedSeconds)

	answered := session.index
	if session.submitted {
		answered++
	}
	if len(session.questions) > 0 {
		view.Progress = float64(answered) / float64(len(session.questions)) * 100
	}

	if question := session.current(); question != nil && !session.complete() {
		qv := &QuestionView{
			ID:          question.ID,
			Domain:      question.Domain,
			Type:        quiz.DetectType(question.Question.Question),
			Prompt:      question.Question.Question,
			Options:     question.ShuffledOptions,
			MultiSelect: question.MultiSelect,
			HasHint:     question.Hint != "",
		}
		if session.hintShown {
			qv.Hint = question.Hint
		}
		if session.submitted {
			qv.Explanation = question.Explanation
		}
		view.CurrentQuestion = qv
	}

	return view
}

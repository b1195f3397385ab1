package services

import (
	"sync"
	"time"

	"github.com/azureprep/quiz-service/internal/models"
	"github.com/azureprep/quiz-service/internal/quiz"
)

// Session is one in-memory quiz run over a shuffled question set. All
// transitions are guard-checked: an invalid transition is a silent no-op,
// never an error. Guards and transitions run under the session mutex.
type Session struct {
	ID   string
	Exam string

	mu        sync.Mutex
	source    []models.Question
	questions []models.ShuffledQuestion
	index     int

	selected    []string
	submitted   bool
	correctness models.Correctness
	hintShown   bool

	hintsUsed         int
	restarts          int
	questionsAnswered int
	correctAnswers    int

	startTime time.Time
	endTime   *time.Time

	mode     models.QuizMode
	settings models.QuizSettings
	missed   []models.MissedQuestion
}

func newSession(id, exam string, questions []models.Question, mode models.QuizMode, settings models.QuizSettings) *Session {
	return &Session{
		ID:          id,
		Exam:        exam,
		source:      questions,
		questions:   quiz.ShuffleQuestions(questions),
		correctness: models.CorrectnessUnknown,
		startTime:   time.Now(),
		mode:        mode,
		settings:    settings,
	}
}

func (s *Session) current() *models.ShuffledQuestion {
	if s.index >= len(s.questions) {
		return nil
	}
	return &s.questions[s.index]
}

func (s *Session) complete() bool {
	return s.endTime != nil
}

// Select records an answer choice. For ordering and dropdown questions the
// option arrives as a comma-separated value replacing the whole selection;
// multi-select standard questions toggle membership; single-select replaces.
// No-op once submitted or after completion.
func (s *Session) Select(option string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.current()
	if s.submitted || s.complete() || question == nil {
		return
	}

	switch quiz.DetectType(question.Question.Question) {
	case models.TypeOrdering, models.TypeDropdownCommand, models.TypeDropdownSingle:
		s.selected = quiz.ParseSelection(option)
	default:
		if question.MultiSelect {
			s.selected = toggle(s.selected, option)
		} else {
			s.selected = []string{option}
		}
	}
}

func toggle(selected []string, option string) []string {
	for i, existing := range selected {
		if existing == option {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	return append(selected, option)
}

// Submit validates the current selection. No-op if already submitted, the
// selection is empty, or the session is complete. Never auto-advances.
func (s *Session) Submit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.current()
	if s.submitted || s.complete() || question == nil || len(s.selected) == 0 {
		return
	}

	questionType := quiz.DetectType(question.Question.Question)
	correct := quiz.ValidateAnswer(s.selected, question.DisplayCorrectAnswers, questionType)

	s.submitted = true
	s.questionsAnswered++
	if correct {
		s.correctness = models.CorrectnessCorrect
		s.correctAnswers++
	} else {
		s.correctness = models.CorrectnessIncorrect
		s.missed = append(s.missed, models.MissedQuestion{
			Question:        *question,
			SelectedAnswers: append([]string(nil), s.selected...),
			CorrectAnswers:  append([]string(nil), question.DisplayCorrectAnswers...),
		})
	}
}

// Next advances past the current question. Its only precondition is
// "submitted": advancing past an incorrect answer is deliberately allowed,
// the UI gates that with a restart affordance. Returns true when this call
// completed the session.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.submitted || s.complete() {
		return false
	}

	if s.index < len(s.questions)-1 {
		s.index++
		s.selected = nil
		s.submitted = false
		s.correctness = models.CorrectnessUnknown
		s.hintShown = false
		return false
	}

	now := time.Now()
	s.endTime = &now
	return true
}

// Restart reshuffles the full question set and resets all per-run state.
// Valid at any time; persisted best-run records are untouched.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restartLocked()
}

func (s *Session) restartLocked() {
	s.questions = quiz.ShuffleQuestions(s.source)
	s.index = 0
	s.selected = nil
	s.submitted = false
	s.correctness = models.CorrectnessUnknown
	s.hintShown = false
	s.hintsUsed = 0
	s.questionsAnswered = 0
	s.correctAnswers = 0
	s.restarts++
	s.startTime = time.Now()
	s.endTime = nil
	s.missed = nil
}

// ShowHint reveals the current question's hint. No-op in exam mode, when no
// hint text exists, or when the hint is already shown; the hints-used
// counter increments at most once per question.
func (s *Session) ShowHint() {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.current()
	if s.mode == models.ModeExam || s.complete() || question == nil {
		return
	}
	if question.Hint == "" || s.hintShown {
		return
	}

	s.hintShown = true
	s.hintsUsed++
}

// SetMode switches between practice and exam and restarts the run.
func (s *Session) SetMode(mode models.QuizMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	s.restartLocked()
}

// UpdateSettings replaces the session settings.
func (s *Session) UpdateSettings(settings models.QuizSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *Session) elapsedSeconds() int {
	end := time.Now()
	if s.endTime != nil {
		end = *s.endTime
	}
	return int(end.Sub(s.startTime).Seconds())
}

// Stats computes the final statistics. Only meaningful once complete.
func (s *Session) Stats() models.QuizStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return quiz.CalculateStats(
		len(s.questions),
		s.questionsAnswered,
		s.correctAnswers,
		s.hintsUsed,
		s.elapsedSeconds(),
		s.settings.PenaltyType,
	)
}

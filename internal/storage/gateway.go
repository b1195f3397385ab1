package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/azureprep/quiz-service/internal/models"
)

const probeKey = "__probe__"

// RecordGateway reads and writes best-run records and settings, namespaced
// per exam id and mode. Every operation degrades to a no-op or fallback
// default when the backing store is unavailable; the gateway never surfaces
// store errors to callers.
type RecordGateway struct {
	store  KVStore
	logger *slog.Logger
}

func NewRecordGateway(store KVStore, logger *slog.Logger) *RecordGateway {
	return &RecordGateway{
		store:  store,
		logger: logger,
	}
}

func settingsKey(exam string) string {
	return fmt.Sprintf("%s-quiz-settings", exam)
}

func bestTimeKey(exam string, mode models.QuizMode) string {
	return fmt.Sprintf("%s-best-%s-time", exam, mode)
}

func bestScoreKey(exam string, mode models.QuizMode) string {
	return fmt.Sprintf("%s-best-%s-score", exam, mode)
}

// available probes the store with a write/delete pair before any real
// read or write.
func (g *RecordGateway) available(ctx context.Context) bool {
	if err := g.store.Set(ctx, probeKey, "ok"); err != nil {
		g.logger.Warn("record store unavailable", "error", err)
		return false
	}
	if err := g.store.Delete(ctx, probeKey); err != nil {
		g.logger.Warn("record store unavailable", "error", err)
		return false
	}
	return true
}

// GetSettings returns the persisted settings for an exam, or the defaults
// when nothing usable is stored.
func (g *RecordGateway) GetSettings(ctx context.Context, exam string) models.QuizSettings {
	if !g.available(ctx) {
		return models.DefaultSettings()
	}

	raw, err := g.store.Get(ctx, settingsKey(exam))
	if err != nil {
		return models.DefaultSettings()
	}

	settings := models.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return models.DefaultSettings()
	}
	if settings.PenaltyType == "" {
		settings.PenaltyType = models.PenaltyScore
	}
	return settings
}

// SaveSettings persists settings for an exam. Reports whether the write
// happened.
func (g *RecordGateway) SaveSettings(ctx context.Context, exam string, settings models.QuizSettings) bool {
	if !g.available(ctx) {
		return false
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return false
	}
	if err := g.store.Set(ctx, settingsKey(exam), string(raw)); err != nil {
		g.logger.Warn("failed to save settings", "exam", exam, "error", err)
		return false
	}
	return true
}

// BestRecord returns the best-time record for an exam and mode, or nil when
// none exists or the store is unavailable.
func (g *RecordGateway) BestRecord(ctx context.Context, exam string, mode models.QuizMode) *models.PerfectRunRecord {
	if !g.available(ctx) {
		return nil
	}
	return g.readRecord(ctx, bestTimeKey(exam, mode))
}

// BestScoreRecord returns the best-score record for an exam and mode.
func (g *RecordGateway) BestScoreRecord(ctx context.Context, exam string, mode models.QuizMode) *models.PerfectRunRecord {
	if !g.available(ctx) {
		return nil
	}
	return g.readRecord(ctx, bestScoreKey(exam, mode))
}

func (g *RecordGateway) readRecord(ctx context.Context, key string) *models.PerfectRunRecord {
	raw, err := g.store.Get(ctx, key)
	if err != nil {
		return nil
	}
	var record models.PerfectRunRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil
	}
	return &record
}

// SavePerfectRun stores a new best-time record when the time strictly beats
// the current holder, and a new best-score record when the score strictly
// beats it. Both comparisons run against the same prior best-time snapshot:
// the slots are not compared independently. Reports whether any slot was
// written.
func (g *RecordGateway) SavePerfectRun(ctx context.Context, exam string, score float64, timeSeconds int, mode models.QuizMode) bool {
	if !g.available(ctx) {
		return false
	}

	record := models.PerfectRunRecord{
		Score: score,
		Time:  timeSeconds,
		Date:  time.Now().UTC(),
		Mode:  mode,
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return false
	}

	prior := g.readRecord(ctx, bestTimeKey(exam, mode))

	saved := false
	if prior == nil || timeSeconds < prior.Time {
		if err := g.store.Set(ctx, bestTimeKey(exam, mode), string(raw)); err == nil {
			saved = true
		} else {
			g.logger.Warn("failed to save best-time record", "exam", exam, "mode", mode, "error", err)
		}
	}
	if prior == nil || score > prior.Score {
		if err := g.store.Set(ctx, bestScoreKey(exam, mode), string(raw)); err == nil {
			saved = true
		} else {
			g.logger.Warn("failed to save best-score record", "exam", exam, "mode", mode, "error", err)
		}
	}

	if saved {
		g.logger.Info("perfect run recorded",
			"exam", exam,
			"mode", mode,
			"score", score,
			"time", timeSeconds)
	}
	return saved
}

// ClearExam removes all records and settings stored for one exam.
func (g *RecordGateway) ClearExam(ctx context.Context, exam string) bool {
	if !g.available(ctx) {
		return false
	}

	keys := []string{
		settingsKey(exam),
		bestTimeKey(exam, models.ModePractice),
		bestScoreKey(exam, models.ModePractice),
		bestTimeKey(exam, models.ModeExam),
		bestScoreKey(exam, models.ModeExam),
	}
	for _, key := range keys {
		if err := g.store.Delete(ctx, key); err != nil {
			return false
		}
	}
	return true
}

// ClearAllExams removes stored data for every listed exam.
func (g *RecordGateway) ClearAllExams(ctx context.Context, exams []string) bool {
	ok := true
	for _, exam := range exams {
		if !g.ClearExam(ctx, exam) {
			ok = false
		}
	}
	return ok
}

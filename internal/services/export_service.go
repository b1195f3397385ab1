package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/azureprep/quiz-service/internal/models"
	"github.com/azureprep/quiz-service/internal/questionbank"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	bank     *questionbank.Bank
	sessions SessionService
	logger   *slog.Logger
}

func NewExportService(bank *questionbank.Bank, sessions SessionService, logger *slog.Logger) ExportService {
	return &exportService{
		bank:     bank,
		sessions: sessions,
		logger:   logger,
	}
}

// ExportQuestionBank renders the full question set of an exam as an XLSX
// workbook, one question per row.
func (s *exportService) ExportQuestionBank(ctx context.Context, exam string) ([]byte, error) {
	questions, ok := s.bank.Questions(exam)
	if !ok {
		return nil, ErrExamNotFound
	}

	f := excelize.NewFile()
	sheetName := "Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"ID", "Domain", "Question", "Option A", "Option B", "Option C", "Option D",
		"Multi Select", "Correct Answers", "Hint", "Explanation",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, q := range questions {
		row := []interface{}{
			q.ID, string(q.Domain), q.Question,
			q.Options[0], q.Options[1], q.Options[2], q.Options[3],
			q.MultiSelect, strings.Join(q.CorrectAnswers, ","), q.Hint, q.Explanation,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("exported question bank", "exam", exam, "questions", len(questions))
	return buf.Bytes(), nil
}

// ExportMissedQuestions renders the missed-question report of a completed
// session.
func (s *exportService) ExportMissedQuestions(ctx context.Context, sessionID string) ([]byte, error) {
	summary, err := s.sessions.Summary(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Missed Questions"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Question ID", "Domain", "Question", "Your Answers", "Correct Answers", "Explanation"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, missed := range summary.MissedQuestions {
		row := []interface{}{
			missed.Question.ID,
			string(missed.Question.Domain),
			questionPrompt(missed.Question),
			strings.Join(missed.SelectedAnswers, ","),
			strings.Join(missed.CorrectAnswers, ","),
			missed.Question.Explanation,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("exported missed questions",
		"session_id", sessionID,
		"missed", len(summary.MissedQuestions))
	return buf.Bytes(), nil
}

func questionPrompt(q models.ShuffledQuestion) string {
	return q.Question.Question
}

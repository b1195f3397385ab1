package questionbank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/azureprep/quiz-service/internal/models"
	"github.com/azureprep/quiz-service/internal/utils"
)

// Bank holds the question sets of every known exam, loaded once at startup
// from static JSON files and read-only afterwards.
type Bank struct {
	exams map[string]*models.QuizData
}

// Load reads every <exam>.json file from dir and validates its structure.
// A malformed file fails the load; nothing malformed reaches the quiz core.
func Load(dir string, validator *utils.Validator) (*Bank, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions directory: %w", err)
	}

	bank := &Bank{exams: make(map[string]*models.QuizData)}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		exam := entry.Name()[:len(entry.Name())-len(".json")]
		data, err := loadFile(filepath.Join(dir, entry.Name()), validator)
		if err != nil {
			return nil, fmt.Errorf("question file %s: %w", entry.Name(), err)
		}
		bank.exams[exam] = data
	}

	if len(bank.exams) == 0 {
		return nil, fmt.Errorf("no question files found in %s", dir)
	}
	return bank, nil
}

func loadFile(path string, validator *utils.Validator) (*models.QuizData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data models.QuizData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validator.Validate(&data); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &data, nil
}

// NewBank builds a bank from already-validated data, bypassing the file
// loader. Used by tests and embedded setups.
func NewBank(exams map[string]*models.QuizData) *Bank {
	return &Bank{exams: exams}
}

// Exams lists the loaded exam ids in stable order.
func (b *Bank) Exams() []string {
	exams := make([]string, 0, len(b.exams))
	for exam := range b.exams {
		exams = append(exams, exam)
	}
	sort.Strings(exams)
	return exams
}

// Get returns the question set for an exam, or false when unknown.
func (b *Bank) Get(exam string) (*models.QuizData, bool) {
	data, ok := b.exams[exam]
	return data, ok
}

// Questions returns the questions of an exam, or false when unknown. The
// returned slice is the bank's own; callers must not mutate it.
func (b *Bank) Questions(exam string) ([]models.Question, bool) {
	data, ok := b.exams[exam]
	if !ok {
		return nil, false
	}
	return data.Questions, true
}

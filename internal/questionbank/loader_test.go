package questionbank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/azureprep/quiz-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBank = `{
  "meta": {"title": "AZ-104 Practice", "count": 2, "notes": "test set"},
  "questions": [
    {
      "id": 1,
      "domain": "Storage",
      "question": "Which redundancy option replicates to a secondary region?",
      "options": ["LRS", "ZRS", "GRS", "Premium LRS"],
      "multi_select": false,
      "correct_answers": ["C"],
      "hint": "Think geo."
    },
    {
      "id": 2,
      "domain": "Networking",
      "question": "Which resources require a subnet?",
      "options": ["VM", "VNet peering", "Storage account", "App Service plan"],
      "multi_select": true,
      "correct_answers": ["A", "B"]
    }
  ]
}`

func writeBank(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadValidBank(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "az104.json", validBank)

	bank, err := Load(dir, utils.NewValidator())
	require.NoError(t, err)

	assert.Equal(t, []string{"az104"}, bank.Exams())

	questions, ok := bank.Questions("az104")
	require.True(t, ok)
	assert.Len(t, questions, 2)
	assert.Equal(t, "Think geo.", questions[0].Hint)

	_, ok = bank.Questions("az500")
	assert.False(t, ok)
}

func TestLoadRejectsWrongOptionCount(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "az104.json", `{
	  "meta": {"title": "bad", "count": 1, "notes": ""},
	  "questions": [{
	    "id": 1,
	    "domain": "Storage",
	    "question": "Too few options?",
	    "options": ["one", "two"],
	    "multi_select": false,
	    "correct_answers": ["A"]
	  }]
	}`)

	_, err := Load(dir, utils.NewValidator())
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDomain(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "az104.json", `{
	  "meta": {"title": "bad", "count": 1, "notes": ""},
	  "questions": [{
	    "id": 1,
	    "domain": "Quantum",
	    "question": "Unknown domain?",
	    "options": ["a", "b", "c", "d"],
	    "multi_select": false,
	    "correct_answers": ["A"]
	  }]
	}`)

	_, err := Load(dir, utils.NewValidator())
	assert.Error(t, err)
}

func TestLoadRejectsBadCorrectLabel(t *testing.T) {
	dir := t.TempDir()
	writeBank(t, dir, "az104.json", `{
	  "meta": {"title": "bad", "count": 1, "notes": ""},
	  "questions": [{
	    "id": 1,
	    "domain": "Storage",
	    "question": "Label out of range?",
	    "options": ["a", "b", "c", "d"],
	    "multi_select": false,
	    "correct_answers": ["E"]
	  }]
	}`)

	_, err := Load(dir, utils.NewValidator())
	assert.Error(t, err)
}

func TestLoadEmptyDirFails(t *testing.T) {
	_, err := Load(t.TempDir(), utils.NewValidator())
	assert.Error(t, err)
}

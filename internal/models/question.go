package models

// Domain is the exam topic category a question belongs to.
type Domain string

const (
	DomainIdentities Domain = "Identities"
	DomainGovernance Domain = "Governance"
	DomainStorage    Domain = "Storage"
	DomainCompute    Domain = "Compute"
	DomainNetworking Domain = "Networking"
	DomainMonitoring Domain = "Monitoring"
	DomainBackupDR   Domain = "BackupDR"
	DomainSecurity   Domain = "Security"
	DomainHybrid     Domain = "Hybrid"
	DomainCost       Domain = "Cost"
)

// Domains lists every valid domain tag.
var Domains = []Domain{
	DomainIdentities,
	DomainGovernance,
	DomainStorage,
	DomainCompute,
	DomainNetworking,
	DomainMonitoring,
	DomainBackupDR,
	DomainSecurity,
	DomainHybrid,
	DomainCost,
}

// QuestionType classifies how a question is answered and validated.
type QuestionType string

const (
	TypeStandard        QuestionType = "standard"
	TypeOrdering        QuestionType = "ordering"
	TypeDropdownCommand QuestionType = "dropdown-command"
	TypeDropdownSingle  QuestionType = "dropdown-single"
	TypeCaseStudy       QuestionType = "case-study"
)

// OptionLabels are the fixed display labels for the four options.
var OptionLabels = []string{"A", "B", "C", "D"}

// Question is the immutable source-of-truth record loaded from a question
// bank file. Options always hold exactly four texts labelled A-D in order.
type Question struct {
	ID             int      `json:"id" validate:"required,min=1"`
	Domain         Domain   `json:"domain" validate:"required,exam_domain"`
	Question       string   `json:"question" validate:"required"`
	Options        []string `json:"options" validate:"required,len=4,dive,required"`
	MultiSelect    bool     `json:"multi_select"`
	CorrectAnswers []string `json:"correct_answers" validate:"required,min=1,max=4,dive,oneof=A B C D"`
	Hint           string   `json:"hint,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
}

// ShuffledOption is one option after shuffling: the text keeps its original
// label for round-tripping but is presented under the display label.
type ShuffledOption struct {
	OriginalLabel string `json:"original_label"`
	DisplayLabel  string `json:"display_label"`
	Text          string `json:"text"`
}

// ShuffledQuestion wraps a Question with a per-session permutation of its
// options. DisplayCorrectAnswers is CorrectAnswers translated through the
// original->display label mapping, always with the same cardinality.
type ShuffledQuestion struct {
	Question
	ShuffledOptions       []ShuffledOption `json:"shuffled_options"`
	DisplayCorrectAnswers []string         `json:"display_correct_answers"`
}

// LabelMapping returns the original->display label mapping recorded during
// shuffling.
func (q *ShuffledQuestion) LabelMapping() map[string]string {
	m := make(map[string]string, len(q.ShuffledOptions))
	for _, opt := range q.ShuffledOptions {
		m[opt.OriginalLabel] = opt.DisplayLabel
	}
	return m
}

// QuizMeta describes a question bank file.
type QuizMeta struct {
	Title string `json:"title"`
	Count int    `json:"count"`
	Notes string `json:"notes"`
}

// QuizData is the on-disk shape of a question bank file.
type QuizData struct {
	Meta      QuizMeta   `json:"meta"`
	Questions []Question `json:"questions" validate:"required,min=1,dive"`
}

package services

// QuestionDefinition is one entry of the survey catalog. Definitions are
// immutable for the lifetime of the process.
type QuestionDefinition struct {
	Title    string `json:"title" yaml:"title"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
	MinChars int    `json:"min_chars" yaml:"min_chars,omitempty"`
	Prefill  string `json:"prefill,omitempty" yaml:"prefill,omitempty"`
}

// Record captures one submitted answer together with its timing metrics.
// Records are append-only; re-answering a question after navigating back
// appends a new record instead of mutating the old one, so duplicates by
// QuestionNumber are possible and the latest one wins for draft restoration.
type Record struct {
	ParticipantID  string  `json:"participant_id"`
	QuestionNumber int     `json:"question_number"` // 1-based
	QuestionTitle  string  `json:"question_title"`
	QuestionNote   string  `json:"question_note"`
	Answer         string  `json:"answer"` // raw text, whitespace included
	CharCount      int     `json:"char_count"`
	TimeSec        float64 `json:"time_sec"`      // rounded to 3 decimals
	CharsPerSec    float64 `json:"chars_per_sec"` // rounded to 6 decimals, 0 when TimeSec is 0
	RecordedAt     string  `json:"recorded_at"`   // RFC3339, second precision
	CharLimit      *int    `json:"char_limit"`    // nil when unlimited at submission time
}

// ValidationIssue is a single unmet length constraint. Advance reports all
// unmet constraints at once so the respondent sees both bounds together.
type ValidationIssue struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// QuestionView is the render payload for the currently displayed question.
type QuestionView struct {
	Completed      bool              `json:"completed"`
	QuestionNumber int               `json:"question_number,omitempty"` // 1-based
	TotalQuestions int               `json:"total_questions"`
	Title          string            `json:"title,omitempty"`
	Note           string            `json:"note,omitempty"`
	MinChars       int               `json:"min_chars,omitempty"`
	CharLimit      *int              `json:"char_limit,omitempty"`
	Draft          string            `json:"draft"`
	CharCount      int               `json:"char_count"`
	Violations     []ValidationIssue `json:"violations,omitempty"`
}

// Summary aggregates all records of a session for the export's summary sheet.
type Summary struct {
	TotalQuestions     int     `json:"total_questions"`
	TotalChars         int     `json:"total_chars"`
	TotalTimeSec       float64 `json:"total_time_sec"`
	OverallCharsPerSec float64 `json:"overall_chars_per_sec"`
}

package services

import (
	"fmt"
	"math"
	"time"
)

// AnonymousParticipant is recorded when no participant id was supplied.
const AnonymousParticipant = "anonymous"

// Session is the per-respondent survey state machine. It walks the catalog
// linearly: Answering(index) for index < catalog length, Completed once the
// index reaches the catalog length. Completed is re-enterable through
// ReturnToLastFromCompleted.
//
// A session is owned by a single logical thread of control; the hosting
// layer keeps one independent Session per respondent and serializes
// transitions on it.
type Session struct {
	participantID string
	catalog       *Catalog
	policy        LimitPolicy

	current   int              // 0-based; == catalog.Len() means completed
	startedAt time.Time        // zero value = question not yet shown
	records   []Record         // append-only, cleared only by ResetAll
	drafts    map[int]string   // in-progress text per question index
	now       func() time.Time // injectable for tests
}

// NewSession creates a session positioned at the first question with no
// records and no running timer.
func NewSession(catalog *Catalog, participantID string, policy LimitPolicy) (*Session, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, NewInvalidError("session requires a non-empty catalog")
	}
	if err := policy.Validate(catalog.Len()); err != nil {
		return nil, err
	}
	return &Session{
		participantID: participantID,
		catalog:       catalog,
		policy:        policy,
		drafts:        map[int]string{},
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Session) Completed() bool     { return s.current >= s.catalog.Len() }
func (s *Session) CurrentIndex() int   { return s.current }
func (s *Session) Catalog() *Catalog   { return s.catalog }
func (s *Session) Policy() LimitPolicy { return s.policy }

// ParticipantID returns the configured respondent label, falling back to
// AnonymousParticipant when blank.
func (s *Session) ParticipantID() string {
	if s.participantID == "" {
		return AnonymousParticipant
	}
	return s.participantID
}

// SetPolicy reconfigures the limit policy. Maxima are resolved per
// validation, so already-appended records keep the limit in force when they
// were recorded and only not-yet-submitted questions are affected.
func (s *Session) SetPolicy(policy LimitPolicy) error {
	if err := policy.Validate(s.catalog.Len()); err != nil {
		return err
	}
	s.policy = policy
	return nil
}

// Show marks the current question as displayed, stamping its start time on
// the first call. Idempotent while the same question stays on screen; a no-op
// once the survey is completed.
func (s *Session) Show() {
	if s.Completed() {
		return
	}
	if s.startedAt.IsZero() {
		s.startedAt = s.now()
	}
}

// UpdateDraft replaces the in-progress text for the current question.
func (s *Session) UpdateDraft(text string) error {
	if s.Completed() {
		return NewInvalidError("survey is completed")
	}
	s.drafts[s.current] = text
	return nil
}

// Draft returns the editable text for the current question: the in-progress
// draft if one exists, else the answer of the latest record for this
// question, else the question's prefill.
func (s *Session) Draft() string {
	return s.draftFor(s.current)
}

func (s *Session) draftFor(index int) string {
	if d, ok := s.drafts[index]; ok {
		return d
	}
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].QuestionNumber == index+1 {
			return s.records[i].Answer
		}
	}
	q, err := s.catalog.Question(index)
	if err != nil {
		return ""
	}
	return q.Prefill
}

func (s *Session) validate(count int, q QuestionDefinition) []ValidationIssue {
	var issues []ValidationIssue
	if count < q.MinChars {
		issues = append(issues, ValidationIssue{
			Code:    ErrorTooShort,
			Message: fmt.Sprintf("answer too short: %d of at least %d characters", count, q.MinChars),
		})
	}
	if max, ok := s.policy.EffectiveMax(s.current); ok && count > max {
		issues = append(issues, ValidationIssue{
			Code:    ErrorTooLong,
			Message: fmt.Sprintf("answer too long: %d of at most %d characters", count, max),
		})
	}
	return issues
}

// Advance submits the current draft. Both length bounds are checked first
// and every unmet bound is reported together in a ValidationError; on
// failure nothing changes. On success a record is appended, the index moves
// forward and the timer is cleared so the next Show stamps it fresh.
func (s *Session) Advance() (*Record, error) {
	if s.Completed() {
		return nil, NewInvalidError("survey is completed")
	}
	q, err := s.catalog.Question(s.current)
	if err != nil {
		return nil, err
	}
	draft := s.Draft()
	count := CountSignificant(draft)
	if issues := s.validate(count, q); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	now := s.now()
	elapsed := 0.0
	if !s.startedAt.IsZero() {
		elapsed = now.Sub(s.startedAt).Seconds()
	}
	if elapsed < 0 {
		elapsed = 0
	}
	cps := 0.0
	if elapsed > 0 {
		cps = float64(count) / elapsed
	}

	rec := Record{
		ParticipantID:  s.ParticipantID(),
		QuestionNumber: s.current + 1,
		QuestionTitle:  q.Title,
		QuestionNote:   q.Note,
		Answer:         draft,
		CharCount:      count,
		TimeSec:        roundTo(elapsed, 3),
		CharsPerSec:    roundTo(cps, 6),
		RecordedAt:     now.Format(time.RFC3339),
	}
	if max, ok := s.policy.EffectiveMax(s.current); ok {
		limit := max
		rec.CharLimit = &limit
	}

	s.records = append(s.records, rec)
	s.current++
	s.startedAt = time.Time{} // next Show restamps
	return &rec, nil
}

// GoBack moves to the previous question and restarts its timer immediately:
// the question is about to be redisplayed synchronously, unlike Advance
// which defers the stamp to the next Show.
func (s *Session) GoBack() error {
	if s.Completed() {
		return NewInvalidError("survey is completed")
	}
	if s.current == 0 {
		return NewInvalidError("already at the first question")
	}
	s.current--
	s.startedAt = s.now()
	return nil
}

// ResetCurrent clears the current draft and restarts the timer. Records are
// untouched.
func (s *Session) ResetCurrent() error {
	if s.Completed() {
		return NewInvalidError("survey is completed")
	}
	s.drafts[s.current] = ""
	s.startedAt = s.now()
	return nil
}

// ResetAll returns the session to its initial state: first question, no
// records, no drafts, no running timer.
func (s *Session) ResetAll() {
	s.current = 0
	s.startedAt = time.Time{}
	s.records = nil
	s.drafts = map[int]string{}
}

// ReturnToLastFromCompleted re-enters the last question from the completed
// state. Nothing is overwritten: the next Advance appends a duplicate record
// and the latest one wins.
func (s *Session) ReturnToLastFromCompleted() error {
	if !s.Completed() {
		return NewInvalidError("survey is not completed")
	}
	s.current = s.catalog.Len() - 1
	s.startedAt = s.now()
	return nil
}

// Records returns a copy of the append-only record log.
func (s *Session) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// View assembles the render payload for the current question, including the
// live character count and any currently unmet bounds.
func (s *Session) View() QuestionView {
	v := QuestionView{
		Completed:      s.Completed(),
		TotalQuestions: s.catalog.Len(),
	}
	if v.Completed {
		return v
	}
	q, err := s.catalog.Question(s.current)
	if err != nil {
		return v
	}
	draft := s.Draft()
	v.QuestionNumber = s.current + 1
	v.Title = q.Title
	v.Note = q.Note
	v.MinChars = q.MinChars
	if max, ok := s.policy.EffectiveMax(s.current); ok {
		limit := max
		v.CharLimit = &limit
	}
	v.Draft = draft
	v.CharCount = CountSignificant(draft)
	v.Violations = s.validate(v.CharCount, q)
	return v
}

func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

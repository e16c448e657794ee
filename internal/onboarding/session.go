package onboarding

import (
	"errors"
	"sync"

	"elmora-backend/internal/assessment"
)

// Step is one stage of the onboarding wizard.
type Step int

const (
	StepAssessment Step = iota
	StepProfileBasics
	StepProfilePhoto
	StepReviewAndSubmit
	StepAiResults
)

const (
	minStep = StepAssessment
	maxStep = StepAiResults
)

const (
	maxNameLen = 50
	maxBioLen  = 300
)

// Basics holds the profile fields collected on step 1.
type Basics struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Photo references an optional avatar image. Absence is valid.
type Photo struct {
	FileName string `json:"file_name,omitempty"`
	URL      string `json:"url,omitempty"`
}

// AiResults is what a successful submission attaches to the session.
type AiResults struct {
	Score           int      `json:"score"`
	Percent         int      `json:"percent"`
	Category        string   `json:"category"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// ValidateBasics enforces the step-1 gate: non-empty bounded name, bounded
// bio.
func ValidateBasics(b Basics) error {
	if b.Name == "" {
		return errors.New("name cannot be empty")
	}
	if len(b.Name) > maxNameLen {
		return errors.New("name is too long")
	}
	if len(b.Bio) > maxBioLen {
		return errors.New("bio is too long")
	}
	return nil
}

// Session holds the ephemeral state of one onboarding attempt. It is owned
// by a single logical writer (the user's flow), but requests may overlap, so
// every mutation goes through the mutex. Nothing here is persisted; only
// projections of it are written on submission.
type Session struct {
	mu          sync.Mutex
	answers     map[string]assessment.Answer
	basics      Basics
	photo       Photo
	ai          *AiResults
	currentStep Step
	submitting  bool
	errMsg      string
}

// NewSession returns a session at the initial step with no answers.
func NewSession() *Session {
	return &Session{answers: make(map[string]assessment.Answer)}
}

func clampStep(s Step) Step {
	if s < minStep {
		return minStep
	}
	if s > maxStep {
		return maxStep
	}
	return s
}

// UpdateAnswers replaces the answer set. Upsert keyed by question id: a new
// answer for an already-answered question replaces it, never duplicates.
func (s *Session) UpdateAnswers(answers []assessment.Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = make(map[string]assessment.Answer, len(answers))
	for _, a := range answers {
		s.answers[a.QuestionID] = a
	}
}

// SetAnswer records a single selection, replacing any earlier choice for the
// same question.
func (s *Session) SetAnswer(a assessment.Answer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[a.QuestionID] = a
}

// UpdateBasics replaces name and bio. Callers validate with ValidateBasics
// before allowing the step transition.
func (s *Session) UpdateBasics(b Basics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basics = b
}

// UpdatePhoto replaces the photo reference.
func (s *Session) UpdatePhoto(p Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photo = p
}

// NextStep advances one step, clamped to the last step.
func (s *Session) NextStep() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = clampStep(s.currentStep + 1)
	return s.currentStep
}

// PrevStep moves back one step, clamped to the first step.
func (s *Session) PrevStep() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = clampStep(s.currentStep - 1)
	return s.currentStep
}

// GoToStep jumps to an arbitrary step index. Out-of-range indices are
// clamped rather than rejected so the flow stays renderable.
func (s *Session) GoToStep(n int) Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = clampStep(Step(n))
	return s.currentStep
}

// SetSubmitting flags an in-flight submission. Tracked independently of the
// step.
func (s *Session) SetSubmitting(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = v
}

// SetError records a submission error without forcing a step transition, so
// a failed submit leaves the user on the review step with the error visible.
// An empty string clears it.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// Complete attaches the submission results and advances to the results step.
func (s *Session) Complete(res *AiResults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ai = res
	s.submitting = false
	s.errMsg = ""
	s.currentStep = StepAiResults
}

// Reset returns the session to its initial state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = make(map[string]assessment.Answer)
	s.basics = Basics{}
	s.photo = Photo{}
	s.ai = nil
	s.currentStep = StepAssessment
	s.submitting = false
	s.errMsg = ""
}

// AllAnswered reports whether every bank question has an answer. Used as the
// gate for leaving the assessment step.
func (s *Session) AllAnswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range assessment.Bank() {
		if _, ok := s.answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Answers returns the recorded answers in bank order. Unanswered questions
// are skipped.
func (s *Session) Answers() []assessment.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]assessment.Answer, 0, len(s.answers))
	for _, q := range assessment.Bank() {
		if a, ok := s.answers[q.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Snapshot is an immutable view of the session for rendering.
type Snapshot struct {
	Answers     []assessment.Answer `json:"answers"`
	Basics      Basics              `json:"basics"`
	Photo       Photo               `json:"photo"`
	Ai          *AiResults          `json:"ai,omitempty"`
	CurrentStep Step                `json:"current_step"`
	Submitting  bool                `json:"is_submitting"`
	Error       string              `json:"error,omitempty"`
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	answers := s.Answers()
	s.mu.Lock()
	defer s.mu.Unlock()
	var ai *AiResults
	if s.ai != nil {
		copied := *s.ai
		ai = &copied
	}
	return Snapshot{
		Answers:     answers,
		Basics:      s.basics,
		Photo:       s.photo,
		Ai:          ai,
		CurrentStep: s.currentStep,
		Submitting:  s.submitting,
		Error:       s.errMsg,
	}
}

// Basics returns the collected profile fields.
func (s *Session) Basics() Basics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basics
}

// Photo returns the photo reference.
func (s *Session) Photo() Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photo
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentStep
}

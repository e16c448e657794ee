package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"elmora-backend/internal/assessment"
	"elmora-backend/internal/insight"
	"elmora-backend/internal/model"
	"elmora-backend/internal/onboarding"
	"elmora-backend/utilities"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	err      error
	profiles map[uint]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uint]*model.Profile)}
}

func (r *fakeProfileRepo) UpsertProfile(p *model.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeProfileRepo) GetProfileByUserID(userID uint) (*model.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakeAssessmentRepo struct {
	mu      sync.Mutex
	err     error
	records map[uint]*model.AssessmentRecord
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{records: make(map[uint]*model.AssessmentRecord)}
}

func (r *fakeAssessmentRepo) CreateRecord(rec *model.AssessmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, exists := r.records[rec.UserID]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.records[rec.UserID] = rec
	return nil
}

func (r *fakeAssessmentRepo) GetRecordByUserID(userID uint) (*model.AssessmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

type fallbackOnlyGenerator struct{}

func (fallbackOnlyGenerator) Generate(score int, category assessment.Category, name, bio string) insight.Insights {
	return insight.FallbackFor(score)
}

func readySession(t *testing.T) *onboarding.Session {
	t.Helper()
	s := onboarding.NewSession()
	var answers []assessment.Answer
	for _, q := range assessment.Bank() {
		answers = append(answers, assessment.Answer{QuestionID: q.ID, Choice: assessment.KeyA})
	}
	s.UpdateAnswers(answers)
	s.UpdateBasics(onboarding.Basics{Name: "Maya", Bio: "learning to slow down"})
	s.UpdatePhoto(onboarding.Photo{URL: "https://cdn.example.com/p/1.jpg"})
	s.GoToStep(int(onboarding.StepReviewAndSubmit))
	return s
}

func newTestService(profiles *fakeProfileRepo, records *fakeAssessmentRepo, bus *utilities.EventBus) SubmissionService {
	return NewSubmissionService(profiles, records, fallbackOnlyGenerator{}, bus)
}

func TestSubmitSuccess(t *testing.T) {
	profiles := newFakeProfileRepo()
	records := newFakeAssessmentRepo()
	bus := utilities.NewEventBus()

	completed := make(chan interface{}, 1)
	bus.Subscribe(utilities.EventAssessmentCompleted, func(data interface{}) {
		completed <- data
	})

	session := readySession(t)
	results, err := newTestService(profiles, records, bus).Submit(42, session)
	require.NoError(t, err)

	assert.Equal(t, 30, results.Score)
	assert.Equal(t, 100, results.Percent)
	assert.Equal(t, "Growth Champion", results.Category)
	assert.NotEmpty(t, results.Insights)
	assert.NotEmpty(t, results.Recommendations)

	// Session advanced to the results step with the payload attached.
	snap := session.Snapshot()
	assert.Equal(t, onboarding.StepAiResults, snap.CurrentStep)
	require.NotNil(t, snap.Ai)
	assert.Equal(t, results, snap.Ai)
	assert.Empty(t, snap.Error)

	// Both projections were written.
	profile, err := profiles.GetProfileByUserID(42)
	require.NoError(t, err)
	assert.True(t, profile.AssessmentCompleted)
	assert.Equal(t, 30, profile.AssessmentScore)
	assert.Equal(t, "Growth Champion", profile.AssessmentCategory)
	assert.Equal(t, "Maya", profile.DisplayName)
	assert.Equal(t, "https://cdn.example.com/p/1.jpg", profile.AvatarURL)

	record, err := records.GetRecordByUserID(42)
	require.NoError(t, err)
	assert.NotEmpty(t, record.SubmissionID)
	var breakdown []assessment.Answer
	require.NoError(t, json.Unmarshal([]byte(record.Answers), &breakdown))
	assert.Len(t, breakdown, 10)
	var stored insight.Insights
	require.NoError(t, json.Unmarshal([]byte(record.AiInsights), &stored))
	assert.NotEmpty(t, stored.Insights)

	select {
	case data := <-completed:
		assert.Equal(t, uint(42), data)
	case <-time.After(time.Second):
		t.Fatal("assessment_completed event was never published")
	}
}

func TestSubmitUnauthenticated(t *testing.T) {
	svc := newTestService(newFakeProfileRepo(), newFakeAssessmentRepo(), utilities.NewEventBus())
	_, err := svc.Submit(0, readySession(t))
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestSubmitIncompleteAnswers(t *testing.T) {
	session := onboarding.NewSession()
	session.SetAnswer(assessment.Answer{QuestionID: "Q1", Choice: assessment.KeyA})
	session.UpdateBasics(onboarding.Basics{Name: "Maya"})

	svc := newTestService(newFakeProfileRepo(), newFakeAssessmentRepo(), utilities.NewEventBus())
	_, err := svc.Submit(42, session)
	require.Error(t, err)

	var missing *assessment.MissingAnswerError
	assert.True(t, errors.As(err, &missing), "incomplete answers must fail loudly, got %v", err)
}

func TestSubmitInvalidBasics(t *testing.T) {
	session := readySession(t)
	session.UpdateBasics(onboarding.Basics{Name: ""})

	svc := newTestService(newFakeProfileRepo(), newFakeAssessmentRepo(), utilities.NewEventBus())
	_, err := svc.Submit(42, session)
	assert.Error(t, err)
}

func TestSubmitDuplicate(t *testing.T) {
	profiles := newFakeProfileRepo()
	records := newFakeAssessmentRepo()
	svc := newTestService(profiles, records, utilities.NewEventBus())

	_, err := svc.Submit(42, readySession(t))
	require.NoError(t, err)

	second := readySession(t)
	_, err = svc.Submit(42, second)
	assert.ErrorIs(t, err, ErrPersistenceConflict)

	snap := second.Snapshot()
	assert.Equal(t, onboarding.StepReviewAndSubmit, snap.CurrentStep, "conflict must not advance the flow")
	assert.NotEmpty(t, snap.Error)
	assert.False(t, snap.Submitting)
}

func TestSubmitPersistenceFailure(t *testing.T) {
	profiles := newFakeProfileRepo()
	profiles.err = errors.New("connection reset")
	records := newFakeAssessmentRepo()
	svc := newTestService(profiles, records, utilities.NewEventBus())

	session := readySession(t)
	_, err := svc.Submit(42, session)
	require.Error(t, err)

	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "profile upsert", perr.Op)

	snap := session.Snapshot()
	assert.Equal(t, onboarding.StepReviewAndSubmit, snap.CurrentStep)
	assert.Nil(t, snap.Ai)
	assert.NotEmpty(t, snap.Error)
}

func TestSubmitConflictBeatsGenericError(t *testing.T) {
	// Both writes fail: the duplicate-key report wins so the user is told
	// the assessment is already recorded instead of seeing a raw error.
	profiles := newFakeProfileRepo()
	profiles.err = errors.New("connection reset")
	records := newFakeAssessmentRepo()
	records.err = gorm.ErrDuplicatedKey
	svc := newTestService(profiles, records, utilities.NewEventBus())

	_, err := svc.Submit(42, readySession(t))
	assert.ErrorIs(t, err, ErrPersistenceConflict)
}

func TestStatusFallsBackToLocalFlag(t *testing.T) {
	profiles := newFakeProfileRepo()
	flags := NewCompletionFlags()
	status := NewStatusService(profiles, flags)

	assert.False(t, status.AssessmentCompleted(42))

	// Profile read still failing (lag), but the local mirror knows.
	flags.Mark(42)
	assert.True(t, status.AssessmentCompleted(42))

	// Once the profile row is readable it is authoritative.
	require.NoError(t, profiles.UpsertProfile(&model.Profile{UserID: 42, AssessmentCompleted: true}))
	assert.True(t, status.AssessmentCompleted(42))
}

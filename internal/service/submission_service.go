package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"elmora-backend/internal/assessment"
	"elmora-backend/internal/insight"
	"elmora-backend/internal/model"
	"elmora-backend/internal/onboarding"
	"elmora-backend/internal/repository"
	"elmora-backend/utilities"
)

// Submission error taxonomy. Controllers match on these to choose the
// user-facing response.
var (
	ErrAuthRequired        = errors.New("authentication required")
	ErrAiGenerationFailed  = errors.New("insight generation failed")
	ErrPersistenceConflict = errors.New("assessment already recorded for this user")
)

// PersistenceError wraps a non-conflict write failure. Submissions stay
// retryable because nothing was committed on the session side.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// InsightGenerator is the slice of the insight package the orchestrator
// needs.
type InsightGenerator interface {
	Generate(score int, category assessment.Category, name, bio string) insight.Insights
}

// SubmissionService coordinates the end of the onboarding flow: score the
// answers, generate insights, persist the profile and assessment
// projections, and advance the session to the results step.
type SubmissionService interface {
	Submit(userID uint, session *onboarding.Session) (*onboarding.AiResults, error)
}

type submissionService struct {
	profileRepo    repository.ProfileRepository
	assessmentRepo repository.AssessmentRepository
	generator      InsightGenerator
	bus            *utilities.EventBus
}

func NewSubmissionService(
	profileRepo repository.ProfileRepository,
	assessmentRepo repository.AssessmentRepository,
	generator InsightGenerator,
	bus *utilities.EventBus,
) SubmissionService {
	return &submissionService{
		profileRepo:    profileRepo,
		assessmentRepo: assessmentRepo,
		generator:      generator,
		bus:            bus,
	}
}

// Submit runs the full submission pipeline. On any failure the session stays
// on the review step with its error populated; it advances to the results
// step only after both writes succeed.
func (s *submissionService) Submit(userID uint, session *onboarding.Session) (*onboarding.AiResults, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}

	session.SetSubmitting(true)
	res, err := s.submit(userID, session)
	if err != nil {
		session.SetSubmitting(false)
		session.SetError(err.Error())
		return nil, err
	}

	session.Complete(res)
	s.bus.Publish(utilities.EventAssessmentCompleted, userID)
	return res, nil
}

func (s *submissionService) submit(userID uint, session *onboarding.Session) (*onboarding.AiResults, error) {
	// Authoritative score, recomputed from the recorded answers through the
	// same engine the review preview uses.
	result, err := assessment.Score(session.Answers())
	if err != nil {
		return nil, err
	}

	basics := session.Basics()
	if err := onboarding.ValidateBasics(basics); err != nil {
		return nil, err
	}

	generated := s.generator.Generate(result.Score, result.Category, basics.Name, basics.Bio)

	answersJSON, err := json.Marshal(result.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAiGenerationFailed, err)
	}
	insightsJSON, err := json.Marshal(generated)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAiGenerationFailed, err)
	}

	profile := &model.Profile{
		UserID:              userID,
		DisplayName:         basics.Name,
		Bio:                 basics.Bio,
		AvatarURL:           session.Photo().URL,
		AssessmentCompleted: true,
		AssessmentScore:     result.Score,
		AssessmentCategory:  result.Category.String(),
	}
	record := &model.AssessmentRecord{
		SubmissionID: uuid.New().String(),
		UserID:       userID,
		Answers:      string(answersJSON),
		Score:        result.Score,
		Category:     result.Category.String(),
		AiInsights:   string(insightsJSON),
	}

	// Both writes go out concurrently; they touch disjoint tables so no
	// ordering is needed between them. Either failure aborts the whole
	// submission.
	errc := make(chan error, 2)
	go func() {
		if err := s.profileRepo.UpsertProfile(profile); err != nil {
			errc <- &PersistenceError{Op: "profile upsert", Err: err}
			return
		}
		errc <- nil
	}()
	go func() {
		if err := s.assessmentRepo.CreateRecord(record); err != nil {
			errc <- &PersistenceError{Op: "assessment insert", Err: err}
			return
		}
		errc <- nil
	}()

	var writeErr error
	for i := 0; i < 2; i++ {
		if err := <-errc; err != nil {
			// A duplicate submission beats a generic failure for reporting.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				writeErr = ErrPersistenceConflict
			} else if writeErr == nil {
				writeErr = err
			}
		}
	}
	if writeErr != nil {
		utilities.Warn("submission for user %d failed: %v", userID, writeErr)
		return nil, writeErr
	}

	utilities.Info("assessment submitted for user %d: score=%d category=%s", userID, result.Score, result.Category)

	return &onboarding.AiResults{
		Score:           result.Score,
		Percent:         result.Percent,
		Category:        result.Category.String(),
		Insights:        generated.Insights,
		Recommendations: generated.Recommendations,
	}, nil
}

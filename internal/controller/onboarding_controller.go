package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"elmora-backend/internal/assessment"
	"elmora-backend/internal/onboarding"
	"elmora-backend/internal/service"
	"elmora-backend/utilities"
)

// OnboardingController exposes the onboarding wizard state machine and the
// submission endpoint.
type OnboardingController struct {
	Store             *onboarding.Store
	SubmissionService service.SubmissionService
}

func NewOnboardingController(store *onboarding.Store, submissionService service.SubmissionService) *OnboardingController {
	return &OnboardingController{Store: store, SubmissionService: submissionService}
}

func (oc *OnboardingController) session(c *gin.Context) (*onboarding.Session, uint, bool) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return nil, 0, false
	}
	return oc.Store.Get(userID), userID, true
}

// GetState returns the full session snapshot for rendering.
func (oc *OnboardingController) GetState(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// UpdateAnswers replaces the answer set.
func (oc *OnboardingController) UpdateAnswers(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	var body struct {
		Answers []assessment.Answer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	s.UpdateAnswers(body.Answers)
	c.JSON(http.StatusOK, gin.H{"all_answered": s.AllAnswered()})
}

// UpdateBasics validates and stores name/bio.
func (oc *OnboardingController) UpdateBasics(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	var basics onboarding.Basics
	if err := c.ShouldBindJSON(&basics); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := onboarding.ValidateBasics(basics); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.UpdateBasics(basics)
	c.JSON(http.StatusOK, gin.H{"message": "basics updated"})
}

// UpdatePhoto stores the avatar reference. Optional step; an empty body
// clears it.
func (oc *OnboardingController) UpdatePhoto(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	var photo onboarding.Photo
	if err := c.ShouldBindJSON(&photo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	s.UpdatePhoto(photo)
	c.JSON(http.StatusOK, gin.H{"message": "photo updated"})
}

// NextStep advances the wizard. Leaving the assessment step requires every
// question answered; other transitions only clamp.
func (oc *OnboardingController) NextStep(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	if s.Step() == onboarding.StepAssessment && !s.AllAnswered() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer all questions before continuing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_step": s.NextStep()})
}

func (oc *OnboardingController) PrevStep(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_step": s.PrevStep()})
}

// GoToStep jumps to a step index; out-of-range values clamp.
func (oc *OnboardingController) GoToStep(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	var body struct {
		Step int `json:"step"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_step": s.GoToStep(body.Step)})
}

// Reset restarts the flow.
func (oc *OnboardingController) Reset(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	s.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "onboarding reset"})
}

// Preview scores the current answers for the review screen without
// persisting anything.
func (oc *OnboardingController) Preview(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	result, err := assessment.Score(s.Answers())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Submit runs the submission orchestrator and maps its error taxonomy onto
// HTTP responses.
func (oc *OnboardingController) Submit(c *gin.Context) {
	s, userID, ok := oc.session(c)
	if !ok {
		return
	}

	results, err := oc.SubmissionService.Submit(userID, s)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPersistenceConflict):
			// Already recorded: informational, with a redirect target
			// instead of a retry prompt.
			c.JSON(http.StatusConflict, gin.H{
				"message":  "your assessment is already recorded",
				"redirect": "/api/onboarding/results",
			})
		case errors.Is(err, service.ErrAiGenerationFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			var perr *service.PersistenceError
			if errors.As(err, &perr) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": perr.Error(), "retryable": true})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, results)
}

// Results returns the attached AI results after a completed submission.
func (oc *OnboardingController) Results(c *gin.Context) {
	s, _, ok := oc.session(c)
	if !ok {
		return
	}
	snap := s.Snapshot()
	if snap.Ai == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results yet"})
		return
	}
	c.JSON(http.StatusOK, snap.Ai)
}

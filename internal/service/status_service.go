package service

import (
	"sync"

	"elmora-backend/internal/repository"
	"elmora-backend/utilities"
)

// CompletionFlags mirrors the assessment_completed column locally so a
// read-after-write lag or a transient profile-read failure never tells a
// user who just submitted that they have not.
type CompletionFlags struct {
	mu    sync.RWMutex
	flags map[uint]bool
}

func NewCompletionFlags() *CompletionFlags {
	return &CompletionFlags{flags: make(map[uint]bool)}
}

func (f *CompletionFlags) Mark(userID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flags[userID] = true
}

func (f *CompletionFlags) Completed(userID uint) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.flags[userID]
}

// StatusService answers "has this user completed onboarding", preferring the
// durable profile record and falling back to the local flag.
type StatusService interface {
	AssessmentCompleted(userID uint) bool
}

type statusService struct {
	profileRepo repository.ProfileRepository
	flags       *CompletionFlags
}

func NewStatusService(profileRepo repository.ProfileRepository, flags *CompletionFlags) StatusService {
	return &statusService{profileRepo: profileRepo, flags: flags}
}

// InitCompletionFlagListeners keeps the local mirror warm: every completed
// submission marks the flag without waiting for a profile re-read.
func InitCompletionFlagListeners(flags *CompletionFlags) {
	utilities.GlobalEventBus.Subscribe(utilities.EventAssessmentCompleted, func(data interface{}) {
		userID, ok := data.(uint)
		if !ok {
			utilities.Warn("assessment_completed event carried unexpected payload %v", data)
			return
		}
		flags.Mark(userID)
	})
}

func (s *statusService) AssessmentCompleted(userID uint) bool {
	profile, err := s.profileRepo.GetProfileByUserID(userID)
	if err == nil {
		return profile.AssessmentCompleted
	}
	// Profile read failed or lagged behind the write; trust the mirror.
	return s.flags.Completed(userID)
}

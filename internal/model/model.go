package model

import "time"

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"not null;unique"`
	Password  string    `json:"password,omitempty"` // Exclude from JSON responses
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the durable projection of a completed onboarding flow.
// One row per user, upserted on submission.
type Profile struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	UserID              uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	DisplayName         string    `json:"display_name" gorm:"not null"`
	Bio                 string    `json:"bio"`
	AvatarURL           string    `json:"avatar_url"`
	AssessmentCompleted bool      `json:"assessment_completed" gorm:"default:false"`
	AssessmentScore     int       `json:"assessment_score"`
	AssessmentCategory  string    `json:"assessment_category"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AssessmentRecord stores one submitted well-being assessment. Insert-only;
// the unique index on UserID turns a duplicate submission into a conflict
// instead of a second row.
type AssessmentRecord struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	SubmissionID string    `json:"submission_id" gorm:"not null;unique"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	Answers      string    `json:"answers" gorm:"type:jsonb;not null"` // JSON array of {id, choice, points}
	Score        int       `json:"score" gorm:"not null"`
	Category     string    `json:"category" gorm:"not null"`
	AiInsights   string    `json:"ai_insights" gorm:"type:jsonb"` // JSON {insights, recommendations}
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

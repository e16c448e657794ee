package repository

import (
	"gorm.io/gorm/clause"

	"elmora-backend/internal/db"
	"elmora-backend/internal/model"
)

type ProfileRepository interface {
	UpsertProfile(profile *model.Profile) error
	GetProfileByUserID(userID uint) (*model.Profile, error)
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

// UpsertProfile writes the profile projection of a submission. Keyed by
// user_id: a re-submission after a partial failure overwrites rather than
// duplicating.
func (r *profileRepository) UpsertProfile(profile *model.Profile) error {
	return db.GetDB().Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "bio", "avatar_url",
			"assessment_completed", "assessment_score", "assessment_category",
			"updated_at",
		}),
	}).Create(profile).Error
}

func (r *profileRepository) GetProfileByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := db.GetDB().Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

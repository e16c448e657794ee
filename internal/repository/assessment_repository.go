package repository

import (
	"elmora-backend/internal/db"
	"elmora-backend/internal/model"
)

type AssessmentRepository interface {
	CreateRecord(record *model.AssessmentRecord) error
	GetRecordByUserID(userID uint) (*model.AssessmentRecord, error)
}

type assessmentRepository struct{}

func NewAssessmentRepository() AssessmentRepository {
	return &assessmentRepository{}
}

// CreateRecord inserts a submitted assessment. Insert-only; the unique index
// on user_id makes a second submission fail with a duplicated-key error.
func (r *assessmentRepository) CreateRecord(record *model.AssessmentRecord) error {
	return db.GetDB().Create(record).Error
}

func (r *assessmentRepository) GetRecordByUserID(userID uint) (*model.AssessmentRecord, error) {
	var record model.AssessmentRecord
	err := db.GetDB().Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

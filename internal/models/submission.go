package models

import (
	"time"

	"gorm.io/gorm"
)

// Synthetic data keys injected into anonymous submissions to carry the
// submitter's identity. They travel inside Data alongside the form's own
// fields and are mirrored into SubmitterName/SubmitterEmail.
const (
	SyntheticNameKey  = "_name"
	SyntheticEmailKey = "_email"
)

// SubmissionStatus is the review state of a submission. "pending" is the
// sole initial state; an administrator may move a submission freely between
// any of the four states.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusReviewed SubmissionStatus = "reviewed"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// Valid reports whether s is a known review status.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// SubmissionModel is one completed instance of a form. FormID is a weak
// reference used for display and export lookups only. Status is the only
// attribute mutated after creation.
type SubmissionModel struct {
	Base
	FormID         string           `json:"form_id"         gorm:"index;not null"`
	Form           *FormModel       `json:"form,omitempty"  gorm:"foreignKey:FormID"`
	UserID         *string          `json:"user_id,omitempty" gorm:"index"`
	SubmitterName  string           `json:"submitter_name"`
	SubmitterEmail string           `json:"submitter_email"`
	Data           ValueMap         `json:"data"            gorm:"type:json"`
	Status         SubmissionStatus `json:"status"          gorm:"type:varchar(16);default:pending;index"`
	SubmittedAt    time.Time        `json:"submitted_at"    gorm:"<-:create;index"`
}

func (s *SubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if err := s.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}
	if s.Status == "" {
		s.Status = StatusPending
	}
	return nil
}

func (SubmissionModel) TableName() string { return "submissions" }

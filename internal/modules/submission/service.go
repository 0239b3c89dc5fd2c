package submission

import (
	"errors"

	"github.com/dsp-forms/core/internal/models"
	"github.com/dsp-forms/core/internal/pkg/pagination"
	"github.com/dsp-forms/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Submit validates data against the form's schema and persists the
// submission in pending state.
func (s *Service) Submit(formID string, data models.ValueMap, who Submitter) (*models.SubmissionModel, error) {
	var form models.FormModel
	err := s.db.Where("id = ? AND is_public = ?", formID, true).First(&form).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errFormMissing
	}
	if err != nil {
		return nil, err
	}

	rec, err := buildRecord(&form, data, who)
	if err != nil {
		return nil, err
	}
	if err := s.db.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// ListMine returns the caller's submissions, newest first, each carrying the
// parent form's display attributes.
func (s *Service) ListMine(userID string) ([]models.SubmissionModel, error) {
	var subs []models.SubmissionModel
	err := s.db.Where("user_id = ?", userID).
		Preload("Form", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, title, category, fields")
		}).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

// ListAll returns every submission for the admin review queue, paginated and
// newest first.
func (s *Service) ListAll(q pagination.Query) ([]models.SubmissionModel, response.Pagination, error) {
	var subs []models.SubmissionModel
	query := s.db.Model(&models.SubmissionModel{}).
		Preload("Form", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, title, category, fields")
		}).
		Order("submitted_at DESC")
	meta, err := pagination.Paginate(query, q, &subs)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return subs, meta, nil
}

// GetByID fetches one submission with its parent form.
func (s *Service) GetByID(id string) (*models.SubmissionModel, error) {
	var sub models.SubmissionModel
	err := s.db.Where("id = ?", id).Preload("Form").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errSubmissionMissing
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateStatus moves a submission to the given review state. Setting the
// state it already holds succeeds without touching the row.
func (s *Service) UpdateStatus(id string, status models.SubmissionStatus) (*models.SubmissionModel, error) {
	if !status.Valid() {
		return nil, invalidf("unknown status %q", status)
	}

	var sub models.SubmissionModel
	err := s.db.Where("id = ?", id).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errSubmissionMissing
	}
	if err != nil {
		return nil, err
	}

	if sub.Status != status {
		if err := s.db.Model(&sub).Update("status", status).Error; err != nil {
			return nil, err
		}
		sub.Status = status
	}
	return &sub, nil
}

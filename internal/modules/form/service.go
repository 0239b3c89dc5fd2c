package form

import (
	"errors"
	"strings"

	"github.com/dsp-forms/core/internal/models"
	"github.com/dsp-forms/core/internal/pkg/pagination"
	"github.com/dsp-forms/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// ListPublic returns the public forms matching search and category,
// newest first.
func (s *Service) ListPublic(search, category string) ([]models.FormModel, error) {
	forms, err := s.loadPublic()
	if err != nil {
		return nil, err
	}
	return Filter(forms, search, category), nil
}

// Categories returns the category chips derived from the public catalog.
func (s *Service) Categories() ([]string, error) {
	forms, err := s.loadPublic()
	if err != nil {
		return nil, err
	}
	return CategoryChips(forms), nil
}

// GetPublic fetches a single public form by id.
func (s *Service) GetPublic(id string) (*models.FormModel, error) {
	var f models.FormModel
	err := s.db.Where("id = ? AND is_public = ?", id, true).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errFormNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListAll returns every form for the admin console, paginated.
func (s *Service) ListAll(q pagination.Query) ([]models.FormModel, response.Pagination, error) {
	var forms []models.FormModel
	query := s.db.Model(&models.FormModel{}).Order("created_at DESC")
	meta, err := pagination.Paginate(query, q, &forms)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return forms, meta, nil
}

// Create validates and persists a new form definition.
func (s *Service) Create(dto *CreateDTO, createdBy string) (*models.FormModel, error) {
	if err := dto.validate(); err != nil {
		return nil, err
	}

	isPublic := true
	if dto.IsPublic != nil {
		isPublic = *dto.IsPublic
	}
	category := strings.TrimSpace(dto.Category)
	if category == "" {
		category = "general"
	}

	f := models.FormModel{
		Title:        strings.TrimSpace(dto.Title),
		Description:  strings.TrimSpace(dto.Description),
		Category:     category,
		Fields:       dto.Fields,
		IsPublic:     isPublic,
		RequiresAuth: dto.RequiresAuth,
	}
	if createdBy != "" {
		f.CreatedBy = &createdBy
	}
	if err := s.db.Create(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// Delete removes a form by id, reporting errFormNotFound when nothing matched.
func (s *Service) Delete(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.FormModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errFormNotFound
	}
	return nil
}

func (s *Service) loadPublic() ([]models.FormModel, error) {
	var forms []models.FormModel
	err := s.db.Where("is_public = ?", true).Order("created_at DESC").Find(&forms).Error
	return forms, err
}

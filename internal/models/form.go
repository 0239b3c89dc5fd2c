package models

// FormModel is an authored, reusable template of fields. Forms are created
// whole and never edited field-by-field; the only mutations are create and
// delete.
type FormModel struct {
	Base
	Title        string    `json:"title"         gorm:"not null"`
	Description  string    `json:"description"`
	Category     string    `json:"category"      gorm:"index;default:general"`
	Fields       FieldList `json:"fields"        gorm:"type:json"`
	IsPublic     bool      `json:"is_public"     gorm:"default:true;index"`
	RequiresAuth bool      `json:"requires_auth" gorm:"default:false"`
	CreatedBy    *string   `json:"created_by,omitempty" gorm:"index"`
}

func (FormModel) TableName() string { return "forms" }

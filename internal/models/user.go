package models

import "time"

// UserModel is a registered account. IsAdmin gates the /admin surface; the
// first registered account becomes the administrator.
type UserModel struct {
	Base
	Email         string     `json:"email"    gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	Password      string     `json:"-"        gorm:"not null"`
	IsAdmin       bool       `json:"is_admin" gorm:"default:false"`
	LastLoginTime *time.Time `json:"last_login_time,omitempty"`
	LastLoginIP   string     `json:"-"`
}

func (UserModel) TableName() string { return "users" }

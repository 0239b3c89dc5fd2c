package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dsp-forms/core/internal/models"
	sessionpkg "github.com/dsp-forms/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login verifies credentials and issues a session-bound JWT.
func (s *Service) Login(email, password, ip, ua string) (string, error) {
	var u models.UserModel
	if err := s.db.Select("id, password").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", errUserNotFound
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(3 * time.Second)
		return "", errWrongPassword
	}

	now := time.Now()
	_ = s.db.Model(&models.UserModel{}).Where("id = ?", u.ID).
		Updates(map[string]interface{}{"last_login_time": now, "last_login_ip": ip}).Error

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, sessionpkg.DefaultTTL)
	return token, err
}

// Register creates an account. The first registered account becomes the
// administrator.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errEmailTaken
	}

	var total int64
	if err := s.db.Model(&models.UserModel{}).Count(&total).Error; err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	u := models.UserModel{
		Email:    email,
		Name:     name,
		Password: string(hash),
		IsAdmin:  total == 0,
	}
	return &u, s.db.Create(&u).Error
}

// SignOut revokes the session a token is bound to.
func (s *Service) SignOut(userID, sessionID string) error {
	err := sessionpkg.Revoke(s.db, userID, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

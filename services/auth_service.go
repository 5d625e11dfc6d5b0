package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anjiri1684/school_fees/apperrors"
	"github.com/anjiri1684/school_fees/logger"
	"github.com/anjiri1684/school_fees/models"
	"github.com/anjiri1684/school_fees/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

type LoginResult struct {
	Token string       `json:"token"`
	Admin models.Admin `json:"admin"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	var admin models.Admin
	err := s.db.WithContext(ctx).Where("username = ? AND active = ?", username, true).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		logger.Warn().Str("username", username).Msg("admin login failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateAdminToken(s.jwtSecret, admin.ID, utils.AdminTokenTTL)
	if err != nil {
		return nil, err
	}

	logger.Info().Uint("admin_id", admin.ID).Msg("admin logged in")
	return &LoginResult{Token: token, Admin: admin}, nil
}

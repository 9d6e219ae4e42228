package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"gorm.io/gorm"

	"github.com/justsurfingit/govconnect/internal/apperr"
	"github.com/justsurfingit/govconnect/internal/auth"
	"github.com/justsurfingit/govconnect/internal/database"
	"github.com/justsurfingit/govconnect/internal/dtos"
	"github.com/justsurfingit/govconnect/internal/models"
)

const duplicateEmailMessage = "User already exists with this email"

type AuthService struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
	// followers seeds the follower count shown on new company profiles.
	followers func() int
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		DB:        db,
		Tokens:    tokens,
		followers: func() int { return 10000 + rand.IntN(100000) },
	}
}

func (s *AuthService) Register(ctx context.Context, req *dtos.RegisterRequest) (string, *models.User, error) {
	email := normalizeEmail(req.Email)

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return "", nil, apperr.Validation(duplicateEmailMessage)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		UserType:     req.UserType,
	}
	if req.UserType == models.UserTypeCompany {
		user.Profile.CompanyName = strings.TrimSpace(req.CompanyName)
		user.Profile.WorkType = models.WorkTypeHybrid
		if user.Profile.CompanyName != "" {
			user.Profile.Followers = s.followers()
		}
	} else {
		user.Profile.FullName = strings.TrimSpace(req.FullName)
	}

	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return "", nil, apperr.Validation(duplicateEmailMessage)
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, _, err := s.Tokens.Issue(user.ID, user.Email, auth.Role(user.UserType))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, apperr.Unauthenticated("Invalid email or password", nil)
	}
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, apperr.Unauthenticated("Invalid email or password", nil)
	}

	token, _, err := s.Tokens.Issue(user.ID, user.Email, auth.Role(user.UserType))
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, notFound(err, "User not found")
	}
	return &user, nil
}

// UpdateProfile applies the provided profile fields that fit the user's type.
// Email, password, role and followers are not editable here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in *dtos.ProfileInput) (*models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &user.Profile
	switch user.UserType {
	case models.UserTypeCompany:
		assign(&p.CompanyName, in.CompanyName)
		assign(&p.Location, in.Location)
		assign(&p.WorkType, in.WorkType)
		assign(&p.Description, in.Description)
		assign(&p.CompanyImage, in.CompanyImage)
	case models.UserTypeStudent:
		assign(&p.FullName, in.FullName)
		assign(&p.FatherName, in.FatherName)
		assign(&p.MotherName, in.MotherName)
		assign(&p.College, in.College)
		assign(&p.Education, in.Education)
		assign(&p.Interest, in.Interest)
		assign(&p.LinkedIn, in.LinkedIn)
		assign(&p.Github, in.Github)
	}

	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return user, nil
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package services

import (
	"context"
	"errors"
	"strings"

	"studio_backend/internal/auth"
	"studio_backend/internal/logger"
	"studio_backend/internal/models"
	"studio_backend/internal/repositories"
	"studio_backend/internal/services/dto"
	"studio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// EnsureAdmin creates the admin account if no account has that email.
	EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) (created bool, err error)
}

type authService struct {
	adminRepo repositories.AdminRepository
	tokens    *auth.TokenManager
}

func NewAuthService(adminRepo repositories.AdminRepository, tokens *auth.TokenManager) AuthService {
	return &authService{adminRepo: adminRepo, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.adminRepo.FindByEmail(db.WithContext(ctx), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminNotFound) {
			logger.CtxWarn(ctx, "Login failed: unknown email")
			return nil, apperrors.ErrInvalidCredentials()
		}
		return nil, apperrors.DatabaseError(err)
	}
	if !auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		logger.CtxWarn(ctx, "Login failed: wrong password", "admin_id", admin.ID)
		return nil, apperrors.ErrInvalidCredentials()
	}

	token, err := s.tokens.Issue(admin.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LoginResponse{OK: true, Token: token}, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	db = db.WithContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, errors.New("admin email and password must be set")
	}

	_, err := s.adminRepo.FindByEmail(db, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repositories.ErrAdminNotFound) {
		return false, err
	}

	if err := auth.ValidatePassword(password); err != nil {
		return false, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}
	if err := s.adminRepo.Create(db, &models.AdminUser{Email: email, PasswordHash: hash}); err != nil {
		return false, err
	}
	return true, nil
}

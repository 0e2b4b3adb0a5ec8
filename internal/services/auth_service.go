package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diagnoai/diagno-backend/internal/config"
	"github.com/diagnoai/diagno-backend/internal/dto"
	"github.com/diagnoai/diagno-backend/internal/models"
	"github.com/diagnoai/diagno-backend/internal/principal"
	"github.com/diagnoai/diagno-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users  repository.UserStore
	access *AccessService
	cfg    *config.Config
}

func NewAuthService(users repository.UserStore, access *AccessService, cfg *config.Config) *AuthService {
	return &AuthService{users: users, access: access, cfg: cfg}
}

// Signup creates a PRIMARY account.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	if err := s.ensureAvailable(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:             uuid.New(),
		Username:       req.Username,
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       string(hash),
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		Gender:         strings.TrimSpace(req.Gender),
		Age:            req.Age,
		MedicalHistory: strings.TrimSpace(req.MedicalHistory),
		Role:           models.RolePrimary,
		IsActive:       true,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.takenField(ctx, req.Email)
		}
		return nil, err
	}
	return &user, nil
}

// Signin checks the credentials against the role the client claims to sign in
// as. A RELATIVE can only sign in once at least one primary user linked them.
func (s *AuthService) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.JWTResponse, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if user.Role != role {
		return nil, ErrRoleMismatch
	}

	if user.Role == models.RoleRelative {
		linked, err := s.access.HasRelativeAccess(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, ErrNoLinkedOwners
		}
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.JWTResponse{
		Token:    token,
		Type:     "Bearer",
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}, nil
}

// AddRelative creates a RELATIVE account and links it to the caller in one
// unit of work.
func (s *AuthService) AddRelative(ctx context.Context, caller principal.Identity, req *dto.AddRelativeRequest) (*models.User, error) {
	if !caller.IsPrimary() {
		return nil, ErrPrimaryRequired
	}
	if err := s.ensureAvailable(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	relative := models.User{
		ID:          uuid.New(),
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    string(hash),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Gender:      strings.TrimSpace(req.Gender),
		Age:         req.Age,
		Role:        models.RoleRelative,
		IsActive:    true,
	}

	if err := s.users.CreateRelative(ctx, &relative, caller.UserID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, s.takenField(ctx, req.Email)
		}
		return nil, err
	}
	return &relative, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

// takenField names the unique column a concurrent insert claimed first. The
// username is reported unless the email is now in use.
func (s *AuthService) takenField(ctx context.Context, email string) error {
	if taken, err := s.users.ExistsByEmail(ctx, email); err == nil && taken {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

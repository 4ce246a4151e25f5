package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/database"
	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/jwt"
	"github.com/feedchain/backend/services/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPasswordHashingFailed = errors.New("failed to hash password")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidPassword       = errors.New("invalid password length")
	ErrInvalidRole           = errors.New("invalid role")
	ErrDemoLoginDisabled     = errors.New("demo login is disabled")
)

const TokenTypeBearer = "bearer"

// Token is the result of a successful login.
type Token struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	UserID      string      `json:"user_id"`
	Role        models.Role `json:"role"`
}

type Service struct {
	config *config.Config
	db     *gorm.DB
	jwt    *jwt.Service
	logger *logging.Service
}

func NewService(cfg *config.Config, db *gorm.DB, jwtService *jwt.Service, logger *logging.Service) *Service {
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		config: cfg,
		db:     db,
		jwt:    jwtService,
		logger: logger,
	}
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// bcrypt reads at most 72 bytes of input.
const bcryptMaxBytes = 72

func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxBytes {
		b = b[:bcryptMaxBytes]
	}
	return b
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), s.config.Auth.BcryptCost)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("password hashing failed", zap.Error(err))
		}
		return "", ErrPasswordHashingFailed
	}
	return string(hash), nil
}

func (s *Service) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), bcryptInput(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *Service) Register(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || len(email) > 255 {
		return nil, ErrInvalidEmail
	}
	if n := utf8.RuneCountInString(password); n < s.config.Auth.PasswordMinLength || n > s.config.Auth.PasswordMaxLength {
		return nil, ErrInvalidPassword
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			if s.logger != nil {
				s.logger.Info("registration rejected: email taken", zap.String("email", email))
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	}

	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		if s.logger != nil {
			s.logger.Warn("login failed", zap.String("user_id", user.ID))
		}
		return nil, err
	}

	return s.issue(user.ID, user.Role)
}

// DemoLogin creates a throwaway account for role and signs it in.
func (s *Service) DemoLogin(ctx context.Context, role models.Role) (*Token, error) {
	if !s.config.Auth.DemoLoginEnabled {
		return nil, ErrDemoLoginDisabled
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	id := uuid.NewString()
	user := models.User{
		ID:    id,
		Email: fmt.Sprintf("demo-%s@%s", id, s.config.Auth.DemoEmailDomain),
		Role:  role,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "email"}),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert demo user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("demo login", zap.String("user_id", id), zap.String("role", string(role)))
	}

	return s.issue(id, role)
}

func (s *Service) issue(userID string, role models.Role) (*Token, error) {
	accessToken, err := s.jwt.GenerateToken(userID, role)
	if err != nil {
		return nil, err
	}
	return &Token{
		AccessToken: accessToken,
		TokenType:   TokenTypeBearer,
		UserID:      userID,
		Role:        role,
	}, nil
}

// IsDemoEmail reports whether email belongs to a demo account.
func (s *Service) IsDemoEmail(email string) bool {
	return strings.HasSuffix(NormalizeEmail(email), "@"+strings.ToLower(s.config.Auth.DemoEmailDomain))
}

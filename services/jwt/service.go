package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken     = errors.New("invalid JWT token")
	ErrExpiredToken     = errors.New("JWT token has expired")
	ErrMalformedToken   = errors.New("malformed JWT token")
	ErrInvalidSignature = errors.New("invalid JWT token signature")
	ErrMissingClaims    = errors.New("JWT token missing subject or role")
)

// Claims carries the subject id in the registered "sub" claim plus the caller role.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	config *config.Config
	logger *logging.Service
	now    func() time.Time
}

func NewService(cfg *config.Config, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) GetAccessExpirySeconds() int {
	return int(s.config.JWT.AccessExpiry.Seconds())
}

func (s *Service) GenerateToken(userID string, role models.Role) (string, error) {
	if userID == "" || !role.Valid() {
		return "", ErrMissingClaims
	}

	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.JWT.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.AccessExpiry)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.JWT.SecretKey))
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to sign JWT token", zap.Error(err))
		}
		return "", fmt.Errorf("failed to generate JWT token: %w", err)
	}

	return tokenString, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() == "none" {
			return nil, errors.New("'none' algorithm is not allowed")
		}

		if token.Method.Alg() != "HS256" {
			return nil, fmt.Errorf("unexpected algorithm: expected HS256, got %s", token.Method.Alg())
		}

		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid algorithm family: %v", token.Header["alg"])
		}

		return []byte(s.config.JWT.SecretKey), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	if err != nil {
		if s.logger != nil {
			s.logger.Warn("JWT token validation failed", zap.Error(err))
		}

		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		if s.logger != nil {
			s.logger.Warn("JWT token rejected", zap.Error(ErrMissingClaims))
		}
		return nil, ErrMissingClaims
	}

	return claims, nil
}

// Principal converts validated claims into the caller identity.
func (c *Claims) Principal() models.Principal {
	return models.Principal{UserID: c.Subject, Role: c.Role}
}

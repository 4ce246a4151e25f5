package testutils

import (
	"strings"
	"testing"
	"time"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const TestJWTSecret = "test-secret-key-32-chars-long!!!!"

func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:    "FeedChain Test",
			Version: "test",
		},
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            "0",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: config.LogConfig{
			Level:  "error",
			Format: "json",
			Output: "stdout",
		},
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			DSN:         ":memory:",
			AutoMigrate: true,
		},
		JWT: config.JWTConfig{
			SecretKey:    TestJWTSecret,
			Algorithm:    "HS256",
			AccessExpiry: 15 * time.Minute,
			Issuer:       "feedchain-test",
		},
		Auth: config.AuthConfig{
			BcryptCost:        bcrypt.MinCost,
			PasswordMinLength: 6,
			PasswordMaxLength: 100,
			DemoLoginEnabled:  true,
			DemoEmailDomain:   "feedchain.local",
		},
		CORS: config.CORSConfig{
			AllowOriginPattern: `^http://(localhost|127\.0\.0\.1)(:\d+)?$`,
			AllowMethods:       []string{"GET", "POST", "OPTIONS"},
			AllowCredentials:   true,
		},
		RateLimit: config.RateLimitConfig{
			Enabled: false,
			Rate:    20,
			Period:  time.Minute,
		},
		Pickup:       config.PickupConfig{OTPDigits: 6},
		Distribution: config.DistributionConfig{MaxPeopleServed: 100000},
		Mail: config.MailConfig{
			FromAddress: "noreply@feedchain.test",
			FromName:    "FeedChain",
		},
	}
}

var TestPasswords = struct {
	Valid    string
	TooShort string
	TooLong  string
}{
	Valid:    "secret123",
	TooShort: "abc",
	TooLong:  strings.Repeat("x", 101),
}

func CreateUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPasswords.Valid), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func CreateFoodPost(t *testing.T, db *gorm.DB, donorID string, status models.FoodPostStatus, expiry time.Time) models.FoodPost {
	t.Helper()

	post := models.FoodPost{
		ID:         uuid.NewString(),
		DonorID:    donorID,
		FoodType:   "Rice",
		Quantity:   "10 kg",
		ExpiryTime: expiry.UTC(),
		Status:     status,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

// CreateClaim inserts a claim row directly; active claims take the post's live slot.
func CreateClaim(t *testing.T, db *gorm.DB, postID, ngoID string, status models.ClaimStatus) models.Claim {
	t.Helper()

	claim := models.Claim{
		ID:         uuid.NewString(),
		FoodPostID: postID,
		NGOID:      ngoID,
		Status:     status,
		ClaimedAt:  time.Now().UTC(),
	}
	if status != models.ClaimCancelled {
		active := postID
		claim.ActivePostID = &active
	}
	require.NoError(t, db.Create(&claim).Error)
	return claim
}

package foodpost

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("food post not found")
	ErrInvalidExpiry      = errors.New("invalid expiry_time format")
	ErrExpiryInPast       = errors.New("expiry time must be in the future")
	ErrInvalidFoodType    = errors.New("food_type must be 1 to 200 characters")
	ErrInvalidQuantity    = errors.New("quantity must be 1 to 100 characters")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
)

// naiveLayouts are ISO-8601 forms without a zone; they are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseExpiry accepts RFC 3339 timestamps or zone-less ISO-8601 ones
// interpreted as UTC. The result is always in UTC.
func ParseExpiry(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidExpiry
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidExpiry
}

type CreateInput struct {
	FoodType   string
	Quantity   string
	ExpiryTime string
	PickupLat  *float64
	PickupLng  *float64
}

type Service struct {
	config *config.Config
	db     *gorm.DB
	logger *logging.Service
	now    func() time.Time
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func validLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func validLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

func (s *Service) Create(ctx context.Context, donorID string, in CreateInput) (*models.FoodPost, error) {
	if n := utf8.RuneCountInString(in.FoodType); n < 1 || n > 200 {
		return nil, ErrInvalidFoodType
	}
	if n := utf8.RuneCountInString(in.Quantity); n < 1 || n > 100 {
		return nil, ErrInvalidQuantity
	}
	if (in.PickupLat != nil && !validLatitude(*in.PickupLat)) || (in.PickupLng != nil && !validLongitude(*in.PickupLng)) {
		return nil, ErrInvalidCoordinates
	}

	expiry, err := ParseExpiry(in.ExpiryTime)
	if err != nil {
		return nil, err
	}
	if !expiry.After(s.now().UTC()) {
		return nil, ErrExpiryInPast
	}

	post := &models.FoodPost{
		ID:         uuid.NewString(),
		DonorID:    donorID,
		FoodType:   in.FoodType,
		Quantity:   in.Quantity,
		ExpiryTime: expiry,
		PickupLat:  in.PickupLat,
		PickupLng:  in.PickupLng,
		Status:     models.FoodPostPosted,
	}

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to create food post: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("food post created",
			zap.String("post_id", post.ID),
			zap.String("donor_id", donorID),
			zap.Time("expiry_time", expiry))
	}

	return post, nil
}

// ListMine returns every post of the donor, newest first.
func (s *Service) ListMine(ctx context.Context, donorID string) ([]models.FoodPost, error) {
	posts := []models.FoodPost{}
	err := s.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list food posts: %w", err)
	}
	return posts, nil
}

// ListNearby returns claimable posts, soonest expiry first. The coordinates
// are validated but no distance filter is applied.
func (s *Service) ListNearby(ctx context.Context, lat, lng float64) ([]models.FoodPost, error) {
	if !validLatitude(lat) || !validLongitude(lng) {
		return nil, ErrInvalidCoordinates
	}

	posts := []models.FoodPost{}
	err := s.db.WithContext(ctx).
		Where("status = ? AND expiry_time > ?", models.FoodPostPosted, s.now().UTC()).
		Order("expiry_time ASC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list nearby food posts: %w", err)
	}
	return posts, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.FoodPost, error) {
	var post models.FoodPost
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load food post: %w", err)
	}
	return &post, nil
}

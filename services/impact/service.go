package impact

import (
	"context"
	"fmt"

	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/logging"
	"gorm.io/gorm"
)

type Summary struct {
	MealsServed             int64 `json:"meals_served"`
	ActiveNGOs              int64 `json:"active_ngos"`
	SuccessfulDistributions int64 `json:"successful_distributions"`
}

type Overview struct {
	FoodPosts []models.FoodPost `json:"food_posts"`
	Claims    []models.Claim    `json:"claims"`
}

type Service struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewService(db *gorm.DB, logger *logging.Service) *Service {
	return &Service{db: db, logger: logger}
}

// Summary aggregates distribution outcomes across all NGOs.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	db := s.db.WithContext(ctx)
	var summary Summary

	err := db.Model(&models.Claim{}).
		Select("COALESCE(SUM(people_served), 0) AS meals_served, COUNT(*) AS successful_distributions").
		Where("status = ?", models.ClaimDistributed).
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate distributions: %w", err)
	}

	err = db.Model(&models.Claim{}).
		Where("status <> ?", models.ClaimCancelled).
		Distinct("ngo_id").
		Count(&summary.ActiveNGOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active NGOs: %w", err)
	}

	return &summary, nil
}

// Overview lists every post and claim, newest first.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	db := s.db.WithContext(ctx)
	overview := &Overview{
		FoodPosts: []models.FoodPost{},
		Claims:    []models.Claim{},
	}

	if err := db.Order("created_at DESC").Find(&overview.FoodPosts).Error; err != nil {
		return nil, fmt.Errorf("failed to list food posts: %w", err)
	}
	if err := db.Order("claimed_at DESC").Find(&overview.Claims).Error; err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}

	return overview, nil
}

package claim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/database"
	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/logging"
	"github.com/feedchain/backend/services/otp"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrFoodPostNotFound        = errors.New("food post not found")
	ErrClaimNotFound           = errors.New("claim not found")
	ErrNotOwner                = errors.New("not your claim")
	ErrUnavailable             = errors.New("food already claimed or unavailable")
	ErrExpired                 = errors.New("food has expired")
	ErrClaimedByAnother        = errors.New("food already claimed by another NGO")
	ErrCannotCancel            = errors.New("cannot cancel after pickup")
	ErrInvalidState            = errors.New("invalid claim state")
	ErrOTPRequired             = errors.New("OTP required")
	ErrInvalidOTP              = errors.New("invalid OTP")
	ErrVerificationNotFound    = errors.New("verification not found")
	ErrNotReadyForDistribution = errors.New("food not ready for distribution")
	ErrInvalidPeopleServed     = errors.New("people_served out of range")
	ErrInvalidLocation         = errors.New("location must be at most 500 characters")
	// ErrConflict means a conditional update matched no row: another request
	// moved the record first.
	ErrConflict = errors.New("claim state changed concurrently")
)

const (
	maxOTPLength      = 10
	maxLocationLength = 500
)

// Notifier is told about completed transitions. Implementations must not
// block for long and must swallow their own failures.
type Notifier interface {
	FoodClaimed(ctx context.Context, post models.FoodPost, claim models.Claim)
	FoodDistributed(ctx context.Context, post models.FoodPost, claim models.Claim)
}

// PickupResult is the outcome of InitiatePickup. Created is false when an
// earlier call already issued the code.
type PickupResult struct {
	OTP     string
	Created bool
}

type Service struct {
	config   *config.Config
	db       *gorm.DB
	otp      *otp.Service
	logger   *logging.Service
	notifier Notifier
	now      func() time.Time
}

func NewService(cfg *config.Config, db *gorm.DB, otpService *otp.Service, logger *logging.Service) *Service {
	return &Service{
		config: cfg,
		db:     db,
		otp:    otpService,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// expectRow turns a conditional update that touched nothing into ErrConflict.
func expectRow(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}

// Claim reserves a posted, unexpired food post for the NGO. The unique
// active-claim index decides races; the status read beforehand only
// produces friendlier errors.
func (s *Service) Claim(ctx context.Context, ngoID, postID string) (*models.Claim, error) {
	db := s.db.WithContext(ctx)

	var post models.FoodPost
	if err := db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodPostNotFound
		}
		return nil, fmt.Errorf("failed to load food post: %w", err)
	}

	if post.Status != models.FoodPostPosted {
		return nil, ErrUnavailable
	}

	now := s.timestamp()
	if !post.ExpiryTime.After(now) {
		return nil, ErrExpired
	}

	active := post.ID
	claim := &models.Claim{
		ID:           uuid.NewString(),
		FoodPostID:   post.ID,
		NGOID:        ngoID,
		ActivePostID: &active,
		Status:       models.ClaimClaimed,
		ClaimedAt:    now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(claim).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return ErrClaimedByAnother
			}
			return fmt.Errorf("failed to create claim: %w", err)
		}

		res := tx.Model(&models.FoodPost{}).
			Where("id = ? AND status = ?", post.ID, models.FoodPostPosted).
			Update("status", models.FoodPostClaimed)
		if err := expectRow(res); err != nil {
			if errors.Is(err, ErrConflict) {
				return ErrClaimedByAnother
			}
			return fmt.Errorf("failed to mark food post claimed: %w", err)
		}
		return nil
	})
	if err != nil {
		if s.logger != nil && errors.Is(err, ErrClaimedByAnother) {
			s.logger.Info("claim lost race", zap.String("post_id", postID), zap.String("ngo_id", ngoID))
		}
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("food claimed",
			zap.String("claim_id", claim.ID),
			zap.String("post_id", post.ID),
			zap.String("ngo_id", ngoID))
	}

	if s.notifier != nil {
		post.Status = models.FoodPostClaimed
		s.notifier.FoodClaimed(ctx, post, *claim)
	}

	return claim, nil
}

// ListMine returns the NGO's claims with their food posts, newest first.
func (s *Service) ListMine(ctx context.Context, ngoID string) ([]models.Claim, error) {
	claims := []models.Claim{}
	err := s.db.WithContext(ctx).
		Preload("FoodPost").
		Where("ngo_id = ?", ngoID).
		Order("claimed_at DESC").
		Find(&claims).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, nil
}

func (s *Service) loadOwnedClaim(ctx context.Context, ngoID, claimID string) (*models.Claim, error) {
	var claim models.Claim
	if err := s.db.WithContext(ctx).First(&claim, "id = ?", claimID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to load claim: %w", err)
	}
	if claim.NGOID != ngoID {
		return nil, ErrNotOwner
	}
	return &claim, nil
}

// Cancel releases a claim that has not been picked up and reopens the post.
func (s *Service) Cancel(ctx context.Context, ngoID, claimID string) error {
	claim, err := s.loadOwnedClaim(ctx, ngoID, claimID)
	if err != nil {
		return err
	}
	if claim.Status != models.ClaimClaimed {
		return ErrCannotCancel
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Claim{}).
			Where("id = ? AND status = ?", claim.ID, models.ClaimClaimed).
			Updates(map[string]any{
				"status":         models.ClaimCancelled,
				"active_post_id": nil,
			})
		if err := expectRow(res); err != nil {
			return err
		}

		res = tx.Model(&models.FoodPost{}).
			Where("id = ? AND status = ?", claim.FoodPostID, models.FoodPostClaimed).
			Update("status", models.FoodPostPosted)
		return expectRow(res)
	})
	if err != nil {
		return s.transitionFailed("cancel", claim.ID, err)
	}

	if s.logger != nil {
		s.logger.Info("claim cancelled", zap.String("claim_id", claim.ID), zap.String("post_id", claim.FoodPostID))
	}
	return nil
}

// InitiatePickup issues the pickup code for a claim. Repeated calls return
// the code issued first.
func (s *Service) InitiatePickup(ctx context.Context, ngoID, claimID string) (*PickupResult, error) {
	claim, err := s.loadOwnedClaim(ctx, ngoID, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != models.ClaimClaimed {
		return nil, ErrInvalidState
	}

	db := s.db.WithContext(ctx)

	existing, err := s.findVerification(db, claim.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &PickupResult{OTP: existing.OTPCode, Created: false}, nil
	}

	code, err := s.otp.Generate()
	if err != nil {
		return nil, err
	}

	verification := &models.PickupVerification{
		ClaimID: claim.ID,
		Method:  models.VerificationMethodOTP,
		OTPCode: code,
	}
	if err := db.Create(verification).Error; err != nil {
		if !database.IsDuplicateKey(err) {
			return nil, fmt.Errorf("failed to create pickup verification: %w", err)
		}
		winner, findErr := s.findVerification(db, claim.ID)
		if findErr != nil {
			return nil, findErr
		}
		if winner == nil {
			return nil, fmt.Errorf("failed to create pickup verification: %w", err)
		}
		return &PickupResult{OTP: winner.OTPCode, Created: false}, nil
	}

	if s.logger != nil {
		s.logger.Info("pickup initiated", zap.String("claim_id", claim.ID))
	}

	return &PickupResult{OTP: code, Created: true}, nil
}

func (s *Service) findVerification(db *gorm.DB, claimID string) (*models.PickupVerification, error) {
	var rows []models.PickupVerification
	err := db.Where("claim_id = ?", claimID).Order("id DESC").Limit(1).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pickup verification: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// VerifyPickup checks the submitted code and, on a match, moves the claim
// and its post to PICKED. A mismatch changes nothing.
func (s *Service) VerifyPickup(ctx context.Context, ngoID, claimID, code string) error {
	if code == "" {
		return ErrOTPRequired
	}

	claim, err := s.loadOwnedClaim(ctx, ngoID, claimID)
	if err != nil {
		return err
	}

	db := s.db.WithContext(ctx)

	verification, err := s.findVerification(db, claim.ID)
	if err != nil {
		return err
	}
	if verification == nil {
		return ErrVerificationNotFound
	}

	if len(code) > maxOTPLength || !otp.Equal(verification.OTPCode, code) {
		if s.logger != nil {
			s.logger.Warn("pickup OTP mismatch", zap.String("claim_id", claim.ID))
		}
		return ErrInvalidOTP
	}

	now := s.timestamp()
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PickupVerification{}).
			Where("id = ? AND verified = ?", verification.ID, false).
			Updates(map[string]any{"verified": true, "verified_at": now})
		if err := expectRow(res); err != nil {
			return err
		}

		res = tx.Model(&models.Claim{}).
			Where("id = ? AND status = ?", claim.ID, models.ClaimClaimed).
			Updates(map[string]any{"status": models.ClaimPicked, "picked_at": now})
		if err := expectRow(res); err != nil {
			return err
		}

		res = tx.Model(&models.FoodPost{}).
			Where("id = ? AND status = ?", claim.FoodPostID, models.FoodPostClaimed).
			Update("status", models.FoodPostPicked)
		return expectRow(res)
	})
	if err != nil {
		return s.transitionFailed("verify pickup", claim.ID, err)
	}

	if s.logger != nil {
		s.logger.Info("pickup verified", zap.String("claim_id", claim.ID), zap.String("post_id", claim.FoodPostID))
	}
	return nil
}

// Distribute records the hand-out of picked food and closes the post.
func (s *Service) Distribute(ctx context.Context, ngoID, claimID string, peopleServed int, location *string) error {
	if peopleServed < 1 || peopleServed > s.config.Distribution.MaxPeopleServed {
		return ErrInvalidPeopleServed
	}
	if location != nil {
		if utf8.RuneCountInString(*location) > maxLocationLength {
			return ErrInvalidLocation
		}
		if strings.TrimSpace(*location) == "" {
			location = nil
		}
	}

	claim, err := s.loadOwnedClaim(ctx, ngoID, claimID)
	if err != nil {
		return err
	}
	if claim.Status != models.ClaimPicked {
		return ErrNotReadyForDistribution
	}

	now := s.timestamp()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Claim{}).
			Where("id = ? AND status = ?", claim.ID, models.ClaimPicked).
			Updates(map[string]any{
				"status":                models.ClaimDistributed,
				"distributed_at":        now,
				"people_served":         peopleServed,
				"distribution_location": location,
			})
		if err := expectRow(res); err != nil {
			return err
		}

		res = tx.Model(&models.FoodPost{}).
			Where("id = ? AND status = ?", claim.FoodPostID, models.FoodPostPicked).
			Update("status", models.FoodPostClosed)
		return expectRow(res)
	})
	if err != nil {
		return s.transitionFailed("distribute", claim.ID, err)
	}

	if s.logger != nil {
		s.logger.Info("food distributed",
			zap.String("claim_id", claim.ID),
			zap.Int("people_served", peopleServed))
	}

	if s.notifier != nil {
		var post models.FoodPost
		if err := s.db.WithContext(ctx).First(&post, "id = ?", claim.FoodPostID).Error; err == nil {
			claim.Status = models.ClaimDistributed
			claim.DistributedAt = &now
			claim.PeopleServed = &peopleServed
			claim.DistributionLocation = location
			s.notifier.FoodDistributed(ctx, post, *claim)
		} else if s.logger != nil {
			s.logger.Warn("skipping distribution notice", zap.String("claim_id", claim.ID), zap.Error(err))
		}
	}

	return nil
}

func (s *Service) transitionFailed(op, claimID string, err error) error {
	if errors.Is(err, ErrConflict) {
		if s.logger != nil {
			s.logger.Warn("claim transition lost race", zap.String("op", op), zap.String("claim_id", claimID))
		}
		return ErrConflict
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

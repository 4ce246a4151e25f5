package models

import "time"

type FoodPostStatus string

const (
	FoodPostPosted  FoodPostStatus = "POSTED"
	FoodPostClaimed FoodPostStatus = "CLAIMED"
	FoodPostPicked  FoodPostStatus = "PICKED"
	FoodPostClosed  FoodPostStatus = "CLOSED"
)

type ClaimStatus string

const (
	ClaimClaimed     ClaimStatus = "CLAIMED"
	ClaimCancelled   ClaimStatus = "CANCELLED"
	ClaimPicked      ClaimStatus = "PICKED"
	ClaimDistributed ClaimStatus = "DISTRIBUTED"
)

const VerificationMethodOTP = "OTP"

type User struct {
	ID           string    `gorm:"size:36;primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         Role      `gorm:"size:16;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

type FoodPost struct {
	ID         string         `gorm:"size:36;primaryKey" json:"id"`
	DonorID    string         `gorm:"size:36;index;not null" json:"donor_id"`
	FoodType   string         `gorm:"size:200;not null" json:"food_type"`
	Quantity   string         `gorm:"size:100;not null" json:"quantity"`
	ExpiryTime time.Time      `gorm:"index;not null" json:"expiry_time"`
	PickupLat  *float64       `json:"pickup_lat"`
	PickupLng  *float64       `json:"pickup_lng"`
	Status     FoodPostStatus `gorm:"size:16;index;not null" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (FoodPost) TableName() string {
	return "food_posts"
}

// Claim rows keep ActivePostID equal to FoodPostID until cancelled. The
// unique index on it admits at most one live claim per post.
type Claim struct {
	ID                   string      `gorm:"size:36;primaryKey" json:"id"`
	FoodPostID           string      `gorm:"size:36;index;not null" json:"food_post_id"`
	NGOID                string      `gorm:"column:ngo_id;size:36;index;not null" json:"ngo_id"`
	ActivePostID         *string     `gorm:"size:36;uniqueIndex" json:"-"`
	Status               ClaimStatus `gorm:"size:16;index;not null" json:"status"`
	ClaimedAt            time.Time   `json:"claimed_at"`
	PickedAt             *time.Time  `json:"picked_at"`
	DistributedAt        *time.Time  `json:"distributed_at"`
	PeopleServed         *int        `json:"people_served"`
	DistributionLocation *string     `gorm:"size:500" json:"distribution_location"`
	FoodPost             *FoodPost   `gorm:"foreignKey:FoodPostID" json:"food_posts,omitempty"`
}

func (Claim) TableName() string {
	return "claims"
}

type PickupVerification struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ClaimID    string     `gorm:"size:36;uniqueIndex;not null" json:"claim_id"`
	Method     string     `gorm:"size:16;not null" json:"method"`
	OTPCode    string     `gorm:"column:otp_code;size:16;not null" json:"-"`
	Verified   bool       `gorm:"not null;default:false" json:"verified"`
	VerifiedAt *time.Time `json:"verified_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (PickupVerification) TableName() string {
	return "pickup_verification"
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{&User{}, &FoodPost{}, &Claim{}, &PickupVerification{}}
}

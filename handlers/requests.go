package handlers

import (
	"github.com/feedchain/backend/models"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"donor@example.org"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Role     string `json:"role" validate:"required,oneof=donor ngo admin"`
}

type RegisterResponse struct {
	Message string      `json:"message"`
	UserID  string      `json:"user_id"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
}

// LoginRequest signs in with email and password, or with role alone for a
// demo account.
type LoginRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,max=100"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=donor ngo admin"`
}

type MeResponse struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
}

type CreateFoodPostRequest struct {
	FoodType   string   `json:"food_type" validate:"required,min=1,max=200" example:"Vegetable biryani"`
	Quantity   string   `json:"quantity" validate:"required,min=1,max=100" example:"40 plates"`
	ExpiryTime string   `json:"expiry_time" validate:"required" example:"2030-01-01T18:00:00Z"`
	PickupLat  *float64 `json:"pickup_lat,omitempty" validate:"omitempty,latitude"`
	PickupLng  *float64 `json:"pickup_lng,omitempty" validate:"omitempty,longitude"`
}

type NearbyQuery struct {
	Lat float64 `query:"lat" validate:"latitude"`
	Lng float64 `query:"lng" validate:"longitude"`
}

type VerifyPickupRequest struct {
	OTP string `json:"otp" validate:"max=10"`
}

type DistributeRequest struct {
	PeopleServed int     `json:"people_served" validate:"min=1"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=500"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PickupResponse carries the code under both names; older clients read
// otp_for_demo.
type PickupResponse struct {
	Message    string `json:"message"`
	OTP        string `json:"otp"`
	OTPForDemo string `json:"otp_for_demo"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/auth"
	"github.com/feedchain/backend/services/claim"
	"github.com/feedchain/backend/services/foodpost"
	"github.com/labstack/echo/v4"
)

const (
	msgInvalidBody      = "Invalid request body"
	msgMissingLoginData = "Provide either email+password or role (for demo)"
	msgNearbyQuery      = "lat and lng query parameters are required numbers"
)

type errorMapping struct {
	target error
	code   int
	detail string
}

var errorMappings = []errorMapping{
	{auth.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{auth.ErrInvalidEmail, http.StatusBadRequest, "Invalid email"},
	{auth.ErrInvalidPassword, http.StatusBadRequest, "Password must be 6 to 100 characters"},
	{auth.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{models.ErrUnknownRole, http.StatusBadRequest, "Invalid role"},
	{auth.ErrDemoLoginDisabled, http.StatusForbidden, "Demo login is disabled"},

	{foodpost.ErrNotFound, http.StatusNotFound, "Food post not found"},
	{foodpost.ErrInvalidExpiry, http.StatusBadRequest, "Invalid expiry_time format"},
	{foodpost.ErrExpiryInPast, http.StatusBadRequest, "Expiry time must be in the future"},
	{foodpost.ErrInvalidFoodType, http.StatusBadRequest, "food_type must be 1 to 200 characters"},
	{foodpost.ErrInvalidQuantity, http.StatusBadRequest, "quantity must be 1 to 100 characters"},
	{foodpost.ErrInvalidCoordinates, http.StatusBadRequest, "Coordinates out of range"},

	{claim.ErrFoodPostNotFound, http.StatusNotFound, "Food post not found"},
	{claim.ErrClaimNotFound, http.StatusNotFound, "Claim not found"},
	{claim.ErrNotOwner, http.StatusForbidden, "Not your claim"},
	{claim.ErrUnavailable, http.StatusConflict, "Food already claimed or unavailable"},
	{claim.ErrExpired, http.StatusConflict, "Food has expired"},
	{claim.ErrClaimedByAnother, http.StatusConflict, "Food already claimed by another NGO"},
	{claim.ErrCannotCancel, http.StatusConflict, "Cannot cancel after pickup"},
	{claim.ErrInvalidState, http.StatusConflict, "Invalid claim state"},
	{claim.ErrOTPRequired, http.StatusBadRequest, "OTP required"},
	{claim.ErrInvalidOTP, http.StatusBadRequest, "Invalid OTP"},
	{claim.ErrVerificationNotFound, http.StatusNotFound, "Verification not found"},
	{claim.ErrNotReadyForDistribution, http.StatusConflict, "Food not ready for distribution"},
	{claim.ErrInvalidLocation, http.StatusBadRequest, "location must be at most 500 characters"},
	{claim.ErrConflict, http.StatusConflict, "Claim was modified by another request, please retry"},
}

// toHTTPError maps service errors to responses. Unknown errors become a
// 500 that keeps the cause for the error handler's log.
func (h *Handler) toHTTPError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	if errors.Is(err, claim.ErrInvalidPeopleServed) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("people_served must be between 1 and %d", h.config.Distribution.MaxPeopleServed))
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return echo.NewHTTPError(m.code, m.detail)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

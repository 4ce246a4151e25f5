package handlers

import (
	"net/http"

	"github.com/feedchain/backend/services/claim"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ClaimFoodPost(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	postID, err := idParam(c, claim.ErrFoodPostNotFound)
	if err != nil {
		return h.toHTTPError(err)
	}

	if _, err := h.claims.Claim(c.Request().Context(), p.UserID, postID); err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Food successfully claimed"})
}

func (h *Handler) MyClaims(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	claims, err := h.claims.ListMine(c.Request().Context(), p.UserID)
	if err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, claims)
}

func (h *Handler) CancelClaim(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	claimID, err := idParam(c, claim.ErrClaimNotFound)
	if err != nil {
		return h.toHTTPError(err)
	}

	if err := h.claims.Cancel(c.Request().Context(), p.UserID, claimID); err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Claim cancelled"})
}

func (h *Handler) InitiatePickup(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	claimID, err := idParam(c, claim.ErrClaimNotFound)
	if err != nil {
		return h.toHTTPError(err)
	}

	result, err := h.claims.InitiatePickup(c.Request().Context(), p.UserID, claimID)
	if err != nil {
		return h.toHTTPError(err)
	}

	message := "Pickup initiated"
	if !result.Created {
		message = "Pickup already initiated"
	}
	return c.JSON(http.StatusOK, PickupResponse{
		Message:    message,
		OTP:        result.OTP,
		OTPForDemo: result.OTP,
	})
}

func (h *Handler) VerifyPickup(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	claimID, err := idParam(c, claim.ErrClaimNotFound)
	if err != nil {
		return h.toHTTPError(err)
	}

	var req VerifyPickupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.claims.VerifyPickup(c.Request().Context(), p.UserID, claimID, req.OTP); err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Pickup verified, food picked"})
}

func (h *Handler) Distribute(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	claimID, err := idParam(c, claim.ErrClaimNotFound)
	if err != nil {
		return h.toHTTPError(err)
	}

	var req DistributeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.claims.Distribute(c.Request().Context(), p.UserID, claimID, req.PeopleServed, req.Location); err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Food distributed successfully"})
}

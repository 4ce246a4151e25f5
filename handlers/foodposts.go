package handlers

import (
	"net/http"

	"github.com/feedchain/backend/services/foodpost"
	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateFoodPost(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req CreateFoodPostRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	post, err := h.foodPosts.Create(c.Request().Context(), p.UserID, foodpost.CreateInput{
		FoodType:   req.FoodType,
		Quantity:   req.Quantity,
		ExpiryTime: req.ExpiryTime,
		PickupLat:  req.PickupLat,
		PickupLng:  req.PickupLng,
	})
	if err != nil {
		return h.toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

func (h *Handler) MyFoodPosts(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	posts, err := h.foodPosts.ListMine(c.Request().Context(), p.UserID)
	if err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *Handler) NearbyFoodPosts(c echo.Context) error {
	var q NearbyQuery
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &q.Lat).
		MustFloat64("lng", &q.Lng).
		BindError()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgNearbyQuery).SetInternal(err)
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	posts, err := h.foodPosts.ListNearby(c.Request().Context(), q.Lat, q.Lng)
	if err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *Handler) GetFoodPost(c echo.Context) error {
	id, err := idParam(c, foodpost.ErrNotFound)
	if err != nil {
		return h.toHTTPError(err)
	}

	post, err := h.foodPosts.Get(c.Request().Context(), id)
	if err != nil {
		return h.toHTTPError(err)
	}
	return c.JSON(http.StatusOK, post)
}

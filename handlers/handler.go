package handlers

import (
	"net/http"

	"github.com/feedchain/backend/config"
	jwtmiddleware "github.com/feedchain/backend/middleware/jwt"
	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/auth"
	"github.com/feedchain/backend/services/claim"
	"github.com/feedchain/backend/services/foodpost"
	"github.com/feedchain/backend/services/impact"
	"github.com/feedchain/backend/services/jwt"
	"github.com/feedchain/backend/services/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler exposes the HTTP API. It holds no request state.
type Handler struct {
	config    *config.Config
	auth      *auth.Service
	jwt       *jwt.Service
	foodPosts *foodpost.Service
	claims    *claim.Service
	impact    *impact.Service
	logger    *logging.Service
}

func NewHandler(
	cfg *config.Config,
	authService *auth.Service,
	jwtService *jwt.Service,
	foodPostService *foodpost.Service,
	claimService *claim.Service,
	impactService *impact.Service,
	logger *logging.Service,
) *Handler {
	return &Handler{
		config:    cfg,
		auth:      authService,
		jwt:       jwtService,
		foodPosts: foodPostService,
		claims:    claimService,
		impact:    impactService,
		logger:    logger,
	}
}

// bind decodes and validates the request into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
	}
	return c.Validate(req)
}

func principal(c echo.Context) (models.Principal, error) {
	p, ok := jwtmiddleware.GetPrincipal(c)
	if !ok {
		return models.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return p, nil
}

// idParam returns the :id path parameter. Values that are not UUIDs cannot
// name a stored record, so they are reported as notFound.
func idParam(c echo.Context, notFound error) (string, error) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		return "", notFound
	}
	return id, nil
}

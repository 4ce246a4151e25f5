package handlers

import (
	"net/http"

	jwtmiddleware "github.com/feedchain/backend/middleware/jwt"
	"github.com/feedchain/backend/middleware/rbac"
	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/openapi"
	"github.com/feedchain/backend/server"
	"github.com/feedchain/backend/services/impact"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the API on srv and describes every route in docs.
// authLimiter guards the credential endpoints.
func (h *Handler) RegisterRoutes(srv *server.Server, docs *openapi.OpenAPI, authLimiter echo.MiddlewareFunc) {
	authn := jwtmiddleware.RequireJWT(h.jwt)
	only := func(message string, roles ...models.Role) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{authn, rbac.RequireRoleWithMessage(message, roles...)}
	}

	docs.Document(http.MethodGet, "/health").
		Summary("Liveness probe").
		Response(http.StatusOK, HealthResponse{}, "Service is up").
		Build()

	authGroup := srv.Group("/auth")
	authGroup.POST("/register", h.Register, authLimiter)
	authGroup.POST("/login", h.Login, authLimiter)
	authGroup.GET("/me", h.Me, authn)

	docs.Document(http.MethodPost, "/auth/register").
		Tags("auth").
		Summary("Create an account with email and password").
		Body(RegisterRequest{}, "New account").
		Response(http.StatusOK, RegisterResponse{}, "Account created").
		Errors(http.StatusBadRequest, http.StatusTooManyRequests).
		Build()
	docs.Document(http.MethodPost, "/auth/login").
		Tags("auth").
		Summary("Sign in, or create a demo account when only a role is given").
		Body(LoginRequest{}, "Credentials or demo role").
		Response(http.StatusOK, authTokenExample, "Bearer token").
		Errors(http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests).
		Build()
	docs.Document(http.MethodGet, "/auth/me").
		Tags("auth").
		Summary("Identity carried by the token").
		Roles().
		Response(http.StatusOK, MeResponse{}, "Caller").
		Build()

	posts := srv.Group("/food-posts")
	posts.POST("", h.CreateFoodPost, only("Only donors can post food", models.RoleDonor)...)
	posts.GET("/my", h.MyFoodPosts, only("Only donors allowed", models.RoleDonor)...)
	posts.GET("/nearby", h.NearbyFoodPosts, only("Only NGOs allowed", models.RoleNGO)...)
	posts.GET("/:id", h.GetFoodPost, authn)
	posts.POST("/:id/claim", h.ClaimFoodPost, only("Only NGOs can claim food", models.RoleNGO)...)

	docs.Document(http.MethodPost, "/food-posts").
		Tags("food-posts").
		Summary("Post surplus food").
		Roles(models.RoleDonor).
		Body(CreateFoodPostRequest{}, "Food details; expiry_time is RFC 3339 or a zone-less ISO timestamp read as UTC").
		Response(http.StatusCreated, foodPostExample, "Created post").
		Errors(http.StatusBadRequest).
		Build()
	docs.Document(http.MethodGet, "/food-posts/my").
		Tags("food-posts").
		Summary("The donor's posts, newest first").
		Roles(models.RoleDonor).
		Response(http.StatusOK, foodPostListExample, "Posts").
		Build()
	docs.Document(http.MethodGet, "/food-posts/nearby").
		Tags("food-posts").
		Summary("Claimable posts, soonest expiry first").
		Roles(models.RoleNGO).
		QueryParam("lat", "Latitude").Required().TypeNumber().Min(-90).Max(90).Done().
		QueryParam("lng", "Longitude").Required().TypeNumber().Min(-180).Max(180).Done().
		Response(http.StatusOK, foodPostListExample, "Posts").
		Errors(http.StatusBadRequest).
		Build()
	docs.Document(http.MethodGet, "/food-posts/:id").
		Tags("food-posts").
		Summary("One food post").
		Roles().
		PathParam("id", "Food post ID").Format("uuid").Done().
		Response(http.StatusOK, foodPostExample, "Post").
		Errors(http.StatusNotFound).
		Build()
	docs.Document(http.MethodPost, "/food-posts/:id/claim").
		Tags("claims").
		Summary("Claim a posted, unexpired food post").
		Roles(models.RoleNGO).
		PathParam("id", "Food post ID").Format("uuid").Done().
		Response(http.StatusOK, MessageResponse{}, "Claimed").
		Errors(http.StatusNotFound, http.StatusConflict).
		Build()

	claims := srv.Group("/claims")
	claims.GET("/my", h.MyClaims, only("Only NGOs can list claims", models.RoleNGO)...)
	claims.POST("/:id/cancel", h.CancelClaim, only("Only NGOs can cancel claims", models.RoleNGO)...)
	claims.POST("/:id/pickup", h.InitiatePickup, only("Only NGOs can pickup food", models.RoleNGO)...)
	claims.POST("/:id/verify", h.VerifyPickup, only("Only NGOs can verify pickup", models.RoleNGO)...)
	claims.POST("/:id/distribute", h.Distribute, only("Only NGOs can distribute food", models.RoleNGO)...)

	docs.Document(http.MethodGet, "/claims/my").
		Tags("claims").
		Summary("The NGO's claims with their food posts, newest first").
		Roles(models.RoleNGO).
		Response(http.StatusOK, claimListExample, "Claims").
		Build()
	docs.Document(http.MethodPost, "/claims/:id/cancel").
		Tags("claims").
		Summary("Cancel a claim before pickup").
		Roles(models.RoleNGO).
		Response(http.StatusOK, MessageResponse{}, "Cancelled").
		Errors(http.StatusNotFound, http.StatusConflict).
		Build()
	docs.Document(http.MethodPost, "/claims/:id/pickup").
		Tags("claims").
		Summary("Issue the pickup code; repeated calls return the same code").
		Roles(models.RoleNGO).
		Response(http.StatusOK, PickupResponse{}, "Pickup code").
		Errors(http.StatusNotFound, http.StatusConflict).
		Build()
	docs.Document(http.MethodPost, "/claims/:id/verify").
		Tags("claims").
		Summary("Confirm pickup with the code").
		Roles(models.RoleNGO).
		Body(VerifyPickupRequest{}, "Pickup code").
		Response(http.StatusOK, MessageResponse{}, "Picked").
		Errors(http.StatusBadRequest, http.StatusNotFound, http.StatusConflict).
		Build()
	docs.Document(http.MethodPost, "/claims/:id/distribute").
		Tags("claims").
		Summary("Record distribution of picked food").
		Roles(models.RoleNGO).
		Body(DistributeRequest{}, "Distribution details").
		Response(http.StatusOK, MessageResponse{}, "Distributed").
		Errors(http.StatusBadRequest, http.StatusNotFound, http.StatusConflict).
		Build()

	srv.Get("/impact/summary", h.ImpactSummary)
	srv.Get("/admin/overview", h.AdminOverview, only("Only admins allowed", models.RoleAdmin)...)

	docs.Document(http.MethodGet, "/impact/summary").
		Tags("impact").
		Summary("Meals served, active NGOs and completed distributions").
		Response(http.StatusOK, impact.Summary{}, "Counters").
		Build()
	docs.Document(http.MethodGet, "/admin/overview").
		Tags("admin").
		Summary("Every food post and claim, newest first").
		Roles(models.RoleAdmin).
		Response(http.StatusOK, impact.Overview{}, "Overview").
		Build()

	docs.Mount(srv.Echo())
}

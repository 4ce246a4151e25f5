package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/middleware/ratelimit"
	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/openapi"
	"github.com/feedchain/backend/server"
	"github.com/feedchain/backend/services/auth"
	"github.com/feedchain/backend/services/claim"
	"github.com/feedchain/backend/services/foodpost"
	"github.com/feedchain/backend/services/impact"
	"github.com/feedchain/backend/services/jwt"
	"github.com/feedchain/backend/services/otp"
	"github.com/feedchain/backend/testutils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testAPI struct {
	t    *testing.T
	cfg  *config.Config
	db   *gorm.DB
	srv  *server.Server
	docs *openapi.OpenAPI
}

func newTestAPI(t *testing.T, mutate ...func(*config.Config)) *testAPI {
	t.Helper()

	cfg := testutils.GetTestConfig()
	for _, m := range mutate {
		m(cfg)
	}

	db := testutils.SetupTestDB(t, models.All()...)

	jwtService := jwt.NewService(cfg, nil)
	otpService, err := otp.NewService(cfg, nil)
	require.NoError(t, err)

	h := NewHandler(
		cfg,
		auth.NewService(cfg, db, jwtService, nil),
		jwtService,
		foodpost.NewService(cfg, db, nil),
		claim.NewService(cfg, db, otpService, nil),
		impact.NewService(db, nil),
		nil,
	)

	srv, err := server.New(cfg, nil)
	require.NoError(t, err)

	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)

	docs := openapi.NewDocument(cfg)
	h.RegisterRoutes(srv, docs, ratelimit.ForAuth(cfg, store))

	return &testAPI{t: t, cfg: cfg, db: db, srv: srv, docs: docs}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.srv.Echo().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func assertDetail(t *testing.T, rec *httptest.ResponseRecorder, code int, detail string) {
	t.Helper()

	assert.Equal(t, code, rec.Code, rec.Body.String())
	assert.Equal(t, detail, decode[server.ErrorResponse](t, rec).Detail)
}

func (a *testAPI) demoLogin(role models.Role) auth.Token {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/auth/login", "", map[string]string{"role": role.String()})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[auth.Token](a.t, rec)
}

func (a *testAPI) createPost(token string, expiry time.Time) models.FoodPost {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/food-posts", token, map[string]any{
		"food_type":   "Vegetable biryani",
		"quantity":    "40 plates",
		"expiry_time": expiry.UTC().Format(time.RFC3339),
		"pickup_lat":  12.97,
		"pickup_lng":  77.59,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.FoodPost](a.t, rec)
}

func (a *testAPI) onlyClaim(token string) models.Claim {
	a.t.Helper()

	rec := a.do(http.MethodGet, "/claims/my", token, nil)
	require.Equal(a.t, http.StatusOK, rec.Code)
	claims := decode[[]models.Claim](a.t, rec)
	require.Len(a.t, claims, 1)
	return claims[0]
}

func (a *testAPI) postStatus(id string) models.FoodPostStatus {
	a.t.Helper()

	var post models.FoodPost
	require.NoError(a.t, a.db.First(&post, "id = ?", id).Error)
	return post.Status
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	t.Run("register and sign in", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/auth/register", "", map[string]string{
			"email":    "  Donor@Example.org ",
			"password": testutils.TestPasswords.Valid,
			"role":     "donor",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		registered := decode[RegisterResponse](t, rec)
		assert.Equal(t, registeredMessage, registered.Message)
		assert.Equal(t, "donor@example.org", registered.Email)
		assert.Equal(t, models.RoleDonor, registered.Role)

		rec = api.do(http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "DONOR@example.org",
			"password": testutils.TestPasswords.Valid,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		token := decode[auth.Token](t, rec)
		assert.Equal(t, "bearer", token.TokenType)
		assert.Equal(t, registered.UserID, token.UserID)

		rec = api.do(http.MethodGet, "/auth/me", token.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, MeResponse{UserID: registered.UserID, Role: models.RoleDonor}, decode[MeResponse](t, rec))
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/auth/register", "", map[string]string{
			"email":    "donor@example.org",
			"password": "another-password",
			"role":     "ngo",
		})
		assertDetail(t, rec, http.StatusBadRequest, "Email already registered")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "donor@example.org",
			"password": "wrong-password",
		})
		assertDetail(t, rec, http.StatusUnauthorized, "Invalid email or password")
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "nobody@example.org",
			"password": "whatever",
		})
		assertDetail(t, rec, http.StatusUnauthorized, "Invalid email or password")
	})

	t.Run("neither credentials nor role", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/auth/login", "", map[string]string{})
		assertDetail(t, rec, http.StatusBadRequest, msgMissingLoginData)
	})

	t.Run("register validation", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/auth/register", "", map[string]string{
			"email":    "not-an-email",
			"password": testutils.TestPasswords.TooShort,
			"role":     "chef",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		detail := decode[server.ErrorResponse](t, rec).Detail
		assert.Contains(t, detail, "email must be a valid email address")
		assert.Contains(t, detail, "password must be at least 6 characters in length")
		assert.Contains(t, detail, "role must be one of [donor ngo admin]")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		api.srv.Echo().ServeHTTP(rec, req)

		assertDetail(t, rec, http.StatusBadRequest, msgInvalidBody)
	})

	t.Run("demo login", func(t *testing.T) {
		token := api.demoLogin(models.RoleNGO)
		assert.Equal(t, models.RoleNGO, token.Role)

		var user models.User
		require.NoError(t, api.db.First(&user, "id = ?", token.UserID).Error)
		assert.Equal(t, fmt.Sprintf("demo-%s@feedchain.local", token.UserID), user.Email)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("demo account cannot sign in with a password", func(t *testing.T) {
		token := api.demoLogin(models.RoleDonor)
		rec := api.do(http.MethodPost, "/auth/login", "", map[string]string{
			"email":    fmt.Sprintf("demo-%s@feedchain.local", token.UserID),
			"password": "",
		})
		assertDetail(t, rec, http.StatusUnauthorized, "Invalid email or password")
	})
}

func TestDemoLoginDisabled(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) { cfg.Auth.DemoLoginEnabled = false })

	rec := api.do(http.MethodPost, "/auth/login", "", map[string]string{"role": "admin"})

	assertDetail(t, rec, http.StatusForbidden, "Demo login is disabled")
}

func TestAuthentication(t *testing.T) {
	api := newTestAPI(t)
	ngo := api.demoLogin(models.RoleNGO)

	t.Run("missing token", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/auth/me", "", nil)
		assertDetail(t, rec, http.StatusUnauthorized, "Not authenticated")
		assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/auth/me", "not.a.jwt", nil)
		assertDetail(t, rec, http.StatusUnauthorized, "Invalid token")
	})

	t.Run("wrong role", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/food-posts", ngo.AccessToken, map[string]string{})
		assertDetail(t, rec, http.StatusForbidden, "Only donors can post food")
	})

	t.Run("admin routes", func(t *testing.T) {
		rec := api.do(http.MethodGet, "/admin/overview", ngo.AccessToken, nil)
		assertDetail(t, rec, http.StatusForbidden, "Only admins allowed")
	})
}

func TestDonationLifecycle(t *testing.T) {
	api := newTestAPI(t)

	donor := api.demoLogin(models.RoleDonor)
	ngo := api.demoLogin(models.RoleNGO)
	otherNGO := api.demoLogin(models.RoleNGO)
	admin := api.demoLogin(models.RoleAdmin)

	post := api.createPost(donor.AccessToken, time.Now().Add(6*time.Hour))
	assert.Equal(t, models.FoodPostPosted, post.Status)
	assert.Equal(t, donor.UserID, post.DonorID)

	rec := api.do(http.MethodGet, "/food-posts/my", donor.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.FoodPost](t, rec), 1)

	rec = api.do(http.MethodGet, "/food-posts/nearby?lat=12.9&lng=77.6", ngo.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	nearby := decode[[]models.FoodPost](t, rec)
	require.Len(t, nearby, 1)
	assert.Equal(t, post.ID, nearby[0].ID)

	rec = api.do(http.MethodPost, "/food-posts/"+post.ID+"/claim", ngo.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Food successfully claimed", decode[MessageResponse](t, rec).Message)
	assert.Equal(t, models.FoodPostClaimed, api.postStatus(post.ID))

	rec = api.do(http.MethodPost, "/food-posts/"+post.ID+"/claim", otherNGO.AccessToken, nil)
	assertDetail(t, rec, http.StatusConflict, "Food already claimed or unavailable")

	rec = api.do(http.MethodGet, "/food-posts/nearby?lat=12.9&lng=77.6", ngo.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.FoodPost](t, rec))

	claimed := api.onlyClaim(ngo.AccessToken)
	assert.Equal(t, models.ClaimClaimed, claimed.Status)
	require.NotNil(t, claimed.FoodPost, "claims carry their food post")
	assert.Equal(t, post.ID, claimed.FoodPost.ID)

	claimPath := "/claims/" + claimed.ID

	rec = api.do(http.MethodPost, claimPath+"/pickup", otherNGO.AccessToken, nil)
	assertDetail(t, rec, http.StatusForbidden, "Not your claim")

	rec = api.do(http.MethodPost, claimPath+"/verify", ngo.AccessToken, VerifyPickupRequest{OTP: "123456"})
	assertDetail(t, rec, http.StatusNotFound, "Verification not found")

	rec = api.do(http.MethodPost, claimPath+"/pickup", ngo.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[PickupResponse](t, rec)
	assert.Equal(t, "Pickup initiated", first.Message)
	assert.Len(t, first.OTP, 6)
	assert.Equal(t, first.OTP, first.OTPForDemo)

	rec = api.do(http.MethodPost, claimPath+"/pickup", ngo.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[PickupResponse](t, rec)
	assert.Equal(t, "Pickup already initiated", second.Message)
	assert.Equal(t, first.OTP, second.OTP)

	rec = api.do(http.MethodPost, claimPath+"/distribute", ngo.AccessToken, DistributeRequest{PeopleServed: 10})
	assertDetail(t, rec, http.StatusConflict, "Food not ready for distribution")

	rec = api.do(http.MethodPost, claimPath+"/verify", ngo.AccessToken, VerifyPickupRequest{})
	assertDetail(t, rec, http.StatusBadRequest, "OTP required")

	wrong := "000000"
	if first.OTP == wrong {
		wrong = "111111"
	}
	rec = api.do(http.MethodPost, claimPath+"/verify", ngo.AccessToken, VerifyPickupRequest{OTP: wrong})
	assertDetail(t, rec, http.StatusBadRequest, "Invalid OTP")
	assert.Equal(t, models.ClaimClaimed, api.onlyClaim(ngo.AccessToken).Status)
	assert.Equal(t, models.FoodPostClaimed, api.postStatus(post.ID))

	rec = api.do(http.MethodPost, claimPath+"/verify", ngo.AccessToken, VerifyPickupRequest{OTP: first.OTP})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Pickup verified, food picked", decode[MessageResponse](t, rec).Message)
	assert.Equal(t, models.FoodPostPicked, api.postStatus(post.ID))

	rec = api.do(http.MethodPost, claimPath+"/cancel", ngo.AccessToken, nil)
	assertDetail(t, rec, http.StatusConflict, "Cannot cancel after pickup")

	rec = api.do(http.MethodPost, claimPath+"/pickup", ngo.AccessToken, nil)
	assertDetail(t, rec, http.StatusConflict, "Invalid claim state")

	rec = api.do(http.MethodPost, claimPath+"/distribute", ngo.AccessToken, DistributeRequest{PeopleServed: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, claimPath+"/distribute", ngo.AccessToken, DistributeRequest{PeopleServed: api.cfg.Distribution.MaxPeopleServed + 1})
	assertDetail(t, rec, http.StatusBadRequest, fmt.Sprintf("people_served must be between 1 and %d", api.cfg.Distribution.MaxPeopleServed))

	rec = api.do(http.MethodPost, claimPath+"/distribute", otherNGO.AccessToken, DistributeRequest{PeopleServed: 40})
	assertDetail(t, rec, http.StatusForbidden, "Not your claim")

	location := "Community hall"
	rec = api.do(http.MethodPost, claimPath+"/distribute", ngo.AccessToken, DistributeRequest{PeopleServed: 40, Location: &location})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Food distributed successfully", decode[MessageResponse](t, rec).Message)
	assert.Equal(t, models.FoodPostClosed, api.postStatus(post.ID))

	done := api.onlyClaim(ngo.AccessToken)
	assert.Equal(t, models.ClaimDistributed, done.Status)
	require.NotNil(t, done.PeopleServed)
	assert.Equal(t, 40, *done.PeopleServed)
	require.NotNil(t, done.DistributionLocation)
	assert.Equal(t, location, *done.DistributionLocation)

	rec = api.do(http.MethodGet, "/impact/summary", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, impact.Summary{MealsServed: 40, ActiveNGOs: 1, SuccessfulDistributions: 1}, decode[impact.Summary](t, rec))

	rec = api.do(http.MethodGet, "/admin/overview", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	overview := decode[impact.Overview](t, rec)
	assert.Len(t, overview.FoodPosts, 1)
	assert.Len(t, overview.Claims, 1)
}

func TestCancelReopensPost(t *testing.T) {
	api := newTestAPI(t)
	donor := api.demoLogin(models.RoleDonor)
	ngo := api.demoLogin(models.RoleNGO)
	otherNGO := api.demoLogin(models.RoleNGO)

	post := api.createPost(donor.AccessToken, time.Now().Add(time.Hour))

	rec := api.do(http.MethodPost, "/food-posts/"+post.ID+"/claim", ngo.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	claimed := api.onlyClaim(ngo.AccessToken)

	rec = api.do(http.MethodPost, "/claims/"+claimed.ID+"/cancel", otherNGO.AccessToken, nil)
	assertDetail(t, rec, http.StatusForbidden, "Not your claim")

	rec = api.do(http.MethodPost, "/claims/"+claimed.ID+"/cancel", ngo.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Claim cancelled", decode[MessageResponse](t, rec).Message)
	assert.Equal(t, models.FoodPostPosted, api.postStatus(post.ID))

	rec = api.do(http.MethodPost, "/food-posts/"+post.ID+"/claim", otherNGO.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.FoodPostClaimed, api.postStatus(post.ID))
}

func TestCreateFoodPostValidation(t *testing.T) {
	api := newTestAPI(t)
	donor := api.demoLogin(models.RoleDonor)

	tests := []struct {
		name   string
		body   map[string]any
		detail string
	}{
		{
			name:   "past expiry",
			body:   map[string]any{"food_type": "Bread", "quantity": "3 loaves", "expiry_time": time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)},
			detail: "Expiry time must be in the future",
		},
		{
			name:   "unparseable expiry",
			body:   map[string]any{"food_type": "Bread", "quantity": "3 loaves", "expiry_time": "tomorrow evening"},
			detail: "Invalid expiry_time format",
		},
		{
			name:   "missing food type",
			body:   map[string]any{"quantity": "3 loaves", "expiry_time": "2099-01-01T10:00"},
			detail: "food_type is a required field",
		},
		{
			name:   "latitude out of range",
			body:   map[string]any{"food_type": "Bread", "quantity": "3 loaves", "expiry_time": "2099-01-01T10:00", "pickup_lat": 91.5},
			detail: "pickup_lat must contain valid latitude coordinates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/food-posts", donor.AccessToken, tt.body)
			assertDetail(t, rec, http.StatusBadRequest, tt.detail)
		})
	}

	t.Run("naive timestamp is accepted as UTC", func(t *testing.T) {
		rec := api.do(http.MethodPost, "/food-posts", donor.AccessToken, map[string]any{
			"food_type":   "Bread",
			"quantity":    "3 loaves",
			"expiry_time": "2099-01-01T10:00",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		post := decode[models.FoodPost](t, rec)
		assert.True(t, post.ExpiryTime.Equal(time.Date(2099, 1, 1, 10, 0, 0, 0, time.UTC)))
		assert.Nil(t, post.PickupLat)
	})
}

func TestClaimExpiredPost(t *testing.T) {
	api := newTestAPI(t)
	ngo := api.demoLogin(models.RoleNGO)

	donor := testutils.CreateUser(t, api.db, "donor@example.org", models.RoleDonor)
	post := testutils.CreateFoodPost(t, api.db, donor.ID, models.FoodPostPosted, time.Now().Add(-time.Minute))

	rec := api.do(http.MethodPost, "/food-posts/"+post.ID+"/claim", ngo.AccessToken, nil)

	assertDetail(t, rec, http.StatusConflict, "Food has expired")
	assert.Equal(t, models.FoodPostPosted, api.postStatus(post.ID))

	var count int64
	require.NoError(t, api.db.Model(&models.Claim{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNotFound(t *testing.T) {
	api := newTestAPI(t)
	ngo := api.demoLogin(models.RoleNGO)

	cases := []struct {
		method, path, detail string
	}{
		{http.MethodGet, "/food-posts/" + uuid.NewString(), "Food post not found"},
		{http.MethodGet, "/food-posts/not-a-uuid", "Food post not found"},
		{http.MethodPost, "/food-posts/" + uuid.NewString() + "/claim", "Food post not found"},
		{http.MethodPost, "/claims/" + uuid.NewString() + "/cancel", "Claim not found"},
		{http.MethodPost, "/claims/42/pickup", "Claim not found"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := api.do(tc.method, tc.path, ngo.AccessToken, nil)
			assertDetail(t, rec, http.StatusNotFound, tc.detail)
		})
	}
}

func TestNearbyQueryValidation(t *testing.T) {
	api := newTestAPI(t)
	ngo := api.demoLogin(models.RoleNGO)

	rec := api.do(http.MethodGet, "/food-posts/nearby?lat=12.9", ngo.AccessToken, nil)
	assertDetail(t, rec, http.StatusBadRequest, msgNearbyQuery)

	rec = api.do(http.MethodGet, "/food-posts/nearby?lat=abc&lng=1", ngo.AccessToken, nil)
	assertDetail(t, rec, http.StatusBadRequest, msgNearbyQuery)

	rec = api.do(http.MethodGet, "/food-posts/nearby?lat=12.9&lng=200", ngo.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[server.ErrorResponse](t, rec).Detail, "lng must contain")
}

func TestAuthRateLimit(t *testing.T) {
	api := newTestAPI(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.Rate = 2
	})

	bad := map[string]string{"email": "x@example.org", "password": "nope-nope"}

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/auth/login", "", bad).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/auth/login", "", bad).Code)

	rec := api.do(http.MethodPost, "/auth/login", "", bad)
	assertDetail(t, rec, http.StatusTooManyRequests, "Too many requests, please try again later")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Successful requests on another route are not affected.
	assert.Equal(t, http.StatusOK, api.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email": "ok@example.org", "password": testutils.TestPasswords.Valid, "role": "ngo",
	}).Code)
}

func TestOpenAPIDocument(t *testing.T) {
	api := newTestAPI(t)

	require.NoError(t, api.docs.Validate(context.Background()))

	rec := api.do(http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	for _, path := range []string{
		"/auth/register", "/auth/login", "/auth/me",
		"/food-posts", "/food-posts/my", "/food-posts/nearby", "/food-posts/{id}", "/food-posts/{id}/claim",
		"/claims/my", "/claims/{id}/cancel", "/claims/{id}/pickup", "/claims/{id}/verify", "/claims/{id}/distribute",
		"/impact/summary", "/admin/overview", "/health",
	} {
		assert.Contains(t, doc.Paths, path)
	}

	rec = api.do(http.MethodGet, "/openapi.yaml", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
}

package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/feedchain/backend/testutils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, mw echo.MiddlewareFunc, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil), rec)
	return rec, mw(handler)(c)
}

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func unauthorized(c echo.Context) error {
	return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
}

func assertLimited(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	httpErr, isHTTP := err.(*echo.HTTPError)
	require.True(t, isHTTP)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
}

func TestMiddleware_CountAll(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	mw := Middleware(&Config{Store: store, Rate: 2, Period: time.Minute})

	rec, err := serve(t, mw, ok)
	require.NoError(t, err)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

	_, err = serve(t, mw, ok)
	require.NoError(t, err)

	rec, err = serve(t, mw, ok)
	assertLimited(t, err)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestMiddleware_CountFailures(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	mw := Middleware(&Config{Store: store, Rate: 2, Period: time.Minute, CountMode: CountFailures})

	for i := 0; i < 5; i++ {
		_, err := serve(t, mw, ok)
		require.NoError(t, err)
	}

	for i := 0; i < 2; i++ {
		_, err := serve(t, mw, unauthorized)
		require.Error(t, err)
	}

	_, err := serve(t, mw, ok)
	assertLimited(t, err)
}

func TestMiddleware_Defaults(t *testing.T) {
	cfg := &Config{}
	Middleware(cfg)

	assert.NotNil(t, cfg.Store)
	assert.Equal(t, 10, cfg.Rate)
	assert.Equal(t, time.Minute, cfg.Period)
	assert.Equal(t, CountAll, cfg.CountMode)
	assert.NotNil(t, cfg.KeyGenerator)
	assert.NotNil(t, cfg.OnLimitReached)
}

func TestDefaultKeyGenerator(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/auth/login")

	assert.Equal(t, "rate_limit:10.0.0.1:/auth/login", DefaultKeyGenerator(c))
}

func TestForAuth(t *testing.T) {
	t.Run("disabled passes through", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.RateLimit.Enabled = false
		cfg.RateLimit.Rate = 1

		mw := ForAuth(cfg, NewMemoryStore())
		for i := 0; i < 3; i++ {
			_, err := serve(t, mw, unauthorized)
			require.Error(t, err)
			assert.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
		}
	})

	t.Run("enabled limits failed attempts", func(t *testing.T) {
		cfg := testutils.GetTestConfig()
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.Rate = 1

		store := NewMemoryStore()
		defer store.Close()

		mw := ForAuth(cfg, store)
		_, err := serve(t, mw, unauthorized)
		assert.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)

		_, err = serve(t, mw, ok)
		assertLimited(t, err)
	})
}

package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/feedchain/backend/config"
	"github.com/labstack/echo/v4"
)

type CountMode string

const (
	// CountAll counts every request.
	CountAll CountMode = "all"
	// CountFailures only counts responses with status >= 400.
	CountFailures CountMode = "failures"
)

type Config struct {
	Store          Store
	Rate           int
	Period         time.Duration
	CountMode      CountMode
	KeyGenerator   func(c echo.Context) string
	OnLimitReached func(c echo.Context) error
}

func Middleware(cfg *Config) echo.MiddlewareFunc {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}

	if cfg.Rate <= 0 {
		cfg.Rate = 10
	}

	if cfg.Period <= 0 {
		cfg.Period = time.Minute
	}

	if cfg.KeyGenerator == nil {
		cfg.KeyGenerator = DefaultKeyGenerator
	}

	if cfg.OnLimitReached == nil {
		cfg.OnLimitReached = DefaultOnLimitReached
	}

	if cfg.CountMode == "" {
		cfg.CountMode = CountAll
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := cfg.KeyGenerator(c)
			resetTime := time.Now().Add(cfg.Period)

			count, existingResetTime, exists := cfg.Store.Get(key)
			if exists {
				resetTime = existingResetTime
			}

			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Rate))
			header.Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if count >= cfg.Rate {
				header.Set("X-RateLimit-Remaining", "0")
				header.Set("Retry-After", strconv.Itoa(max(int(time.Until(resetTime).Seconds()), 1)))
				return cfg.OnLimitReached(c)
			}

			if cfg.CountMode == CountAll {
				count = cfg.Store.Increment(key, resetTime)
			}
			header.Set("X-RateLimit-Remaining", strconv.Itoa(max(cfg.Rate-count, 0)))

			err := next(c)

			if cfg.CountMode == CountFailures && failed(c, err) {
				cfg.Store.Increment(key, resetTime)
			}

			return err
		}
	}
}

func failed(c echo.Context, err error) bool {
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return he.Code >= http.StatusBadRequest
		}
		return true
	}
	return c.Response().Status >= http.StatusBadRequest
}

func DefaultKeyGenerator(c echo.Context) string {
	realIP := c.RealIP()

	if realIP == "" || realIP == "unknown" {
		realIP = "fallback"
	}

	return "rate_limit:" + realIP + ":" + c.Path()
}

func DefaultOnLimitReached(c echo.Context) error {
	return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later")
}

// ForAuth builds the limiter applied to the credential endpoints. Failed
// attempts count against the caller; successful logins do not.
func ForAuth(cfg *config.Config, store Store) echo.MiddlewareFunc {
	if !cfg.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return Middleware(&Config{
		Store:     store,
		Rate:      cfg.RateLimit.Rate,
		Period:    cfg.RateLimit.Period,
		CountMode: CountFailures,
	})
}

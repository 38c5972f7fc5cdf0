package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// LoginRate is the sustained rate of login attempts allowed per client IP.
const LoginRate = rate.Limit(10.0 / 60.0)

// RateLimiter limits login attempts per IP address: a burst of 10, refilled
// at LoginRate.
func RateLimiter() echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      LoginRate,
			Burst:     10,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, Localizer(c).T("error.rate_limited"))
		},
	}
	return middleware.RateLimiterWithConfig(config)
}

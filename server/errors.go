package server

import (
	"errors"
	"net/http"

	"github.com/feedchain/backend/services/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

const internalErrorMessage = "Internal server error"

// NewHTTPErrorHandler renders errors as {"detail": "..."}. Anything that is
// not an *echo.HTTPError is logged and reported as a 500.
func NewHTTPErrorHandler(logger *logging.Service) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := internalErrorMessage

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			switch msg := he.Message.(type) {
			case string:
				detail = msg
			case error:
				detail = msg.Error()
			default:
				detail = http.StatusText(code)
			}
			if he.Internal != nil && code >= http.StatusInternalServerError {
				logger.Error("request failed",
					zap.String("path", c.Path()),
					zap.Error(he.Internal),
				)
			}
		} else {
			logger.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorResponse{Detail: detail})
		}
		if err != nil {
			logger.Warn("failed to write error response", zap.Error(err))
		}
	}
}

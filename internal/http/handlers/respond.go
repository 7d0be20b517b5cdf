package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"goldlinks/internal/auth"
	"goldlinks/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// errorJSON writes the standard {"error": "..."} body
func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// respondError maps service errors onto HTTP status codes
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return errorJSON(c, http.StatusForbidden, "You do not manage this store")
	case errors.Is(err, services.ErrInvalidInput):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrStorageDisabled):
		return errorJSON(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, auth.ErrEmailTaken):
		return errorJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return errorJSON(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUserDisabled):
		return errorJSON(c, http.StatusForbidden, err.Error())
	}

	requestLogger(c).Error().Err(err).
		Str("path", c.Path()).
		Msg("Request failed")
	return errorJSON(c, http.StatusInternalServerError, "Internal server error")
}

// bindAndValidate binds the request body and runs the validator. The
// returned error is an *echo.HTTPError for HTTPErrorHandler to render.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}
	if err := c.Validate(req); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// HTTPErrorHandler renders errors that reach echo, including middleware
// rejections, as {"error": "..."}.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = errorJSON(c, status, msg)
	}
	if err != nil {
		requestLogger(c).Error().Err(err).Msg("Failed to write error response")
	}
}

// requestLogger returns the logger RequestID attached, or the global one
func requestLogger(c echo.Context) *zerolog.Logger {
	if l := zerolog.Ctx(c.Request().Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

// paramUUID parses a path parameter as a UUID
func paramUUID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	return id, err == nil
}

// actor builds the service actor from the claims set by JWTAuth
func actor(c echo.Context) (services.Actor, bool) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return services.Actor{}, false
	}
	role, _ := c.Get("user_role").(string)
	return services.Actor{UserID: userID, Role: role}, true
}

package controllers

import (
	"errors"
	"strconv"
	"time"

	"aurastylist/metrics"
	"aurastylist/models"
	"aurastylist/services"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RequestLogger attaches a request scoped zerolog logger to the request
// context and records one log line and one counter per request.
func RequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()
		requestID := req.Header.Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		logger := log.With().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("route", c.Path()).
			Logger()
		c.SetRequest(req.WithContext(logger.WithContext(req.Context())))
		c.Response().Header().Set(echo.HeaderXRequestID, requestID)

		if err := next(c); err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		metrics.HTTPRequestsTotal.WithLabelValues(req.Method, strconv.Itoa(status)).Inc()
		event := logger.Info()
		if status >= 500 {
			event = logger.Error()
		}
		event.Int("status", status).Dur("latency", time.Since(start)).Msg("request handled")
		return nil
	}
}

// SessionMiddleware resolves the token subject to a live session. Sessions do
// not survive a restart, so an otherwise valid token may point nowhere.
func SessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessions := c.Get("__sessions").(*services.SessionService)
		tokenRaw := c.Get("user")
		if tokenRaw == nil {
			return echo.ErrUnauthorized
		}
		token := tokenRaw.(*jwt.Token)
		claims := token.Claims.(jwt.MapClaims)
		sessionID, _ := claims["sub"].(string)
		if sessionID == "" {
			log.Ctx(c.Request().Context()).Warn().Msg("session token without subject")
			return echo.ErrUnauthorized
		}

		session, err := sessions.Get(c.Request().Context(), sessionID)
		if errors.Is(err, services.ErrNotFound) {
			return echo.ErrUnauthorized
		}
		if err != nil {
			return echo.ErrInternalServerError
		}

		ctx := c.Request().Context()
		logger := log.Ctx(ctx).With().Str("session_id", session.ID).Logger()
		c.SetRequest(c.Request().WithContext(logger.WithContext(ctx)))
		c.Set("currentSession", *session)
		return next(c)
	}
}

func currentSession(c echo.Context) (models.Session, bool) {
	session, ok := c.Get("currentSession").(models.Session)
	return session, ok
}

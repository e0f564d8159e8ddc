package controllers

import (
	"fmt"
	"net/http"

	"aurastylist/models"
	"aurastylist/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type SessionCreatedResponse struct {
	SessionID string           `json:"session_id"`
	Token     string           `json:"token"`
	Messages  []models.Message `json:"messages"`
}

type SessionResponse struct {
	SessionID string              `json:"session_id"`
	State     models.SessionState `json:"state"`
}

type SessionController struct {
	Sessions     *services.SessionService
	Conversation *services.ConversationStore
	JWTSecret    string
}

func (controller *SessionController) SessionRoutes(g *echo.Group) {
	g.GET("", controller.GetSession)
}

func (controller *SessionController) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()
	session, err := controller.Sessions.Create(ctx)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not start a session, please try again"})
	}
	token, err := GenerateSessionToken(session.ID, controller.JWTSecret)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("session_id", session.ID).Msg("signing session token failed")
		sentry.CaptureException(fmt.Errorf("[Session: %s] signing token: %w", session.ID, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not start a session, please try again"})
	}
	messages, err := controller.Conversation.List(ctx, session.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load conversation"})
	}
	return c.JSON(http.StatusCreated, SessionCreatedResponse{
		SessionID: session.ID,
		Token:     token,
		Messages:  messages,
	})
}

func (controller *SessionController) GetSession(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	return c.JSON(http.StatusOK, SessionResponse{SessionID: session.ID, State: session.State})
}

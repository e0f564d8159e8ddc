package controllers

import (
	"errors"
	"net/http"

	"aurastylist/models"
	"aurastylist/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

type SendMessageIn struct {
	Text        string  `json:"text" validate:"max=4000"`
	ImageBase64 string  `json:"image_base64"`
	FileName    *string `json:"file_name" validate:"omitempty,max=200"`
}

type MessagesResponse struct {
	State    models.SessionState `json:"state"`
	Messages []models.Message    `json:"messages"`
}

type ChatController struct {
	Chat         *services.ChatService
	Conversation *services.ConversationStore
}

func (controller *ChatController) ChatRoutes(g *echo.Group) {
	g.GET("", controller.ListMessages)
	g.POST("", controller.SendMessage)
}

func (controller *ChatController) ListMessages(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	messages, err := controller.Conversation.List(c.Request().Context(), session.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load conversation"})
	}
	return c.JSON(http.StatusOK, MessagesResponse{State: session.State, Messages: messages})
}

// SendMessage runs one conversation turn and answers with the messages it
// appended. Model failures are not errors here: they come back as Aura's
// fallback message.
func (controller *ChatController) SendMessage(c echo.Context) error {
	var req SendMessageIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	input := services.SendInput{Text: req.Text}
	if req.ImageBase64 != "" {
		data, err := services.DecodeBase64Image(req.ImageBase64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Sorry, we could not read that image"})
		}
		input.Image = data
	}

	result, err := controller.Chat.Send(c.Request().Context(), session.ID, input)
	switch {
	case errors.Is(err, services.ErrAwaitingResponse):
		return c.JSON(http.StatusConflict, map[string]string{"error": "Aura is still answering your previous message"})
	case errors.Is(err, services.ErrEmptyMessage):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please type a message or attach an image"})
	case errors.Is(err, services.ErrInvalidImage):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please upload a JPEG, PNG, WebP or GIF image"})
	case err != nil:
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong, please try again"})
	}
	return c.JSON(http.StatusOK, MessagesResponse{State: result.State, Messages: result.Messages})
}

package controllers

import (
	"errors"
	"net/http"

	"aurastylist/models"
	"aurastylist/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

type SaveOutfitIn struct {
	MessageID string `json:"message_id" validate:"required,max=200"`
}

type SaveOutfitResponse struct {
	Saved  bool                `json:"saved"`
	Result services.SaveResult `json:"result"`
	Outfit *models.SavedOutfit `json:"outfit,omitempty"`
}

type OutfitListResponse struct {
	Outfits []services.ResolvedOutfit `json:"outfits"`
}

type OutfitController struct {
	Outfits *services.OutfitStore
}

func (controller *OutfitController) OutfitRoutes(g *echo.Group) {
	g.GET("", controller.ListOutfits)
	g.POST("", controller.SaveOutfit)
}

func (controller *OutfitController) ListOutfits(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	outfits, err := controller.Outfits.ListResolved(c.Request().Context(), session.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load saved outfits"})
	}
	return c.JSON(http.StatusOK, OutfitListResponse{Outfits: outfits})
}

// SaveOutfit saves the outfit of an assistant message. Nothing to save and an
// already used name are reported in the body with 200.
func (controller *OutfitController) SaveOutfit(c echo.Context) error {
	var req SaveOutfitIn
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

	result, saved, err := controller.Outfits.SaveFromMessage(c.Request().Context(), session.ID, req.MessageID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Message not found"})
	case errors.Is(err, services.ErrNoOutfit):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "That message does not contain an outfit"})
	case err != nil:
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save outfit"})
	}
	return c.JSON(http.StatusOK, SaveOutfitResponse{
		Saved:  result == services.SaveResultSaved,
		Result: result,
		Outfit: saved,
	})
}

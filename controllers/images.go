package controllers

import (
	"errors"
	"net/http"

	"aurastylist/services"

	"github.com/labstack/echo/v4"
)

type ImageController struct {
	Images services.ImageCacheServiceProvider
}

func (controller *ImageController) ImageRoutes(g *echo.Group) {
	g.GET("/:key", controller.GetImage)
}

func (controller *ImageController) GetImage(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	blob, err := controller.Images.Get(c.Request().Context(), session.ID, c.Param("key"))
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Image not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load image"})
	}
	c.Response().Header().Set("Cache-Control", "private, max-age=86400")
	return c.Blob(http.StatusOK, blob.MIMEType, blob.Data)
}

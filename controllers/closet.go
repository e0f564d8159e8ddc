package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"aurastylist/models"
	"aurastylist/services"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CreateClosetItemIn struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Category    string  `json:"category" validate:"required,category"`
	ImageBase64 string  `json:"image_base64"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url,max=2000"`
	FileName    *string `json:"file_name" validate:"omitempty,max=200"`
}

type ClosetListResponse struct {
	Items []models.ClosetItem `json:"items"`
}

type ClosetController struct {
	Closet            *services.ClosetStore
	Images            services.ImageCacheServiceProvider
	MaxImageDimension int
}

func (controller *ClosetController) ClosetRoutes(g *echo.Group) {
	g.GET("", controller.ListCloset)
	g.POST("", controller.CreateClosetItem)
	g.GET("/:itemId", controller.GetClosetItem)
	g.DELETE("/:itemId", controller.DeleteClosetItem)
}

func (controller *ClosetController) ListCloset(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	items, err := controller.Closet.List(c.Request().Context(), session.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load closet"})
	}
	return c.JSON(http.StatusOK, ClosetListResponse{Items: items})
}

func (controller *ClosetController) CreateClosetItem(c echo.Context) error {
	var req CreateClosetItemIn
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
	ctx := c.Request().Context()
	logger := log.Ctx(ctx)

	var image string
	switch {
	case req.ImageBase64 != "":
		data, err := services.DecodeBase64Image(req.ImageBase64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Sorry, we could not read that image"})
		}
		prepared, err := services.PrepareImage(data, controller.MaxImageDimension)
		if err != nil {
			logger.Warn().Err(err).Msg("closet image rejected")
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Please upload a JPEG, PNG, WebP or GIF image"})
		}
		key, err := controller.Images.Save(ctx, session.ID, prepared)
		if err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store image"})
		}
		image = models.ImageReference(key)
	case req.ImageURL != "":
		image = req.ImageURL
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Sorry, it seems image was not provided, please try again"})
	}

	item, err := controller.Closet.Add(ctx, session.ID, req.Name, models.NormalizeCategory(req.Category), image)
	if errors.Is(err, services.ErrInvalidCategory) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to add item to your closet"})
	}
	fileName := ""
	if req.FileName != nil {
		fileName = *req.FileName
	}
	logger.Info().Int64("item_id", item.ID).Str("category", item.Category.String()).Str("file_name", fileName).Msg("closet item added")
	return c.JSON(http.StatusCreated, item)
}

func parseItemID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("itemId"), 10, 64)
}

func (controller *ClosetController) GetClosetItem(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	id, err := parseItemID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid item id"})
	}
	item, found, err := controller.Closet.Find(c.Request().Context(), session.ID, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load closet item"})
	}
	if !found {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
	}
	return c.JSON(http.StatusOK, item)
}

func (controller *ClosetController) DeleteClosetItem(c echo.Context) error {
	session, ok := currentSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	id, err := parseItemID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid item id"})
	}
	err = controller.Closet.Delete(c.Request().Context(), session.ID, id)
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete closet item"})
	}
	return c.NoContent(http.StatusNoContent)
}

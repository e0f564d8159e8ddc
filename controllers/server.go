package controllers

import (
	"net/http"

	"aurastylist/models"
	"aurastylist/services"

	"github.com/go-playground/validator"
	echojwt "github.com/labstack/echo-jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type ServerOptions struct {
	JWTSecret         string
	SeedDemoCloset    bool
	MaxImageDimension int
}

func SetupServer(
	db *gorm.DB,
	llm services.StylistLLM,
	images services.ImageCacheServiceProvider,
	options ServerOptions,
) *echo.Echo {

	e := echo.New()
	v := validator.New()
	v.RegisterValidation("category", models.ValidateCategory)
	e.Validator = &CustomValidator{validator: v}

	closet := &services.ClosetStore{DB: db}
	conversation := &services.ConversationStore{DB: db}
	sessions := &services.SessionService{
		DB:             db,
		Closet:         closet,
		Conversation:   conversation,
		SeedDemoCloset: options.SeedDemoCloset,
	}
	outfits := &services.OutfitStore{DB: db, Closet: closet, Conversation: conversation}
	chat := &services.ChatService{
		Sessions:          sessions,
		Closet:            closet,
		Conversation:      conversation,
		Images:            images,
		LLM:               llm,
		MaxImageDimension: options.MaxImageDimension,
	}

	e.Use(RequestLogger)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("__db", db)
			c.Set("__sessions", sessions)
			return next(c)
		}
	})

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	sessionController := SessionController{Sessions: sessions, Conversation: conversation, JWTSecret: options.JWTSecret}
	e.POST("/sessions", sessionController.CreateSession)

	sessionGroup := e.Group("/session", echojwt.JWT([]byte(options.JWTSecret)), SessionMiddleware)
	sessionController.SessionRoutes(sessionGroup)

	closetController := ClosetController{Closet: closet, Images: images, MaxImageDimension: options.MaxImageDimension}
	closetController.ClosetRoutes(sessionGroup.Group("/closet"))

	chatController := ChatController{Chat: chat, Conversation: conversation}
	chatController.ChatRoutes(sessionGroup.Group("/messages"))

	outfitController := OutfitController{Outfits: outfits}
	outfitController.OutfitRoutes(sessionGroup.Group("/outfits"))

	imageController := ImageController{Images: images}
	imageController.ImageRoutes(sessionGroup.Group("/images"))

	return e
}

package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"aurastylist/dbhelper"
	"aurastylist/models"
	"aurastylist/services"
	"aurastylist/test"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T, llm services.StylistLLM) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db := dbhelper.SetupTestDB()
	t.Cleanup(dbhelper.SetupCleaner(db))
	images, err := services.NewImageCacheService(db)
	require.NoError(t, err)
	e := SetupServer(db, llm, images, ServerOptions{JWTSecret: test.JWTSecret, MaxImageDimension: 1024})
	return e, db
}

func createTestSession(t *testing.T, e *echo.Echo) SessionCreatedResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, test.NewJSONRequest("POST", "/sessions", nil))
	require.Equal(t, 201, rec.Code, rec.Body.String())
	var response SessionCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func addTestItem(t *testing.T, db *gorm.DB, sessionID string, name string, category models.Category) *models.ClosetItem {
	t.Helper()
	closet := services.ClosetStore{DB: db}
	item, err := closet.Add(context.Background(), sessionID, name, category, "https://example.com/"+name+".jpg")
	require.NoError(t, err)
	return item
}

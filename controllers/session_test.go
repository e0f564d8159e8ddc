package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aurastylist/models"
	"aurastylist/services"
	"aurastylist/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionOk(t *testing.T) {
	e, _ := setupTestServer(t, &test.StylistLLMMock{})

	response := createTestSession(t, e)

	assert.NotEmpty(t, response.SessionID)
	assert.NotEmpty(t, response.Token)
	require.Len(t, response.Messages, 1)
	assert.Equal(t, models.SenderAssistant, response.Messages[0].Sender)
	assert.Equal(t, services.GreetingText, response.Messages[0].Text)

	req := test.NewJSONAuthRequestCustomAuth("GET", "/session", "Bearer "+response.Token, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var session SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, response.SessionID, session.SessionID)
	assert.Equal(t, models.SessionIdle, session.State)
}

func TestSessionUnauthorized(t *testing.T) {
	e, _ := setupTestServer(t, &test.StylistLLMMock{})

	for _, req := range []*http.Request{
		test.NewJSONAuthRequestCustomAuth("GET", "/session/closet", "Bearer not-a-token", nil),
		test.NewJSONAuthRequest("GET", "/session/closet", "", nil),
		test.NewJSONAuthRequest("GET", "/session/closet", "11111111-2222-3333-4444-555555555555", nil),
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	}
}

func TestHealthAndMetrics(t *testing.T) {
	e, _ := setupTestServer(t, &test.StylistLLMMock{})
	createTestSession(t, e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aura_http_requests_total")
}

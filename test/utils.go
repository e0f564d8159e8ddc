package test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"aurastylist/services"

	"github.com/golang-jwt/jwt/v4"
)

// JWTSecret signs the session tokens used by controller tests.
const JWTSecret = "test-secret"

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateSessionToken(sessionID string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(JWTSecret))
	if err != nil {
		log.Fatalf("Error when signing session token for %s. Error %s ", sessionID, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, sessionID string, param interface{}) *http.Request {
	req := NewJSONRequest(method, target, param)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", GenerateSessionToken(sessionID)))
	return req
}

func NewJSONAuthRequestCustomAuth(method string, target string, authorizationString string, param interface{}) *http.Request {
	req := NewJSONRequest(method, target, param)
	req.Header.Add("Authorization", authorizationString)
	return req
}

func NewRefString(data string) *string {
	return &data
}

// StylistLLMMock answers every prompt with Response and records what it was
// asked.
type StylistLLMMock struct {
	Response string

	mu      sync.Mutex
	Prompts []string
	Images  []*services.InlineImage
}

func (m *StylistLLMMock) Generate(ctx context.Context, prompt string, image *services.InlineImage) (*services.LLMResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	m.Images = append(m.Images, image)
	return &services.LLMResponse{
		Response:         m.Response,
		Model:            "mock",
		InputTokenCount:  10,
		OutputTokenCount: 13,
		TotalTokenCount:  23,
	}, nil
}

func (m *StylistLLMMock) Provider() string {
	return "mock"
}

func (m *StylistLLMMock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

type FailingStylistLLMMock struct{}

func (FailingStylistLLMMock) Generate(ctx context.Context, prompt string, image *services.InlineImage) (*services.LLMResponse, error) {
	return nil, errors.New("model unavailable")
}

func (FailingStylistLLMMock) Provider() string {
	return "mock"
}

const OutfitReply = "```json\n" + `{
  "outfitName": "Casual Friday",
  "introText": "Relaxed but put together!",
  "items": [
    {"itemName": "Navy Blazer", "stylingNotes": "Leave it open.", "shoppingLinks": [{"title": "Loafers", "url": "https://www.google.com/search?q=loafers&tbm=shop"}]},
    {"itemName": "Jeans", "stylingNotes": "Cuff once.", "shoppingLinks": []},
    {"itemName": "Red Scarf", "stylingNotes": "Loose knot.", "shoppingLinks": []}
  ]
}` + "\n```"

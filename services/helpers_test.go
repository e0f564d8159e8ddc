package services

import (
	"bytes"
	"context"
	"image/color"
	"sync"
	"testing"

	"aurastylist/dbhelper"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	images  []*InlineImage
	// started and release let a test hold the call open
	started chan struct{}
	release chan struct{}
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, image *InlineImage) (*LLMResponse, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.images = append(s.images, image)
	s.mu.Unlock()
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return &LLMResponse{Response: s.reply, Model: "stub"}, nil
}

func (s *stubLLM) Provider() string {
	return "stub"
}

func (s *stubLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

type testEnv struct {
	db       *gorm.DB
	sessions *SessionService
	closet   *ClosetStore
	messages *ConversationStore
	outfits  *OutfitStore
	chat     *ChatService
	llm      *stubLLM
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbhelper.SetupTestDB()
	t.Cleanup(dbhelper.SetupCleaner(db))

	images, err := NewImageCacheService(db)
	require.NoError(t, err)

	closet := &ClosetStore{DB: db}
	messages := &ConversationStore{DB: db}
	sessions := &SessionService{DB: db, Closet: closet, Conversation: messages}
	llm := &stubLLM{reply: "Lovely choice!"}
	return &testEnv{
		db:       db,
		sessions: sessions,
		closet:   closet,
		messages: messages,
		outfits:  &OutfitStore{DB: db, Closet: closet, Conversation: messages},
		llm:      llm,
		chat: &ChatService{
			Sessions:          sessions,
			Closet:            closet,
			Conversation:      messages,
			Images:            images,
			LLM:               llm,
			MaxImageDimension: 1024,
		},
	}
}

func (env *testEnv) newSession(t *testing.T) string {
	t.Helper()
	session, err := env.sessions.Create(context.Background())
	require.NoError(t, err)
	return session.ID
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 20, G: 40, B: 120, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

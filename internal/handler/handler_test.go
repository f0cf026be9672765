package handler

import (
	"bytes"
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/safespace-dev/safespace/internal/breathing"
	"github.com/safespace-dev/safespace/internal/chat"
	"github.com/safespace-dev/safespace/internal/config"
	"github.com/safespace-dev/safespace/internal/domain"
	"github.com/safespace-dev/safespace/internal/middleware"
	"github.com/safespace-dev/safespace/internal/service"
	"github.com/stretchr/testify/assert"
)

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// Mock services

type MockAuthService struct {
	RegisterFunc func(creds domain.Credentials) (string, error)
	LoginFunc    func(creds domain.Credentials) (string, error)
	MeFunc       func(email domain.Email) (domain.User, error)
}

func (m *MockAuthService) Register(creds domain.Credentials) (string, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(creds)
	}
	return "token", nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return "token", nil
}

func (m *MockAuthService) Me(email domain.Email) (domain.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(email)
	}
	return domain.User{Id: 1, Email: email, DisplayName: "Sam"}, nil
}

type MockPostService struct {
	CreateFunc func(author domain.User, content domain.PostText, topic domain.Topic, anonymous bool) (domain.Post, error)
	ReplyFunc  func(postId domain.PostId, author domain.User, content domain.PostText, anonymous bool) (domain.Reply, error)
	FeedFunc   func(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error)
	TopicsFunc func() ([]service.TopicCount, error)
}

func (m *MockPostService) Create(author domain.User, content domain.PostText, topic domain.Topic, anonymous bool) (domain.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(author, content, topic, anonymous)
	}
	return domain.Post{Id: 1, Content: content, Topic: topic, IsAnonymous: anonymous}, nil
}

func (m *MockPostService) Reply(postId domain.PostId, author domain.User, content domain.PostText, anonymous bool) (domain.Reply, error) {
	if m.ReplyFunc != nil {
		return m.ReplyFunc(postId, author, content, anonymous)
	}
	return domain.Reply{Id: 1, PostId: postId, Content: content}, nil
}

func (m *MockPostService) Feed(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc(topic, viewer)
	}
	return []domain.Post{}, nil
}

func (m *MockPostService) Topics() ([]service.TopicCount, error) {
	if m.TopicsFunc != nil {
		return m.TopicsFunc()
	}
	out := []service.TopicCount{}
	for _, topic := range domain.Topics {
		out = append(out, service.TopicCount{Id: topic})
	}
	return out, nil
}

func (m *MockPostService) Close() {}

type MockReactionService struct {
	ToggleFunc func(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (bool, error)
}

func (m *MockReactionService) Toggle(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (bool, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(postId, userId, kind)
	}
	return true, nil
}

type testDeps struct {
	auth      *MockAuthService
	posts     *MockPostService
	reactions *MockReactionService
	chats     *chat.Registry
	breathing *breathing.Registry
}

func newTestDeps() *testDeps {
	// a scheduler that never fires keeps companion replies pending
	neverFire := func(d time.Duration, fn func()) func() { return func() {} }
	return &testDeps{
		auth:      &MockAuthService{},
		posts:     &MockPostService{},
		reactions: &MockReactionService{},
		chats:     chat.NewRegistry(chat.Options{Schedule: neverFire}),
		breathing: breathing.NewRegistry(time.Hour),
	}
}

var _ service.AuthService = (*MockAuthService)(nil)
var _ service.PostService = (*MockPostService)(nil)
var _ service.ReactionService = (*MockReactionService)(nil)

// setupTestHandler builds a chi router with the mock services and, when
// user is non-nil, plants it in the context like the auth middleware.
func setupTestHandler(deps *testDeps, user *domain.User) *chi.Mux {
	cfg := &config.Config{}
	h := New(deps.auth, deps.posts, deps.reactions, deps.chats, deps.breathing, cfg, rand.NewSource(1))

	router := chi.NewRouter()
	if user != nil {
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := context.WithValue(r.Context(), middleware.UserClaimsKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
	}

	router.Post("/v1/auth/register", h.Register)
	router.Post("/v1/auth/login", h.Login)
	router.Post("/v1/auth/logout", h.Logout)
	router.Get("/v1/auth/me", h.Me)

	router.Get("/v1/posts", h.Feed)
	router.Post("/v1/posts", h.CreatePost)
	router.Post("/v1/posts/{postId}/replies", h.CreateReply)
	router.Post("/v1/posts/{postId}/reactions/{kind}", h.ToggleReaction)
	router.Get("/v1/topics", h.Topics)

	router.Get("/v1/chat", h.GetChat)
	router.Post("/v1/chat/messages", h.SendChat)
	router.Delete("/v1/chat", h.ResetChat)

	router.Get("/v1/breathing", h.GetBreathing)
	router.Get("/v1/breathing/exercises", h.ListExercises)
	router.Post("/v1/breathing/start", h.StartBreathing)
	router.Post("/v1/breathing/stop", h.StopBreathing)
	router.Post("/v1/breathing/restart", h.RestartBreathing)

	router.Get("/v1/affirmations", h.Affirmations)
	router.Get("/v1/affirmation", h.Affirmation)
	router.Get("/health", h.Health)

	return router
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "{\"message\":\"hello\"}\n", rr.Body.String())
}

func TestHealth(t *testing.T) {
	router := setupTestHandler(newTestDeps(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/safespace-dev/safespace/internal/domain"
	internal_errors "github.com/safespace-dev/safespace/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestFeed(t *testing.T) {
	t.Run("anonymous viewer gets the feed without reaction state", func(t *testing.T) {
		deps := newTestDeps()
		deps.posts.FeedFunc = func(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error) {
			assert.Equal(t, domain.UserId(0), viewer)
			return []domain.Post{{Id: 1, Content: "hello"}}, nil
		}
		router := setupTestHandler(deps, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/v1/posts", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "hello")
	})

	t.Run("topic filter and viewer id pass through", func(t *testing.T) {
		deps := newTestDeps()
		deps.posts.FeedFunc = func(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error) {
			assert.Equal(t, "anxiety", topic)
			assert.Equal(t, domain.UserId(7), viewer)
			return []domain.Post{}, nil
		}
		router := setupTestHandler(deps, &domain.User{Id: 7})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/v1/posts?topic=anxiety", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown topic rejected", func(t *testing.T) {
		deps := newTestDeps()
		deps.posts.FeedFunc = func(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error) {
			return nil, internal_errors.Validation("Unknown topic %q", topic)
		}
		router := setupTestHandler(deps, nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/v1/posts?topic=nonsense", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCreatePost(t *testing.T) {
	route := "/v1/posts"
	validBody := []byte(`{"content": "rough week", "topic": "anxiety", "is_anonymous": true}`)

	t.Run("signed-in author", func(t *testing.T) {
		deps := newTestDeps()
		deps.posts.CreateFunc = func(author domain.User, content domain.PostText, topic domain.Topic, anonymous bool) (domain.Post, error) {
			assert.Equal(t, domain.UserId(7), author.Id)
			assert.True(t, anonymous)
			return domain.Post{Id: 3, Content: content, Topic: topic, IsAnonymous: true, AuthorName: "gentle_river_412"}, nil
		}
		router := setupTestHandler(deps, &domain.User{Id: 7, DisplayName: "Sam"})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, route, validBody))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), "gentle_river_412")
	})

	t.Run("signed-out caller rejected", func(t *testing.T) {
		router := setupTestHandler(newTestDeps(), nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, route, validBody))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing content rejected", func(t *testing.T) {
		router := setupTestHandler(newTestDeps(), &domain.User{Id: 7})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, route, []byte(`{"topic": "anxiety"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCreateReply(t *testing.T) {
	validBody := []byte(`{"content": "you are not alone"}`)

	t.Run("reply to existing post", func(t *testing.T) {
		deps := newTestDeps()
		deps.posts.ReplyFunc = func(postId domain.PostId, author domain.User, content domain.PostText, anonymous bool) (domain.Reply, error) {
			assert.Equal(t, domain.PostId(5), postId)
			return domain.Reply{Id: 1, PostId: postId, Content: content}, nil
		}
		router := setupTestHandler(deps, &domain.User{Id: 7})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/v1/posts/5/replies", validBody))

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("non-numeric post id rejected", func(t *testing.T) {
		router := setupTestHandler(newTestDeps(), &domain.User{Id: 7})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/v1/posts/abc/replies", validBody))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing post surfaces as 404", func(t *testing.T) {
		deps := newTestDeps()
		deps.posts.ReplyFunc = func(postId domain.PostId, author domain.User, content domain.PostText, anonymous bool) (domain.Reply, error) {
			return domain.Reply{}, internal_errors.NotFound("Post")
		}
		router := setupTestHandler(deps, &domain.User{Id: 7})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/v1/posts/99/replies", validBody))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestToggleReaction(t *testing.T) {
	t.Run("toggle on", func(t *testing.T) {
		deps := newTestDeps()
		deps.reactions.ToggleFunc = func(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (bool, error) {
			assert.Equal(t, domain.PostId(5), postId)
			assert.Equal(t, domain.UserId(7), userId)
			assert.Equal(t, domain.Hearts, kind)
			return true, nil
		}
		router := setupTestHandler(deps, &domain.User{Id: 7})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/v1/posts/5/reactions/hearts", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"active":true`)
	})

	t.Run("signed-out caller rejected", func(t *testing.T) {
		router := setupTestHandler(newTestDeps(), nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/v1/posts/5/reactions/hearts", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		deps := newTestDeps()
		deps.reactions.ToggleFunc = func(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (bool, error) {
			return false, internal_errors.Validation("Unknown reaction kind %q", kind)
		}
		router := setupTestHandler(deps, &domain.User{Id: 7})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, createRequest(t, http.MethodPost, "/v1/posts/5/reactions/claps", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTopics(t *testing.T) {
	router := setupTestHandler(newTestDeps(), nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, createRequest(t, http.MethodGet, "/v1/topics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "anxiety")
	assert.Contains(t, rr.Body.String(), "recovery")
}

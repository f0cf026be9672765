package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/safespace-dev/safespace/internal/domain"
	internal_errors "github.com/safespace-dev/safespace/internal/errors"
	"github.com/safespace-dev/safespace/internal/middleware"
	"github.com/safespace-dev/safespace/internal/utils"
)

type createPostRequest struct {
	Content     string `validate:"required" json:"content"`
	Topic       string `validate:"required" json:"topic"`
	IsAnonymous bool   `json:"is_anonymous"`
}

type createReplyRequest struct {
	Content     string `validate:"required" json:"content"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func postIdParam(r *http.Request) (domain.PostId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		return 0, internal_errors.Validation("Post id must be a number")
	}
	return id, nil
}

// Feed lists posts newest-first, optionally filtered by ?topic=. Signed-in
// viewers additionally see which reactions are theirs.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	var viewer domain.UserId
	if user := middleware.GetUserFromContext(r); user != nil {
		viewer = user.Id
	}

	posts, err := h.posts.Feed(r.URL.Query().Get("topic"), viewer)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, posts)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	var req createPostRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.posts.Create(*user, req.Content, req.Topic, req.IsAnonymous)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, post)
}

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	postId, err := postIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var req createReplyRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.posts.Reply(postId, *user, req.Content, req.IsAnonymous)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, reply)
}

// Topics returns the fixed topic list with current post counts for the
// sidebar.
func (h *Handler) Topics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.posts.Topics()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, topics)
}

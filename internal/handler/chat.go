package handler

import (
	"net/http"

	"github.com/safespace-dev/safespace/internal/chat"
	"github.com/safespace-dev/safespace/internal/domain"
	"github.com/safespace-dev/safespace/internal/middleware"
	"github.com/safespace-dev/safespace/internal/utils"
)

type sendMessageRequest struct {
	Content string `validate:"required" json:"content"`
}

type chatResponse struct {
	Messages []domain.Message `json:"messages"`
	Typing   bool             `json:"typing"`
}

func (h *Handler) chatThread(w http.ResponseWriter, r *http.Request) *chat.Thread {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return nil
	}
	return h.chats.ForUser(user.Id)
}

// GetChat returns the conversation log plus the typing indicator.
func (h *Handler) GetChat(w http.ResponseWriter, r *http.Request) {
	thread := h.chatThread(w, r)
	if thread == nil {
		return
	}
	writeJSON(w, chatResponse{Messages: thread.Messages(), Typing: thread.Typing()})
}

// SendChat appends the user's message. The companion reply arrives after
// the thinking delay; until then the typing flag stays up.
func (h *Handler) SendChat(w http.ResponseWriter, r *http.Request) {
	thread := h.chatThread(w, r)
	if thread == nil {
		return
	}

	var req sendMessageRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	msg, err := thread.Send(req.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, msg)
}

// ResetChat discards the conversation; the next fetch starts a fresh one
// with the greeting.
func (h *Handler) ResetChat(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}
	h.chats.Reset(user.Id)
	w.WriteHeader(http.StatusOK)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/safespace-dev/safespace/internal/domain"
	"github.com/safespace-dev/safespace/internal/middleware"
	"github.com/safespace-dev/safespace/internal/utils"
)

// ToggleReaction flips the caller's reaction on a post and reports the
// resulting state. Repeating the call undoes it.
func (h *Handler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
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
	kind := domain.ReactionKind(chi.URLParam(r, "kind"))

	active, err := h.reactions.Toggle(postId, user.Id, kind)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, map[string]bool{"active": active})
}

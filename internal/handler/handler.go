package handler

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"

	"github.com/safespace-dev/safespace/internal/breathing"
	"github.com/safespace-dev/safespace/internal/chat"
	"github.com/safespace-dev/safespace/internal/config"
	"github.com/safespace-dev/safespace/internal/logger"
	"github.com/safespace-dev/safespace/internal/service"
)

type Handler struct {
	auth      service.AuthService
	posts     service.PostService
	reactions service.ReactionService
	chats     *chat.Registry
	breathing *breathing.Registry
	cfg       *config.Config

	mu  sync.Mutex
	rng rand.Source
}

func New(auth service.AuthService, posts service.PostService, reactions service.ReactionService, chats *chat.Registry, breathingReg *breathing.Registry, cfg *config.Config, src rand.Source) *Handler {
	return &Handler{
		auth:      auth,
		posts:     posts,
		reactions: reactions,
		chats:     chats,
		breathing: breathingReg,
		cfg:       cfg,
		rng:       src,
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "error", err)
	}
}

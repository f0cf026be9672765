package setup

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/safespace-dev/safespace/internal/breathing"
	"github.com/safespace-dev/safespace/internal/chat"
	"github.com/safespace-dev/safespace/internal/config"
	"github.com/safespace-dev/safespace/internal/engine"
	"github.com/safespace-dev/safespace/internal/handler"
	"github.com/safespace-dev/safespace/internal/jwt"
	"github.com/safespace-dev/safespace/internal/markdown"
	"github.com/safespace-dev/safespace/internal/service"
	"github.com/safespace-dev/safespace/internal/storage/memory"
	"github.com/safespace-dev/safespace/internal/storage/pg"
	"github.com/safespace-dev/safespace/internal/utils"
)

// Store is the full storage surface the services consume. Both the
// postgres and the in-process implementations satisfy it.
type Store interface {
	service.AuthStorage
	service.PostStorage
	service.ReactionStorage
	handler.Pinger
	Cleanup() error
}

// Dependencies holds everything the router and the shutdown path need.
type Dependencies struct {
	Config    *config.Config
	Storage   Store
	Handler   *handler.Handler
	Jwt       jwt.JwtService
	Posts     *service.Post
	Chats     *chat.Registry
	Breathing *breathing.Registry
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	var storage Store
	switch cfg.Public.Storage {
	case "postgres":
		pgStorage, err := pg.New(cfg)
		if err != nil {
			return nil, err
		}
		storage = pgStorage
	case "memory":
		storage = memory.New()
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Public.Storage)
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	labels := engine.NewLabelGenerator(rand.NewSource(time.Now().UnixNano()))
	renderer := markdown.New()

	auth := service.NewAuth(storage, jwtService)

	postOpts := service.PostOptions{}
	if cfg.Public.MentorReplies {
		postOpts.Mentor = engine.NewMentor(rand.NewSource(time.Now().UnixNano()))
		postOpts.MentorDelay = cfg.Public.MentorDelay
	}
	posts := service.NewPost(storage, &utils.ContentValidator{}, labels, renderer, postOpts)
	reactions := service.NewReaction(storage)

	chats := chat.NewRegistry(chat.Options{
		BaseDelay: cfg.Public.ThinkingDelay,
		Jitter:    cfg.Public.ThinkingJitter,
	})
	breathingReg := breathing.NewRegistry(cfg.Public.BreathingTick)

	h := handler.New(auth, posts, reactions, chats, breathingReg, cfg, rand.NewSource(time.Now().UnixNano()))

	return &Dependencies{
		Config:    cfg,
		Storage:   storage,
		Handler:   h,
		Jwt:       jwtService,
		Posts:     posts,
		Chats:     chats,
		Breathing: breathingReg,
	}, nil
}

// Close tears down background work: pending mentor replies, companion
// timers, live breathing tickers, then the store.
func (d *Dependencies) Close() {
	d.Posts.Close()
	d.Chats.CloseAll()
	d.Breathing.StopAll()
	d.Storage.Cleanup()
}

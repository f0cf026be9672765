package chat

import (
	"sync"

	"github.com/safespace-dev/safespace/internal/domain"
)

// Registry hands out one conversation per user and tears them down on
// reset or shutdown.
type Registry struct {
	opts Options

	mu      sync.Mutex
	threads map[domain.UserId]*Thread
}

func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts, threads: make(map[domain.UserId]*Thread)}
}

func (g *Registry) ForUser(uid domain.UserId) *Thread {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.threads[uid]
	if !ok {
		t = NewThread(g.opts)
		g.threads[uid] = t
	}
	return t
}

// Reset closes the user's conversation; the next ForUser starts fresh.
func (g *Registry) Reset(uid domain.UserId) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t, ok := g.threads[uid]; ok {
		t.Close()
		delete(g.threads, uid)
	}
}

func (g *Registry) CloseAll() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for uid, t := range g.threads {
		t.Close()
		delete(g.threads, uid)
	}
}

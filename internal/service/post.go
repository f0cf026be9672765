package service

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/safespace-dev/safespace/internal/domain"
	"github.com/safespace-dev/safespace/internal/engine"
	"github.com/safespace-dev/safespace/internal/errors"
	"github.com/safespace-dev/safespace/internal/logger"
	"github.com/safespace-dev/safespace/internal/markdown"
)

var (
	postsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Community posts created, by topic",
		},
		[]string{"topic"},
	)
	repliesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replies_created_total",
			Help: "Replies created, split by mentor and user",
		},
		[]string{"author"},
	)
)

type PostService interface {
	Create(author domain.User, content domain.PostText, topic domain.Topic, anonymous bool) (domain.Post, error)
	Reply(postId domain.PostId, author domain.User, content domain.PostText, anonymous bool) (domain.Reply, error)
	Feed(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error)
	Topics() ([]TopicCount, error)
	Close()
}

type PostStorage interface {
	CreatePost(data domain.PostCreationData) (domain.PostId, error)
	CreateReply(data domain.ReplyCreationData) (domain.ReplyId, error)
	GetPost(id domain.PostId) (domain.Post, error)
	ListPosts(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error)
	TopicCounts() (map[domain.Topic]int, error)
}

// TopicCount is one sidebar entry: a topic and its post count.
type TopicCount struct {
	Id    domain.Topic `json:"id"`
	Count int          `json:"count"`
}

type PostValidator interface {
	Text(text string) error
}

// Scheduler defers fn by d and returns a cancel func. Production uses
// time.AfterFunc; tests substitute a manual trigger.
type Scheduler func(d time.Duration, fn func()) (cancel func())

func timerScheduler(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// PostOptions carries the optional mentor auto-reply wiring.
type PostOptions struct {
	Mentor      *engine.Responder
	MentorDelay time.Duration
	Schedule    Scheduler
}

type Post struct {
	storage   PostStorage
	validator PostValidator
	labels    engine.LabelGenerator
	renderer  *markdown.Renderer

	mentor      *engine.Responder
	mentorDelay time.Duration
	schedule    Scheduler

	mu      sync.Mutex
	closed  bool
	pending map[*struct{}]func()
}

func NewPost(storage PostStorage, validator PostValidator, labels engine.LabelGenerator, renderer *markdown.Renderer, opts PostOptions) *Post {
	schedule := opts.Schedule
	if schedule == nil {
		schedule = timerScheduler
	}
	return &Post{
		storage:     storage,
		validator:   validator,
		labels:      labels,
		renderer:    renderer,
		mentor:      opts.Mentor,
		mentorDelay: opts.MentorDelay,
		schedule:    schedule,
		pending:     map[*struct{}]func(){},
	}
}

// Create stores the post and, when a mentor responder is configured,
// schedules its deferred supportive reply. The anonymity flag is fixed
// here and never changes afterwards.
func (p *Post) Create(author domain.User, content domain.PostText, topic domain.Topic, anonymous bool) (domain.Post, error) {
	if err := p.validator.Text(content); err != nil {
		return domain.Post{}, err
	}
	if !domain.ValidTopic(topic) {
		return domain.Post{}, errors.Validation("Unknown topic %q", topic)
	}

	data := domain.PostCreationData{
		Author:      author,
		Content:     content,
		Topic:       topic,
		IsAnonymous: anonymous,
	}
	if anonymous {
		data.AnonymousLabel = p.labels.Generate(engine.StyleSuffixed)
	}

	id, err := p.storage.CreatePost(data)
	if err != nil {
		return domain.Post{}, err
	}
	postsCreated.WithLabelValues(topic).Inc()

	if p.mentor != nil {
		p.scheduleMentorReply(id, content)
	}

	post, err := p.storage.GetPost(id)
	if err != nil {
		return domain.Post{}, err
	}
	post.RenderedHTML = p.renderer.Render(post.Content)
	return post, nil
}

func (p *Post) Reply(postId domain.PostId, author domain.User, content domain.PostText, anonymous bool) (domain.Reply, error) {
	if err := p.validator.Text(content); err != nil {
		return domain.Reply{}, err
	}

	data := domain.ReplyCreationData{
		PostId:      postId,
		Author:      author,
		Content:     content,
		IsAnonymous: anonymous,
	}
	if anonymous {
		data.AnonymousLabel = p.labels.Generate(engine.StyleShort)
	}

	id, err := p.storage.CreateReply(data)
	if err != nil {
		return domain.Reply{}, err
	}
	repliesCreated.WithLabelValues("user").Inc()

	reply := domain.Reply{
		Id:           id,
		PostId:       postId,
		AuthorName:   author.DisplayName,
		Content:      content,
		RenderedHTML: p.renderer.Render(content),
		IsAnonymous:  anonymous,
		CreatedAt:    time.Now(),
	}
	if anonymous {
		reply.AuthorName = data.AnonymousLabel
	}
	return reply, nil
}

// Feed returns posts newest-first with rendered HTML attached.
func (p *Post) Feed(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error) {
	if topic != "" && !domain.ValidTopic(topic) {
		return nil, errors.Validation("Unknown topic %q", topic)
	}
	posts, err := p.storage.ListPosts(topic, viewer)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].RenderedHTML = p.renderer.Render(posts[i].Content)
		for j := range posts[i].Replies {
			posts[i].Replies[j].RenderedHTML = p.renderer.Render(posts[i].Replies[j].Content)
		}
	}
	return posts, nil
}

// Topics returns every topic in display order with its post count;
// topics with no posts still appear with zero.
func (p *Post) Topics() ([]TopicCount, error) {
	counts, err := p.storage.TopicCounts()
	if err != nil {
		return nil, err
	}
	out := make([]TopicCount, 0, len(domain.Topics))
	for _, topic := range domain.Topics {
		out = append(out, TopicCount{Id: topic, Count: counts[topic]})
	}
	return out, nil
}

func (p *Post) scheduleMentorReply(postId domain.PostId, content domain.PostText) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	// keyword matching runs on the plain text, not the markup
	response := p.mentor.Respond(markdown.Plain(content))

	key := &struct{}{}
	p.pending[key] = p.schedule(p.mentorDelay, func() {
		p.mu.Lock()
		delete(p.pending, key)
		closed := p.closed
		p.mu.Unlock()
		if closed {
			return
		}

		_, err := p.storage.CreateReply(domain.ReplyCreationData{
			PostId:         postId,
			Content:        response,
			IsAnonymous:    true,
			AnonymousLabel: engine.MentorName,
			IsMentor:       true,
		})
		if err != nil {
			logger.Log.Error("mentor reply failed", "post_id", postId, "error", err)
			return
		}
		repliesCreated.WithLabelValues("mentor").Inc()
	})
}

// Close cancels pending mentor replies. Used on shutdown.
func (p *Post) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for key, cancel := range p.pending {
		cancel()
		delete(p.pending, key)
	}
}

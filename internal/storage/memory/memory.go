// Package memory is the self-contained store: posts, replies, reactions
// and users kept in process with no external database. It implements the
// same interfaces as the pg store so the services above it cannot tell
// the difference.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/safespace-dev/safespace/internal/domain"
	internal_errors "github.com/safespace-dev/safespace/internal/errors"
)

type reactionKey struct {
	postId domain.PostId
	userId domain.UserId
	kind   domain.ReactionKind
}

type Storage struct {
	mu sync.Mutex

	nextUserId     domain.UserId
	nextPostId     domain.PostId
	nextReplyId    domain.ReplyId
	nextReactionId int64

	users     map[domain.UserId]domain.User
	emails    map[domain.Email]domain.UserId
	posts     map[domain.PostId]*domain.Post
	reactions map[reactionKey]*domain.ReactionRecord
}

func New() *Storage {
	return &Storage{
		users:     map[domain.UserId]domain.User{},
		emails:    map[domain.Email]domain.UserId{},
		posts:     map[domain.PostId]*domain.Post{},
		reactions: map[reactionKey]*domain.ReactionRecord{},
	}
}

func (s *Storage) Cleanup() error { return nil }

func (s *Storage) Ping(ctx context.Context) error { return nil }

func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.emails[user.Email]; exists {
		return 0, &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: 409}
	}
	s.nextUserId++
	user.Id = s.nextUserId
	user.CreatedAt = time.Now()
	s.users[user.Id] = user
	s.emails[user.Email] = user.Id
	return user.Id, nil
}

func (s *Storage) UserByEmail(email domain.Email) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[email]
	if !ok {
		return domain.User{}, internal_errors.NotFound("User")
	}
	return s.users[id], nil
}

func (s *Storage) CreatePost(data domain.PostCreationData) (domain.PostId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authorName := data.Author.DisplayName
	if data.IsAnonymous {
		authorName = data.AnonymousLabel
	}

	s.nextPostId++
	post := &domain.Post{
		Id:          s.nextPostId,
		Author:      data.Author,
		AuthorName:  authorName,
		Content:     data.Content,
		Topic:       data.Topic,
		IsAnonymous: data.IsAnonymous,
		CreatedAt:   time.Now(),
		Reactions:   map[domain.ReactionKind]int{},
		Replies:     []domain.Reply{},
	}
	s.posts[post.Id] = post
	return post.Id, nil
}

func (s *Storage) CreateReply(data domain.ReplyCreationData) (domain.ReplyId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[data.PostId]
	if !ok {
		return 0, internal_errors.NotFound("Post")
	}

	authorName := data.Author.DisplayName
	if data.IsAnonymous {
		authorName = data.AnonymousLabel
	}

	s.nextReplyId++
	reply := domain.Reply{
		Id:          s.nextReplyId,
		PostId:      data.PostId,
		Author:      data.Author,
		AuthorName:  authorName,
		Content:     data.Content,
		IsAnonymous: data.IsAnonymous,
		IsMentor:    data.IsMentor,
		CreatedAt:   time.Now(),
	}
	post.Replies = append(post.Replies, reply)
	return reply.Id, nil
}

func (s *Storage) GetPost(id domain.PostId) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return domain.Post{}, internal_errors.NotFound("Post")
	}
	return clonePost(post, 0, s.reactions), nil
}

func (s *Storage) ListPosts(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Post{}
	for _, post := range s.posts {
		if topic != "" && post.Topic != topic {
			continue
		}
		out = append(out, clonePost(post, viewer, s.reactions))
	}
	// newest first; id breaks ties from same-instant creation
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Id > out[j].Id
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Storage) TopicCounts() (map[domain.Topic]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[domain.Topic]int{}
	for _, post := range s.posts {
		counts[post.Topic]++
	}
	return counts, nil
}

func (s *Storage) FindReaction(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (*domain.ReactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.reactions[reactionKey{postId, userId, kind}]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (s *Storage) InsertReaction(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (*domain.ReactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postId]
	if !ok {
		return nil, internal_errors.NotFound("Post")
	}

	key := reactionKey{postId, userId, kind}
	if _, exists := s.reactions[key]; exists {
		return nil, internal_errors.Conflict("reaction already active")
	}

	s.nextReactionId++
	record := &domain.ReactionRecord{Id: s.nextReactionId, PostId: postId, UserId: userId, Kind: kind}
	s.reactions[key] = record
	post.Reactions[kind]++

	clone := *record
	return &clone, nil
}

func (s *Storage) DeleteReaction(record *domain.ReactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reactionKey{record.PostId, record.UserId, record.Kind}
	stored, ok := s.reactions[key]
	if !ok || stored.Id != record.Id {
		// already removed by a racing toggle
		return nil
	}
	delete(s.reactions, key)

	if post, ok := s.posts[record.PostId]; ok {
		if post.Reactions[record.Kind] > 0 {
			post.Reactions[record.Kind]--
		}
	}
	return nil
}

func clonePost(post *domain.Post, viewer domain.UserId, reactions map[reactionKey]*domain.ReactionRecord) domain.Post {
	clone := *post
	clone.Reactions = map[domain.ReactionKind]int{}
	for kind, n := range post.Reactions {
		clone.Reactions[kind] = n
	}
	clone.Replies = make([]domain.Reply, len(post.Replies))
	copy(clone.Replies, post.Replies)

	if viewer != 0 {
		for _, kind := range domain.ReactionKinds {
			if _, ok := reactions[reactionKey{post.Id, viewer, kind}]; ok {
				if clone.UserReactions == nil {
					clone.UserReactions = map[domain.ReactionKind]bool{}
				}
				clone.UserReactions[kind] = true
			}
		}
	}
	return clone
}

package pg

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/safespace-dev/safespace/internal/domain"
	internal_errors "github.com/safespace-dev/safespace/internal/errors"
)

func (s *Storage) CreatePost(data domain.PostCreationData) (domain.PostId, error) {
	createdTs := time.Now().UTC().Round(time.Microsecond)
	authorName := data.Author.DisplayName
	if data.IsAnonymous {
		authorName = data.AnonymousLabel
	}

	var id domain.PostId
	err := s.db.QueryRow(`
	INSERT INTO posts(author_id, author_name, content, topic, is_anonymous, created)
	VALUES($1, $2, $3, $4, $5, $6)
	RETURNING id`,
		data.Author.Id, authorName, data.Content, data.Topic, data.IsAnonymous, createdTs).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) CreateReply(data domain.ReplyCreationData) (domain.ReplyId, error) {
	createdTs := time.Now().UTC().Round(time.Microsecond)
	authorName := data.Author.DisplayName
	if data.IsAnonymous {
		authorName = data.AnonymousLabel
	}
	var authorId any
	if data.Author.Id != 0 {
		authorId = data.Author.Id
	}

	var id domain.ReplyId
	err := s.db.QueryRow(`
	INSERT INTO replies(post_id, author_id, author_name, content, is_anonymous, is_mentor, created)
	VALUES($1, $2, $3, $4, $5, $6, $7)
	RETURNING id`,
		data.PostId, authorId, authorName, data.Content, data.IsAnonymous, data.IsMentor, createdTs).Scan(&id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "foreign_key_violation" {
			return 0, internal_errors.NotFound("Post")
		}
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetPost(id domain.PostId) (domain.Post, error) {
	var post domain.Post
	post.Reactions = map[domain.ReactionKind]int{}
	err := s.db.QueryRow(`
	SELECT id, author_name, content, topic, is_anonymous, hearts, hugs, relates, created
	FROM posts
	WHERE id = $1`, id).Scan(
		&post.Id, &post.AuthorName, &post.Content, &post.Topic, &post.IsAnonymous,
		newKindScanner(post.Reactions, domain.Hearts),
		newKindScanner(post.Reactions, domain.Hugs),
		newKindScanner(post.Reactions, domain.Relates),
		&post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("Post")
		}
		return domain.Post{}, err
	}
	return post, nil
}

// ListPosts returns posts newest-first with replies oldest-first. When
// viewer is non-zero each post carries the viewer's active reactions.
func (s *Storage) ListPosts(topic domain.Topic, viewer domain.UserId) ([]domain.Post, error) {
	query := `
	SELECT id, author_name, content, topic, is_anonymous, hearts, hugs, relates, created
	FROM posts`
	args := []any{}
	if topic != "" {
		query += ` WHERE topic = $1`
		args = append(args, topic)
	}
	query += ` ORDER BY created DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	index := map[domain.PostId]int{}
	ids := []any{}
	for rows.Next() {
		var post domain.Post
		post.Reactions = map[domain.ReactionKind]int{}
		post.Replies = []domain.Reply{}
		err := rows.Scan(
			&post.Id, &post.AuthorName, &post.Content, &post.Topic, &post.IsAnonymous,
			newKindScanner(post.Reactions, domain.Hearts),
			newKindScanner(post.Reactions, domain.Hugs),
			newKindScanner(post.Reactions, domain.Relates),
			&post.CreatedAt)
		if err != nil {
			return nil, err
		}
		index[post.Id] = len(posts)
		ids = append(ids, post.Id)
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	if err := s.attachReplies(posts, index); err != nil {
		return nil, err
	}
	if viewer != 0 {
		if err := s.attachViewerReactions(posts, index, viewer); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (s *Storage) attachReplies(posts []domain.Post, index map[domain.PostId]int) error {
	rows, err := s.db.Query(`
	SELECT r.id, r.post_id, r.author_name, r.content, r.is_anonymous, r.is_mentor, r.created
	FROM replies r
	JOIN posts p ON p.id = r.post_id
	ORDER BY r.created ASC, r.id ASC`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var reply domain.Reply
		if err := rows.Scan(&reply.Id, &reply.PostId, &reply.AuthorName, &reply.Content,
			&reply.IsAnonymous, &reply.IsMentor, &reply.CreatedAt); err != nil {
			return err
		}
		if i, ok := index[reply.PostId]; ok {
			posts[i].Replies = append(posts[i].Replies, reply)
		}
	}
	return rows.Err()
}

func (s *Storage) attachViewerReactions(posts []domain.Post, index map[domain.PostId]int, viewer domain.UserId) error {
	rows, err := s.db.Query(`
	SELECT post_id, kind FROM post_reactions WHERE user_id = $1`, viewer)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postId domain.PostId
		var kind string
		if err := rows.Scan(&postId, &kind); err != nil {
			return err
		}
		if i, ok := index[postId]; ok {
			if posts[i].UserReactions == nil {
				posts[i].UserReactions = map[domain.ReactionKind]bool{}
			}
			posts[i].UserReactions[domain.ReactionKind(kind)] = true
		}
	}
	return rows.Err()
}

// TopicCounts reports how many posts each topic currently has.
func (s *Storage) TopicCounts() (map[domain.Topic]int, error) {
	rows, err := s.db.Query(`SELECT topic, COUNT(*) FROM posts GROUP BY topic`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.Topic]int{}
	for rows.Next() {
		var topic domain.Topic
		var n int
		if err := rows.Scan(&topic, &n); err != nil {
			return nil, err
		}
		counts[topic] = n
	}
	return counts, rows.Err()
}

// kindScanner scans a count column straight into the reactions map.
type kindScanner struct {
	dest map[domain.ReactionKind]int
	kind domain.ReactionKind
}

func newKindScanner(dest map[domain.ReactionKind]int, kind domain.ReactionKind) *kindScanner {
	return &kindScanner{dest, kind}
}

func (k *kindScanner) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		k.dest[k.kind] = int(v)
	case nil:
		k.dest[k.kind] = 0
	default:
		return errors.New("unexpected reaction count type")
	}
	return nil
}

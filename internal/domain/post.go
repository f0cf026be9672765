package domain

import "time"

// Post is a community story. AuthorName resolves to the stored anonymous
// label when IsAnonymous is set; the flag is fixed at creation.
type Post struct {
	Id            PostId                  `json:"id"`
	Author        User                    `json:"-"`
	AuthorName    string                  `json:"author_name"`
	Content       PostText                `json:"content"`
	RenderedHTML  string                  `json:"rendered_html,omitempty"`
	Topic         Topic                   `json:"topic"`
	IsAnonymous   bool                    `json:"is_anonymous"`
	CreatedAt     time.Time               `json:"created_at"`
	Reactions     map[ReactionKind]int    `json:"reactions"`
	UserReactions map[ReactionKind]bool   `json:"user_reactions,omitempty"`
	Replies       []Reply                 `json:"replies"`
}

// Reply belongs to exactly one post, newest appended last.
type Reply struct {
	Id           ReplyId   `json:"id"`
	PostId       PostId    `json:"post_id"`
	Author       User      `json:"-"`
	AuthorName   string    `json:"author_name"`
	Content      PostText  `json:"content"`
	RenderedHTML string    `json:"rendered_html,omitempty"`
	IsAnonymous  bool      `json:"is_anonymous"`
	IsMentor     bool      `json:"is_mentor"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostCreationData travels handler -> service -> storage.
type PostCreationData struct {
	Author         User
	Content        PostText
	Topic          Topic
	IsAnonymous    bool
	AnonymousLabel string
}

type ReplyCreationData struct {
	PostId         PostId
	Author         User
	Content        PostText
	IsAnonymous    bool
	AnonymousLabel string
	IsMentor       bool
}

// ReactionRecord marks one user's active reaction on a post. At most one
// record may exist per (post, user, kind).
type ReactionRecord struct {
	Id     int64
	PostId PostId
	UserId UserId
	Kind   ReactionKind
}

package pg

import (
	"testing"

	"github.com/safespace-dev/safespace/internal/domain"
	internal_errors "github.com/safespace-dev/safespace/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionInsertAndCount(t *testing.T) {
	user := mustSaveUser(t, uniqueEmail("react"))
	postId := mustCreatePost(t, user, "general", "story")

	record, err := storage.InsertReaction(postId, user.Id, domain.Hearts)
	require.NoError(t, err)
	assert.Equal(t, postId, record.PostId)
	assert.Equal(t, domain.Hearts, record.Kind)

	post, err := storage.GetPost(postId)
	require.NoError(t, err)
	assert.Equal(t, 1, post.Reactions[domain.Hearts])
	assert.Equal(t, 0, post.Reactions[domain.Hugs])
}

func TestReactionUniquenessGuard(t *testing.T) {
	user := mustSaveUser(t, uniqueEmail("unique"))
	postId := mustCreatePost(t, user, "general", "story")

	_, err := storage.InsertReaction(postId, user.Id, domain.Hugs)
	require.NoError(t, err)

	// second insert hits UNIQUE (post_id, user_id, kind)
	_, err = storage.InsertReaction(postId, user.Id, domain.Hugs)
	require.Error(t, err)
	assert.Equal(t, 409, internal_errors.StatusCode(err))

	// the count incremented exactly once
	post, err := storage.GetPost(postId)
	require.NoError(t, err)
	assert.Equal(t, 1, post.Reactions[domain.Hugs])
}

func TestReactionDoubleToggleNetZero(t *testing.T) {
	user := mustSaveUser(t, uniqueEmail("toggle"))
	postId := mustCreatePost(t, user, "recovery", "story")

	record, err := storage.InsertReaction(postId, user.Id, domain.Relates)
	require.NoError(t, err)
	require.NoError(t, storage.DeleteReaction(record))

	post, err := storage.GetPost(postId)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Reactions[domain.Relates])

	found, err := storage.FindReaction(postId, user.Id, domain.Relates)
	require.NoError(t, err)
	assert.Nil(t, found)

	// deleting the already-deleted record is a committed no-op
	require.NoError(t, storage.DeleteReaction(record))
	post, err = storage.GetPost(postId)
	require.NoError(t, err)
	assert.Equal(t, 0, post.Reactions[domain.Relates])
}

func TestReactionInsertMissingPost(t *testing.T) {
	user := mustSaveUser(t, uniqueEmail("ghost"))
	_, err := storage.InsertReaction(999999, user.Id, domain.Hearts)
	require.Error(t, err)
	assert.Equal(t, 404, internal_errors.StatusCode(err))
}

func TestViewerReactionsAttached(t *testing.T) {
	user := mustSaveUser(t, uniqueEmail("viewer"))
	other := mustSaveUser(t, uniqueEmail("other-viewer"))
	postId := mustCreatePost(t, user, "depression", "story")

	_, err := storage.InsertReaction(postId, user.Id, domain.Hearts)
	require.NoError(t, err)

	posts, err := storage.ListPosts("depression", user.Id)
	require.NoError(t, err)
	var mine *domain.Post
	for i := range posts {
		if posts[i].Id == postId {
			mine = &posts[i]
		}
	}
	require.NotNil(t, mine)
	assert.True(t, mine.UserReactions[domain.Hearts])

	posts, err = storage.ListPosts("depression", other.Id)
	require.NoError(t, err)
	for i := range posts {
		if posts[i].Id == postId {
			assert.False(t, posts[i].UserReactions[domain.Hearts])
		}
	}
}

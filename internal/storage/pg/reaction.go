package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/safespace-dev/safespace/internal/domain"
	internal_errors "github.com/safespace-dev/safespace/internal/errors"
)

// countColumn maps a reaction kind to its posts column. Kinds are
// validated before storage is reached; never interpolate raw input.
func countColumn(kind domain.ReactionKind) (string, error) {
	switch kind {
	case domain.Hearts:
		return "hearts", nil
	case domain.Hugs:
		return "hugs", nil
	case domain.Relates:
		return "relates", nil
	}
	return "", internal_errors.Validation("unknown reaction kind %q", kind)
}

func (s *Storage) FindReaction(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (*domain.ReactionRecord, error) {
	var record domain.ReactionRecord
	err := s.db.QueryRow(`
	SELECT id, post_id, user_id, kind
	FROM post_reactions
	WHERE post_id = $1 AND user_id = $2 AND kind = $3`,
		postId, userId, kind).Scan(&record.Id, &record.PostId, &record.UserId, &record.Kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// InsertReaction creates the ledger record and increments the post's
// aggregate count in one transaction. A duplicate key means another
// toggle already applied; callers treat the conflict as success.
func (s *Storage) InsertReaction(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (*domain.ReactionRecord, error) {
	column, err := countColumn(kind)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() // ignored once the tx is committed

	var record domain.ReactionRecord
	err = tx.QueryRow(`
	INSERT INTO post_reactions(post_id, user_id, kind)
	VALUES($1, $2, $3)
	RETURNING id, post_id, user_id, kind`,
		postId, userId, kind).Scan(&record.Id, &record.PostId, &record.UserId, &record.Kind)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return nil, internal_errors.Conflict("reaction already active")
			case "foreign_key_violation":
				return nil, internal_errors.NotFound("Post")
			}
		}
		return nil, err
	}

	result, err := tx.Exec(fmt.Sprintf(`UPDATE posts SET %s = %s + 1 WHERE id = $1`, column, column), postId)
	if err != nil {
		return nil, err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if updated == 0 {
		return nil, internal_errors.NotFound("Post")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteReaction removes the ledger record and decrements the count,
// floored at zero so out-of-order toggles can never drive it negative.
func (s *Storage) DeleteReaction(record *domain.ReactionRecord) error {
	column, err := countColumn(record.Kind)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`DELETE FROM post_reactions WHERE id = $1`, record.Id)
	if err != nil {
		return err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		// someone else's toggle already removed it; keep counts untouched
		return tx.Commit()
	}

	if _, err := tx.Exec(fmt.Sprintf(`UPDATE posts SET %s = GREATEST(%s - 1, 0) WHERE id = $1`, column, column), record.PostId); err != nil {
		return err
	}

	return tx.Commit()
}

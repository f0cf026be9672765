package service

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/safespace-dev/safespace/internal/domain"
	"github.com/safespace-dev/safespace/internal/errors"
	"github.com/safespace-dev/safespace/internal/logger"
)

var reactionsToggled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reactions_toggled_total",
		Help: "Reaction toggles, by kind and direction",
	},
	[]string{"kind", "direction"},
)

type ReactionService interface {
	Toggle(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (bool, error)
}

type ReactionStorage interface {
	FindReaction(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (*domain.ReactionRecord, error)
	InsertReaction(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (*domain.ReactionRecord, error)
	DeleteReaction(record *domain.ReactionRecord) error
}

type Reaction struct {
	storage ReactionStorage
}

func NewReaction(storage ReactionStorage) *Reaction {
	return &Reaction{storage}
}

// Toggle flips the caller's reaction of the given kind and reports
// whether it is active afterwards. The store's uniqueness constraint is
// the last word under concurrency: a conflicting insert means another
// toggle already activated it, which counts as success.
func (r *Reaction) Toggle(postId domain.PostId, userId domain.UserId, kind domain.ReactionKind) (bool, error) {
	if userId == 0 {
		return false, errors.Permission("Sign in to react")
	}
	if !kind.Valid() {
		return false, errors.Validation("Unknown reaction kind %q", kind)
	}

	record, err := r.storage.FindReaction(postId, userId, kind)
	if err != nil {
		return false, err
	}

	if record != nil {
		if err := r.storage.DeleteReaction(record); err != nil {
			return false, err
		}
		reactionsToggled.WithLabelValues(string(kind), "off").Inc()
		return false, nil
	}

	if _, err := r.storage.InsertReaction(postId, userId, kind); err != nil {
		if errors.HasStatus(err, http.StatusConflict) {
			logger.Log.Debug("reaction insert raced another toggle", "post_id", postId, "kind", kind)
			reactionsToggled.WithLabelValues(string(kind), "on").Inc()
			return true, nil
		}
		return false, err
	}
	reactionsToggled.WithLabelValues(string(kind), "on").Inc()
	return true, nil
}

package domain

type (
	Email    = string
	Password = string
	UserId   = int64

	PostId    = int64
	ReplyId   = int64
	Topic     = string
	PostText  = string
	MessageId = string

	ExerciseId = string
)

// ReactionKind enumerates the supported post reactions.
type ReactionKind string

const (
	Hearts  ReactionKind = "hearts"
	Hugs    ReactionKind = "hugs"
	Relates ReactionKind = "relates"
)

// ReactionKinds lists every valid kind in display order.
var ReactionKinds = []ReactionKind{Hearts, Hugs, Relates}

func (k ReactionKind) Valid() bool {
	switch k {
	case Hearts, Hugs, Relates:
		return true
	}
	return false
}

// Topics is the fixed set of support topics a post can belong to.
var Topics = []Topic{"general", "anxiety", "depression", "relationships", "grief", "recovery"}

func ValidTopic(t Topic) bool {
	for _, topic := range Topics {
		if t == topic {
			return true
		}
	}
	return false
}

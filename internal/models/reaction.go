package models

import "time"

// Reaction kinds. The set is fixed; the per-kind counter columns on Post
// mirror it one to one.
const (
	ReactionLike    = "like"
	ReactionLaugh   = "laugh"
	ReactionWow     = "wow"
	ReactionSad     = "sad"
	ReactionAngry   = "angry"
	ReactionSupport = "support"
)

// ReactionKinds lists every accepted reaction kind.
var ReactionKinds = []string{
	ReactionLike, ReactionLaugh, ReactionWow,
	ReactionSad, ReactionAngry, ReactionSupport,
}

// ValidReactionKind reports whether k is one of the accepted reaction kinds.
func ValidReactionKind(k string) bool {
	for _, kind := range ReactionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Reaction represents a user's reaction to a post.
//
// The UNIQUE(post_id, user_id) index makes at-most-one-reaction-per-user a
// database guarantee rather than an application convention: two concurrent
// reaction requests for the same pair cannot both insert.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_reaction_post_user;index" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reaction_post_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Kind      string    `gorm:"size:16;not null" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Media kinds accepted on a post.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// ReactionCounts holds the denormalized per-kind reaction tallies stored on
// a post. Columns are maintained in the same transaction as the reaction
// rows themselves, so the sum always equals the number of reaction rows for
// the post.
type ReactionCounts struct {
	Like    int `gorm:"not null;default:0" json:"like"`
	Laugh   int `gorm:"not null;default:0" json:"laugh"`
	Wow     int `gorm:"not null;default:0" json:"wow"`
	Sad     int `gorm:"not null;default:0" json:"sad"`
	Angry   int `gorm:"not null;default:0" json:"angry"`
	Support int `gorm:"not null;default:0" json:"support"`
}

// Total returns the sum of all reaction tallies.
func (rc ReactionCounts) Total() int {
	return rc.Like + rc.Laugh + rc.Wow + rc.Sad + rc.Angry + rc.Support
}

// Post represents a post in the Nabta application.
//
// Likes, Comments, Shares and Reactions are denormalized counters kept in
// step with their child tables transactionally; they exist so feed reads
// never scan children.
type Post struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"not null;index" json:"user_id"`
	User      User    `gorm:"foreignKey:UserID" json:"user"`
	CircleID  *uint   `gorm:"index" json:"circle_id,omitempty"`
	Circle    *Circle `gorm:"foreignKey:CircleID" json:"circle,omitempty"`
	Content   string  `gorm:"type:text;not null" json:"content"`
	MediaURL  string  `json:"media_url,omitempty"`
	MediaType string  `gorm:"size:16" json:"media_type,omitempty"`

	Likes     int            `gorm:"not null;default:0" json:"likes"`
	Comments  int            `gorm:"not null;default:0" json:"comments"`
	Shares    int            `gorm:"not null;default:0" json:"shares"`
	Reactions ReactionCounts `gorm:"embedded;embeddedPrefix:reaction_" json:"reactions"`

	// LikedBy is not persisted; populated at query time from the likes table.
	LikedBy []uint `gorm:"-" json:"liked_by"`
	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"-" json:"liked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Share records a single share of a post. Shares are never de-duplicated:
// one user sharing the same post twice produces two rows and two counter
// increments.
type Share struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Kind      string    `gorm:"size:16;not null" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Share kinds.
const (
	ShareKindDirect   = "direct"
	ShareKindStory    = "story"
	ShareKindExternal = "external"
)

// ValidShareKind reports whether k is one of the accepted share kinds.
func ValidShareKind(k string) bool {
	switch k {
	case ShareKindDirect, ShareKindStory, ShareKindExternal:
		return true
	}
	return false
}

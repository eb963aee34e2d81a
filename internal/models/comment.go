package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. A non-nil ParentCommentID makes
// the comment a reply; replies nest to arbitrary depth through the same
// pointer.
type Comment struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	PostID          uint   `gorm:"not null;index" json:"post_id"`
	UserID          uint   `gorm:"not null" json:"user_id"`
	User            User   `gorm:"foreignKey:UserID" json:"user"`
	Content         string `gorm:"type:text;not null" json:"content"`
	Likes           int    `gorm:"not null;default:0" json:"likes"`
	ParentCommentID *uint  `gorm:"index" json:"parent_comment_id"`

	// Replies is not persisted; populated by the tree builder in the
	// comment service.
	Replies []*Comment `gorm:"-" json:"replies"`
	// Liked indicates whether the current requesting user liked this comment (computed)
	Liked bool `gorm:"-" json:"liked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CommentLike represents a user's like on a comment.
// The combination of UserID and CommentID must be unique.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_user_comment;index" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

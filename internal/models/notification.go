package models

import "time"

// Notification types.
const (
	NotificationLike     = "like"
	NotificationComment  = "comment"
	NotificationShare    = "share"
	NotificationReaction = "reaction"
)

// Notification is an in-app notification row. Message and MessageAr carry
// the English and Arabic renderings; the client picks one by locale.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Type       string    `gorm:"size:16;not null;index" json:"type"`
	FromUserID uint      `gorm:"not null" json:"from_user_id"`
	FromUser   User      `gorm:"foreignKey:FromUserID" json:"from_user"`
	ToUserID   uint      `gorm:"not null;index" json:"to_user_id"`
	PostID     uint      `gorm:"index" json:"post_id"`
	Message    string    `gorm:"not null" json:"message"`
	MessageAr  string    `gorm:"not null" json:"message_ar"`
	Read       bool      `gorm:"not null;default:false;index" json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import "time"

// CircleStatus defines the moderation state of a circle.
type CircleStatus string

const (
	// CircleStatusActive indicates a circle is visible and usable.
	CircleStatusActive CircleStatus = "active"
	// CircleStatusInactive indicates a circle is hidden from browsing.
	CircleStatusInactive CircleStatus = "inactive"
)

// Circle represents a growth circle: a topic community users join to post
// into. Name, description and category carry English/Arabic pairs.
//
// Members is a denormalized counter over circle_members. It is corrected by
// the nightly reconciliation job whenever it drifts from the membership
// rows.
type Circle struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"size:120;not null" json:"name"`
	NameAr        string       `gorm:"size:120" json:"name_ar"`
	Description   string       `gorm:"type:text" json:"description"`
	DescriptionAr string       `gorm:"type:text" json:"description_ar"`
	Category      string       `gorm:"size:64;index" json:"category"`
	CategoryAr    string       `gorm:"size:64" json:"category_ar"`
	Status        CircleStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	IsPrivate     bool         `gorm:"not null;default:false" json:"is_private"`

	Members int `gorm:"not null;default:0" json:"members"`
	Posts   int `gorm:"not null;default:0" json:"posts"`

	ImageURL           string `json:"image_url,omitempty"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`

	// MemberIDs and AdminIDs are not persisted; populated at query time
	// from circle_members.
	MemberIDs []uint `gorm:"-" json:"member_ids,omitempty"`
	AdminIDs  []uint `gorm:"-" json:"admin_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Circle) TableName() string {
	return "circles"
}

// Circle membership roles.
const (
	CircleRoleMember = "member"
	CircleRoleAdmin  = "admin"
)

// CircleMember links a user to a circle. UNIQUE(circle_id, user_id) keeps
// double-join impossible; the Members counter on Circle is maintained in
// the same transaction as rows here.
type CircleMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CircleID  uint      `gorm:"not null;uniqueIndex:idx_circle_member;index" json:"circle_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_circle_member" json:"user_id"`
	Role      string    `gorm:"size:16;not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (CircleMember) TableName() string {
	return "circle_members"
}

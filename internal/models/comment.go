package models

import "time"

// MaxCommentLength bounds comment text; enforced before any write.
const MaxCommentLength = 1000

// Comment belongs to exactly one post and is removed with it.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Text      string    `gorm:"size:1000;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

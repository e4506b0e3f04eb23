package models

import (
	"time"
)

// Comment is attached either directly to a post or as a reply to another
// comment; exactly one of PostID and ParentID is set, enforced at the
// service layer rather than by a database constraint. Comments survive
// deletion of their author (user FK set to NULL) but cascade away with
// their post or parent comment.
type Comment struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	PostID   *uint    `gorm:"index" json:"post"`
	Post     *Post    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID   *uint    `gorm:"index" json:"-"`
	User     *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	ParentID *uint    `gorm:"index" json:"parent"`
	Parent   *Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	Body     string   `gorm:"type:text" json:"body"`
	// Timestamp is bumped on every save, so it reflects last-modified
	// rather than creation time. Inherited behavior, kept deliberately.
	Timestamp time.Time `gorm:"autoUpdateTime" json:"timestamp"`
	// TotalReplies is not persisted; computed at query time as the count
	// of comments whose parent reference equals this comment.
	TotalReplies int `gorm:"->;-:migration" json:"total_replies"`
}

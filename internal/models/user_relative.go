package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRelative is one directed edge of the relative graph: UserID added
// RelativeID as a relative. The pair is the primary key, so an edge exists at
// most once and is read in both directions from this single table.
type UserRelative struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	RelativeID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"relative_id"`
	CreatedAt  time.Time `json:"created_at"`
	Owner      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Relative   User      `gorm:"foreignKey:RelativeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserRelative) TableName() string {
	return "user_relatives"
}

package models

import (
	"time"
)

// Issue is a unit of work filed under a project
type Issue struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProjectID   uint      `json:"projectId" gorm:"not null;index"`
	Summary     string    `json:"summary" gorm:"size:300;not null"`
	Description string    `json:"description" gorm:"size:3500"`
	StatusID    uint      `json:"statusId" gorm:"not null;index"`
	AuthorID    *string   `json:"authorId" gorm:"type:varchar(36);index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Project Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
	Status  Status  `json:"status" gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT"`
	Types   []Type  `json:"types" gorm:"many2many:issue_types"`
	Author  *User   `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
}

// AuthoredBy reports whether userID filed the issue
func (i Issue) AuthoredBy(userID string) bool {
	return i.AuthorID != nil && userID != "" && *i.AuthorID == userID
}

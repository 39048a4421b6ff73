package models

import (
	"time"
)

// Project groups issues. Deleting a project through the API only sets
// IsDeleted; the row and its issues are kept.
type Project struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:50;not null"`
	Description string     `json:"description" gorm:"size:300;not null"`
	StartsDate  time.Time  `json:"startsDate" gorm:"type:date;not null;index"`
	FinishDate  *time.Time `json:"finishDate" gorm:"type:date"`
	IsDeleted   bool       `json:"isDeleted" gorm:"not null;default:false;index"`
	AuthorID    *string    `json:"authorId" gorm:"type:varchar(36);index"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Author *User   `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	Issues []Issue `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
}

// AuthoredBy reports whether userID wrote the project
func (p Project) AuthoredBy(userID string) bool {
	return p.AuthorID != nil && userID != "" && *p.AuthorID == userID
}

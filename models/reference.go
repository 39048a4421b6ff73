package models

// Status labels the progress of an issue
type Status struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:300;uniqueIndex;not null"`
}

// Type categorises an issue; an issue may carry several
type Type struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:300;uniqueIndex;not null"`
}

const (
	StatusNew        = "New"
	StatusInProgress = "In_progress"
	StatusDone       = "Done"

	TypeIssue       = "Issue"
	TypeBug         = "Bug"
	TypeEnhancement = "Enhancement"
)

// StatusChoices is the fixed set of statuses, in display order
var StatusChoices = []string{StatusNew, StatusInProgress, StatusDone}

// TypeChoices is the fixed set of issue types, in display order
var TypeChoices = []string{TypeIssue, TypeBug, TypeEnhancement}

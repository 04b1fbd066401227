package model

import (
	"time"
)

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

type Task struct {
	ID          int       `json:"id" validate:"gt=0"`
	Title       string    `json:"title" validate:"required"`
	Priority    Priority  `json:"priority" validate:"oneof=low medium high"`
	Category    string    `json:"category"`
	DueDate     string    `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Description string    `json:"description"`
	Progress    int       `json:"progress" validate:"gte=0,lte=100"`
	CreatedAt   time.Time `json:"createdAt"`
	TimeSpent   int64     `json:"timeSpent" validate:"gte=0"`
	Notified    bool      `json:"notified"`
}

// Due returns the due date as UTC midnight. ok is false when the task has
// no due date or the stored value does not parse.
func (t Task) Due() (due time.Time, ok bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	due, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// NewTask holds the user supplied fields of a task being created.
type NewTask struct {
	Title       string   `validate:"required"`
	Priority    Priority `validate:"omitempty,oneof=low medium high"`
	Category    string
	DueDate     string `validate:"omitempty,datetime=2006-01-02"`
	Description string
}

// TaskPatch lists the fields an edit may overwrite. Nil fields are left as is.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority `validate:"omitempty,oneof=low medium high"`
	Category    *string
	DueDate     *string `validate:"omitempty,datetime=2006-01-02"`
	Progress    *int    `validate:"omitempty,gte=0,lte=100"`
}

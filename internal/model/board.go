package model

import (
	"time"
)

// StorageKey is the record name the board is persisted under.
const StorageKey = "taskBoardData"

// PersistedState is the durable representation of a board. History is not
// part of it.
type PersistedState struct {
	Tasks         []Task                `json:"tasks"`
	Columns       map[ColumnID][]string `json:"columns"`
	TaskIDCounter int                   `json:"taskIdCounter"`
}

// Snapshot is a point in time copy of the tasks and their placement. It is
// never modified after creation.
type Snapshot struct {
	Tasks   []Task
	Columns map[ColumnID][]int
}

// Export is the downloadable board artifact.
type Export struct {
	Tasks    []Task                `json:"tasks"`
	Exported time.Time             `json:"exported"`
	Columns  map[ColumnID][]string `json:"columns"`
}

// BoardRecord stores one encoded board under a name.
type BoardRecord struct {
	Name      string `gorm:"primaryKey"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// ColumnView is a column projected for rendering.
type ColumnView struct {
	ID    ColumnID `json:"id"`
	Tasks []Task   `json:"tasks"`
	Count int      `json:"count"`
}

// BoardView is the render projection of the board.
type BoardView struct {
	Columns []ColumnView `json:"columns"`
	CanUndo bool         `json:"can_undo"`
	CanRedo bool         `json:"can_redo"`
	Running []int        `json:"running_timers"`
	Overdue []int        `json:"overdue"`
}

// Stats summarises the board.
type Stats struct {
	Total          int              `json:"total"`
	PerColumn      map[ColumnID]int `json:"per_column"`
	HighPriority   int              `json:"high_priority"`
	Overdue        int              `json:"overdue"`
	TimeSpent      int64            `json:"time_spent"`
	TimeSpentLabel string           `json:"time_spent_label"`
	AvgProgress    int              `json:"avg_progress"`
}

package model

import "strings"

// ColumnID names a workflow stage on the board.
type ColumnID string

const (
	ColumnTodo      ColumnID = "todo"
	ColumnBacklog   ColumnID = "backlog"
	ColumnInProcess ColumnID = "in-process"
	ColumnDone      ColumnID = "done"
)

// Columns lists every column in display order.
var Columns = []ColumnID{ColumnTodo, ColumnBacklog, ColumnInProcess, ColumnDone}

// Valid reports whether c is one of the board columns.
func (c ColumnID) Valid() bool {
	for _, col := range Columns {
		if c == col {
			return true
		}
	}
	return false
}

// ParseColumn accepts a column id, including the legacy "-col" suffixed
// element ids older records were saved with.
func ParseColumn(s string) (ColumnID, bool) {
	c := ColumnID(strings.TrimSuffix(strings.TrimSpace(s), "-col"))
	if !c.Valid() {
		return "", false
	}
	return c, true
}

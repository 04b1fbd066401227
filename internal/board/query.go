package board

import (
	"math"
	"strings"
	"time"

	"taskboard/internal/model"
)

// Filter narrows the visible tasks. Empty fields match everything.
type Filter struct {
	Search   string
	Priority model.Priority
	Category string
}

func (f Filter) Matches(t model.Task) bool {
	if term := strings.ToLower(f.Search); term != "" {
		if !strings.Contains(strings.ToLower(t.Title), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
			return false
		}
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return true
}

// View projects the placed tasks that match f, column by column. Counts
// only include visible tasks.
func (b *Board) View(f Filter) []model.ColumnView {
	views := make([]model.ColumnView, 0, len(model.Columns))
	for _, col := range model.Columns {
		view := model.ColumnView{ID: col, Tasks: []model.Task{}}
		for _, id := range b.columns[col] {
			task, ok := b.store.Get(id)
			if !ok || !f.Matches(task) {
				continue
			}
			view.Tasks = append(view.Tasks, task)
		}
		view.Count = len(view.Tasks)
		views = append(views, view)
	}
	return views
}

// Stats summarises every task in the store at now.
func (b *Board) Stats(now time.Time) model.Stats {
	tasks := b.store.List()
	stats := model.Stats{Total: len(tasks), PerColumn: b.Counts()}

	var progress int
	for _, t := range tasks {
		if t.Priority == model.PriorityHigh {
			stats.HighPriority++
		}
		if IsOverdue(t, now) {
			stats.Overdue++
		}
		stats.TimeSpent += t.TimeSpent
		progress += t.Progress
	}
	if len(tasks) > 0 {
		stats.AvgProgress = int(math.Round(float64(progress) / float64(len(tasks))))
	}
	stats.TimeSpentLabel = model.FormatDuration(stats.TimeSpent)
	return stats
}

// Overdue returns the ids of tasks whose due date has passed.
func (b *Board) Overdue(now time.Time) []int {
	ids := []int{}
	for _, t := range b.store.List() {
		if IsOverdue(t, now) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// IsOverdue reports whether the due date of t is before now.
func IsOverdue(t model.Task, now time.Time) bool {
	due, ok := t.Due()
	return ok && due.Before(now)
}

// DaysUntilDue returns the number of days left until the task is due,
// rounded up.
func DaysUntilDue(t model.Task, now time.Time) (int, bool) {
	due, ok := t.Due()
	if !ok {
		return 0, false
	}
	days := due.Sub(now).Hours() / 24
	return int(math.Ceil(days)), true
}

// DueTomorrow returns the tasks that fall due within the next day and have
// not been warned about yet.
func (b *Board) DueTomorrow(now time.Time) []model.Task {
	var out []model.Task
	for _, t := range b.store.List() {
		if t.Notified {
			continue
		}
		if days, ok := DaysUntilDue(t, now); ok && days == 1 {
			out = append(out, t)
		}
	}
	return out
}

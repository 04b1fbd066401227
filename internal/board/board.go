package board

import (
	"strconv"

	"github.com/hashicorp/go-multierror"

	"taskboard/internal/model"
)

// Board places the tasks of a TaskStore into the fixed set of columns. The
// column mapping is the only record of where a task lives.
type Board struct {
	store   *TaskStore
	columns map[model.ColumnID][]int
}

func New(store *TaskStore) *Board {
	return &Board{store: store, columns: emptyColumns()}
}

func (b *Board) Store() *TaskStore { return b.store }

// AddTask creates a task and appends it to the end of the todo column.
func (b *Board) AddTask(fields model.NewTask) (model.Task, error) {
	task, err := b.store.Create(fields)
	if err != nil {
		return model.Task{}, err
	}
	b.columns[model.ColumnTodo] = append(b.columns[model.ColumnTodo], task.ID)
	return task, nil
}

// MoveTask takes the task out of its column and puts it into target at
// index. A nil index appends; indexes past either end are clamped.
func (b *Board) MoveTask(id int, target model.ColumnID, index *int) error {
	if !target.Valid() {
		return &model.ValidationError{Field: "column", Reason: "unknown column " + strconv.Quote(string(target))}
	}
	from, pos, ok := b.locate(id)
	if !ok {
		return &model.NotFoundError{ID: id}
	}
	b.columns[from] = removeAt(b.columns[from], pos)

	ids := b.columns[target]
	at := len(ids)
	if index != nil && *index < at {
		at = *index
		if at < 0 {
			at = 0
		}
	}
	ids = append(ids, 0)
	copy(ids[at+1:], ids[at:])
	ids[at] = id
	b.columns[target] = ids
	return nil
}

// BulkMove appends every id to target and returns how many were moved.
// Each id is moved on its own; the returned error lists the ids that failed.
func (b *Board) BulkMove(ids []int, target model.ColumnID) (int, error) {
	var result *multierror.Error
	moved := 0
	for _, id := range dedupe(ids) {
		if err := b.MoveTask(id, target, nil); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		moved++
	}
	return moved, result.ErrorOrNil()
}

// DeleteTask removes the task from the store and from its column.
func (b *Board) DeleteTask(id int) error {
	if err := b.store.Delete(id); err != nil {
		return err
	}
	if col, pos, ok := b.locate(id); ok {
		b.columns[col] = removeAt(b.columns[col], pos)
	}
	return nil
}

func (b *Board) BulkDelete(ids []int) (int, error) {
	var result *multierror.Error
	deleted := 0
	for _, id := range dedupe(ids) {
		if err := b.DeleteTask(id); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		deleted++
	}
	return deleted, result.ErrorOrNil()
}

func (b *Board) EditTask(id int, patch model.TaskPatch) (model.Task, error) {
	return b.store.Update(id, patch)
}

// Column returns the ordered ids placed in col.
func (b *Board) Column(col model.ColumnID) []int {
	return append([]int(nil), b.columns[col]...)
}

// Locate reports which column holds id.
func (b *Board) Locate(id int) (model.ColumnID, bool) {
	col, _, ok := b.locate(id)
	return col, ok
}

func (b *Board) Counts() map[model.ColumnID]int {
	counts := make(map[model.ColumnID]int, len(model.Columns))
	for _, col := range model.Columns {
		counts[col] = len(b.columns[col])
	}
	return counts
}

// Serialize returns the durable form of the board.
func (b *Board) Serialize() model.PersistedState {
	tasks := b.store.List()
	if tasks == nil {
		tasks = []model.Task{}
	}
	return model.PersistedState{
		Tasks:         tasks,
		Columns:       b.columnRefs(),
		TaskIDCounter: b.store.NextID(),
	}
}

// Restore replaces the board with a persisted one. Column references to
// tasks that do not exist are dropped. Tasks no column refers to are kept
// in the store but stay unplaced.
func (b *Board) Restore(state model.PersistedState) {
	b.store.Reset(state.Tasks, state.TaskIDCounter)

	refs := make(map[model.ColumnID][]int, len(state.Columns))
	for col, raw := range state.Columns {
		for _, ref := range raw {
			id, err := strconv.Atoi(ref)
			if err != nil {
				continue
			}
			refs[col] = append(refs[col], id)
		}
	}
	b.place(refs)
}

// Snapshot captures the tasks and their placement.
func (b *Board) Snapshot() model.Snapshot {
	cols := make(map[model.ColumnID][]int, len(model.Columns))
	for _, col := range model.Columns {
		cols[col] = append([]int{}, b.columns[col]...)
	}
	return model.Snapshot{Tasks: b.store.List(), Columns: cols}
}

// Apply restores a snapshot. The id counter is left alone so ids handed out
// after the snapshot was taken are never reused.
func (b *Board) Apply(s model.Snapshot) {
	b.store.Reset(s.Tasks, b.store.NextID())
	b.place(s.Columns)
}

func (b *Board) place(refs map[model.ColumnID][]int) {
	b.columns = emptyColumns()
	placed := make(map[int]bool)
	for _, col := range model.Columns {
		for _, id := range refs[col] {
			if placed[id] {
				continue
			}
			if _, ok := b.store.Get(id); !ok {
				continue
			}
			placed[id] = true
			b.columns[col] = append(b.columns[col], id)
		}
	}
}

func (b *Board) columnRefs() map[model.ColumnID][]string {
	out := make(map[model.ColumnID][]string, len(model.Columns))
	for _, col := range model.Columns {
		refs := make([]string, 0, len(b.columns[col]))
		for _, id := range b.columns[col] {
			refs = append(refs, strconv.Itoa(id))
		}
		out[col] = refs
	}
	return out
}

func (b *Board) locate(id int) (model.ColumnID, int, bool) {
	for _, col := range model.Columns {
		for i, placed := range b.columns[col] {
			if placed == id {
				return col, i, true
			}
		}
	}
	return "", 0, false
}

func emptyColumns() map[model.ColumnID][]int {
	cols := make(map[model.ColumnID][]int, len(model.Columns))
	for _, col := range model.Columns {
		cols[col] = []int{}
	}
	return cols
}

func removeAt(ids []int, i int) []int {
	out := make([]int, 0, len(ids)-1)
	out = append(out, ids[:i]...)
	return append(out, ids[i+1:]...)
}

func dedupe(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

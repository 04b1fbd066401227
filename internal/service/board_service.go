// Package service holds the board state manager: the single owner of the
// board, its undo history, its persisted record and the running timers.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"

	"taskboard/internal/board"
	"taskboard/internal/codec"
	"taskboard/internal/model"
	"taskboard/internal/notify"
	"taskboard/internal/repository"
	"taskboard/internal/timer"
)

type Option func(*BoardService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *BoardService) { s.now = now }
}

// WithTicker replaces the one second ticker driving task timers.
func WithTicker(newTick timer.TickerFunc) Option {
	return func(s *BoardService) { s.newTick = newTick }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *BoardService) { s.logger = logger }
}

// WithStorageKey changes the record name the board is saved under.
func WithStorageKey(key string) Option {
	return func(s *BoardService) { s.key = key }
}

// BoardService applies user actions to the board. Every action runs under
// one lock so that recording history and mutating happen as a unit.
//
// Lock order: a timer tick holds the tracker lock and then takes mu, so mu
// is never held while calling into the tracker.
type BoardService struct {
	mu      sync.Mutex
	board   *board.Board
	history *board.History
	// dirty is set while the live board differs from the history entry
	// under the cursor.
	dirty bool

	repo     repository.RecordRepository
	notifier notify.Notifier
	timers   *timer.Tracker
	newTick  timer.TickerFunc
	logger   *log.Logger
	key      string
	now      func() time.Time
}

func New(repo repository.RecordRepository, notifier notify.Notifier, opts ...Option) *BoardService {
	s := &BoardService{
		history:  board.NewHistory(),
		dirty:    true,
		repo:     repo,
		notifier: notifier,
		logger:   log.StandardLogger(),
		key:      model.StorageKey,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.board = board.New(board.NewTaskStore(s.now))
	s.timers = timer.NewTracker(s.tick, s.newTick)
	return s
}

// Load replaces the board with the saved record. A missing record starts
// an empty board; a record that cannot be decoded is deleted and an empty
// board is used instead.
func (s *BoardService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Reset()
	s.dirty = true
	s.board = board.New(board.NewTaskStore(s.now))

	payload, err := s.repo.Load(ctx, s.key)
	if errors.Is(err, repository.ErrRecordNotFound) {
		s.logger.Info("No saved board, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	state, err := codec.Decode([]byte(payload))
	if err != nil {
		s.logger.WithError(err).Warn("Saved board is corrupted, starting fresh")
		if derr := s.repo.Delete(ctx, s.key); derr != nil {
			s.logger.WithError(derr).Error("Failed to delete corrupted board")
		}
		return nil
	}

	s.board.Restore(state)
	s.logger.WithField("tasks", len(state.Tasks)).Info("Board loaded")
	return nil
}

// Save writes the current board to storage.
func (s *BoardService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

func (s *BoardService) AddTask(ctx context.Context, fields model.NewTask) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var task model.Task
	err := s.mutate(ctx, func(b *board.Board) (bool, error) {
		var err error
		task, err = b.AddTask(fields)
		return err == nil, err
	})
	if err != nil {
		return task, err
	}
	s.notifier.Notify(notify.SeveritySuccess, "Task added successfully!")
	return task, nil
}

func (s *BoardService) EditTask(ctx context.Context, id int, patch model.TaskPatch) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var task model.Task
	err := s.mutate(ctx, func(b *board.Board) (bool, error) {
		var err error
		task, err = b.EditTask(id, patch)
		return err == nil, err
	})
	if err != nil {
		return task, err
	}
	s.notifier.Notify(notify.SeveritySuccess, "Task updated successfully!")
	return task, nil
}

// MoveTask places the task in column at index, or at the end when index is nil.
func (s *BoardService) MoveTask(ctx context.Context, id int, column model.ColumnID, index *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutate(ctx, func(b *board.Board) (bool, error) {
		err := b.MoveTask(id, column, index)
		return err == nil, err
	})
	if err != nil {
		return err
	}
	s.notifier.Notify(notify.SeveritySuccess, "Task moved successfully!")
	return nil
}

// BulkMove moves every id to the end of column. Ids that fail are reported
// in the returned error and do not affect the others.
func (s *BoardService) BulkMove(ctx context.Context, ids []int, column model.ColumnID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var moved int
	err := s.mutate(ctx, func(b *board.Board) (bool, error) {
		var err error
		moved, err = b.BulkMove(ids, column)
		return moved > 0, err
	})
	if moved > 0 {
		s.notifier.Notify(notify.SeveritySuccess, fmt.Sprintf("%d tasks moved successfully!", moved))
	}
	return moved, err
}

// DeleteTask removes the task and stops its timer.
func (s *BoardService) DeleteTask(ctx context.Context, id int) error {
	s.mu.Lock()
	err := s.mutate(ctx, func(b *board.Board) (bool, error) {
		err := b.DeleteTask(id)
		return err == nil, err
	})
	s.mu.Unlock()

	s.timers.Stop(id)
	if err != nil {
		return err
	}
	s.notifier.Notify(notify.SeveritySuccess, "Task deleted successfully!")
	return nil
}

func (s *BoardService) BulkDelete(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var deleted int
	s.mu.Lock()
	err := s.mutate(ctx, func(b *board.Board) (bool, error) {
		var err error
		deleted, err = b.BulkDelete(ids)
		return deleted > 0, err
	})
	s.mu.Unlock()

	for _, id := range ids {
		s.timers.Stop(id)
	}
	if deleted > 0 {
		s.notifier.Notify(notify.SeveritySuccess, fmt.Sprintf("%d tasks deleted successfully!", deleted))
	}
	return deleted, err
}

// Undo returns the board to the previous history entry. It reports false
// when there is nothing to undo.
func (s *BoardService) Undo(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.history.Len() == 0 {
		return false, nil
	}
	if s.dirty {
		// keep the live board so redo can come back to it
		s.history.Record(s.board.Snapshot())
		s.dirty = false
	}
	snap, ok := s.history.Undo()
	if !ok {
		return false, nil
	}
	s.board.Apply(snap)
	s.notifier.Notify(notify.SeveritySuccess, "Undo successful!")
	return true, s.persist(ctx)
}

func (s *BoardService) Redo(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.history.Redo()
	if !ok {
		return false, nil
	}
	s.board.Apply(snap)
	s.dirty = false
	s.notifier.Notify(notify.SeveritySuccess, "Redo successful!")
	return true, s.persist(ctx)
}

// ToggleTimer starts or stops time tracking for a task and reports whether
// the timer is now running.
func (s *BoardService) ToggleTimer(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	_, ok := s.board.Store().Get(id)
	s.mu.Unlock()
	if !ok {
		return false, &model.NotFoundError{ID: id}
	}
	return s.timers.Toggle(id), nil
}

// Close stops every running timer.
func (s *BoardService) Close() {
	s.timers.StopAll()
}

// tick adds one second to a running task. Ticks are not undo steps, but
// the live board no longer matches the history cursor afterwards.
func (s *BoardService) tick(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.board.Store().IncrementTimeSpent(id, 1); err != nil {
		return err
	}
	s.dirty = true
	if err := s.persist(context.Background()); err != nil {
		s.logger.WithField("task_id", id).Warn("Time spent not saved")
	}
	return nil
}

// CheckDueDates warns once about every task due tomorrow and returns the
// ids of overdue tasks.
func (s *BoardService) CheckDueDates(ctx context.Context, now time.Time) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := s.board.DueTomorrow(now)
	for _, task := range due {
		if err := s.board.Store().SetNotified(task.ID); err != nil {
			return nil, err
		}
		s.notifier.Notify(notify.SeverityWarning, fmt.Sprintf("Task %q is due tomorrow!", task.Title))
		s.notifier.NotifyNative("Task Due Tomorrow", fmt.Sprintf("%q is due tomorrow!", task.Title))
	}

	var err error
	if len(due) > 0 {
		s.dirty = true
		err = s.persist(ctx)
	}
	return s.board.Overdue(now), err
}

// RunDueDateScanner checks due dates every interval until ctx is done.
func (s *BoardService) RunDueDateScanner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.CheckDueDates(ctx, s.now()); err != nil {
				s.logger.WithError(err).Error("Due date check failed")
			}
		}
	}
}

func (s *BoardService) GetTask(id int) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.board.Store().Get(id)
	if !ok {
		return model.Task{}, &model.NotFoundError{ID: id}
	}
	return task, nil
}

// View projects the board for rendering.
func (s *BoardService) View(f board.Filter) model.BoardView {
	running := s.timers.Active()
	sort.Ints(running)

	s.mu.Lock()
	defer s.mu.Unlock()
	// a timer on a task removed by undo stops at its next tick
	live := running[:0]
	for _, id := range running {
		if _, ok := s.board.Store().Get(id); ok {
			live = append(live, id)
		}
	}
	return model.BoardView{
		Columns: s.board.View(f),
		Running: live,
		CanUndo: s.canUndo(),
		CanRedo: s.history.CanRedo(),
		Overdue: s.board.Overdue(s.now()),
	}
}

func (s *BoardService) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Stats(s.now())
}

func (s *BoardService) Export() model.Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.board.Serialize()
	return model.Export{
		Tasks:    state.Tasks,
		Exported: s.now().UTC(),
		Columns:  state.Columns,
	}
}

// Snapshot returns a copy of the live board.
func (s *BoardService) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Snapshot()
}

// State returns the durable form of the live board.
func (s *BoardService) State() model.PersistedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Serialize()
}

func (s *BoardService) canUndo() bool {
	if s.dirty {
		return s.history.Len() > 0
	}
	return s.history.CanUndo()
}

// mutate runs op against the board. When op changed anything, the state
// from before op is kept as an undo step and the board is saved. Must be
// called with mu held.
func (s *BoardService) mutate(ctx context.Context, op func(b *board.Board) (bool, error)) error {
	before := s.board.Snapshot()
	changed, err := op(s.board)
	if !changed {
		return err
	}

	if s.dirty || s.history.Len() == 0 {
		s.history.Record(before)
	} else {
		// before is already the entry under the cursor
		s.history.DropRedo()
	}
	s.dirty = true

	if perr := s.persist(ctx); perr != nil {
		if err == nil {
			return perr
		}
		return multierror.Append(err, perr)
	}
	return err
}

func (s *BoardService) persist(ctx context.Context) error {
	data, err := codec.Encode(s.board.Serialize())
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if err := s.repo.Save(ctx, s.key, string(data)); err != nil {
		s.logger.WithError(err).Error("Failed to save board")
		return fmt.Errorf("save board: %w", err)
	}
	return nil
}

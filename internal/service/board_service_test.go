package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"taskboard/internal/board"
	"taskboard/internal/codec"
	"taskboard/internal/model"
	"taskboard/internal/notify"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/timer"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(severity notify.Severity, message string) {
	m.Called(severity, message)
}

func (m *MockNotifier) NotifyNative(title, body string) bool {
	args := m.Called(title, body)
	return args.Bool(0)
}

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Load(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, name, payload string) error {
	args := m.Called(ctx, name, payload)
	return args.Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

var fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	svc      *service.BoardService
	repo     *repository.MemoryRecordRepository
	notifier *MockNotifier
	ticker   *timer.ManualTicker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     repository.NewMemoryRecordRepository(),
		notifier: &MockNotifier{},
		ticker:   &timer.ManualTicker{},
	}
	f.notifier.On("Notify", mock.Anything, mock.Anything).Maybe()
	f.notifier.On("NotifyNative", mock.Anything, mock.Anything).Return(true).Maybe()
	logger, _ := test.NewNullLogger()
	f.svc = service.New(f.repo, f.notifier,
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithTicker(f.ticker.New),
		service.WithLogger(logger),
	)
	t.Cleanup(f.svc.Close)
	return f
}

func (f *fixture) seed(t *testing.T, payload string) {
	t.Helper()
	require.NoError(t, f.repo.Save(context.Background(), model.StorageKey, payload))
	require.NoError(t, f.svc.Load(context.Background()))
}

func (f *fixture) add(t *testing.T, title string) model.Task {
	t.Helper()
	task, err := f.svc.AddTask(context.Background(), model.NewTask{Title: title})
	require.NoError(t, err)
	return task
}

func (f *fixture) saved(t *testing.T) model.PersistedState {
	t.Helper()
	payload, err := f.repo.Load(context.Background(), model.StorageKey)
	require.NoError(t, err)
	state, err := codec.Decode([]byte(payload))
	require.NoError(t, err)
	return state
}

func column(view model.BoardView, id model.ColumnID) model.ColumnView {
	for _, col := range view.Columns {
		if col.ID == id {
			return col
		}
	}
	return model.ColumnView{}
}

func ids(col model.ColumnView) []int {
	out := []int{}
	for _, task := range col.Tasks {
		out = append(out, task.ID)
	}
	return out
}

func TestBoardService_AddThenDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Load(ctx))

	task, err := f.svc.AddTask(ctx, model.NewTask{Title: "Buy milk", Priority: model.PriorityLow, Category: "errand"})

	require.NoError(t, err)
	assert.Equal(t, 1, task.ID)
	todo := column(f.svc.View(board.Filter{}), model.ColumnTodo)
	assert.Equal(t, 1, todo.Count)
	assert.Equal(t, "Buy milk", todo.Tasks[0].Title)
	assert.Equal(t, []string{"1"}, f.saved(t).Columns[model.ColumnTodo])
	f.notifier.AssertCalled(t, "Notify", notify.SeveritySuccess, "Task added successfully!")

	require.NoError(t, f.svc.DeleteTask(ctx, task.ID))

	todo = column(f.svc.View(board.Filter{}), model.ColumnTodo)
	assert.Equal(t, 0, todo.Count)
	assert.Empty(t, f.saved(t).Tasks)
	_, err = f.svc.GetTask(task.ID)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestBoardService_AddRejectsBlankTitle(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddTask(context.Background(), model.NewTask{Title: "   "})

	assert.True(t, errors.Is(err, model.ErrValidation))
	assert.False(t, f.svc.View(board.Filter{}).CanUndo)
	_, err = f.repo.Load(context.Background(), model.StorageKey)
	assert.True(t, errors.Is(err, repository.ErrRecordNotFound))
}

func TestBoardService_MoveUndoRedo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, "A")
	b := f.add(t, "B")

	require.NoError(t, f.svc.MoveTask(ctx, a.ID, model.ColumnDone, nil))
	view := f.svc.View(board.Filter{})
	assert.Equal(t, []int{a.ID}, ids(column(view, model.ColumnDone)))
	assert.True(t, view.CanUndo)
	assert.False(t, view.CanRedo)

	ok, err := f.svc.Undo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	view = f.svc.View(board.Filter{})
	assert.Equal(t, []int{a.ID, b.ID}, ids(column(view, model.ColumnTodo)))
	assert.Empty(t, ids(column(view, model.ColumnDone)))
	assert.True(t, view.CanRedo)
	assert.Equal(t, []string{}, f.saved(t).Columns[model.ColumnDone])

	ok, err = f.svc.Redo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	view = f.svc.View(board.Filter{})
	assert.Equal(t, []int{a.ID}, ids(column(view, model.ColumnDone)))
	assert.Equal(t, []int{b.ID}, ids(column(view, model.ColumnTodo)))
	assert.False(t, view.CanRedo)
	assert.Equal(t, []string{"1"}, f.saved(t).Columns[model.ColumnDone])
}

func TestBoardService_UndoWalksBackToEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "A")
	f.add(t, "B")

	for i := 0; i < 2; i++ {
		ok, err := f.svc.Undo(ctx)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Empty(t, f.svc.State().Tasks)

	ok, err := f.svc.Undo(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, f.svc.View(board.Filter{}).CanUndo)

	c := f.add(t, "C")
	assert.Equal(t, 3, c.ID, "ids are never reused after undo")
}

func TestBoardService_MutationAfterUndoDropsRedo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, "A")
	require.NoError(t, f.svc.MoveTask(ctx, a.ID, model.ColumnDone, nil))

	_, err := f.svc.Undo(ctx)
	require.NoError(t, err)
	require.NoError(t, f.svc.MoveTask(ctx, a.ID, model.ColumnBacklog, nil))

	assert.False(t, f.svc.View(board.Filter{}).CanRedo)
	ok, err := f.svc.Redo(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.svc.Undo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{a.ID}, ids(column(f.svc.View(board.Filter{}), model.ColumnTodo)))
}

func TestBoardService_HistoryIsBounded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < board.HistoryLimit+10; i++ {
		f.add(t, fmt.Sprintf("task %d", i))
	}
	latest := f.svc.Snapshot()

	undone := 0
	for {
		ok, err := f.svc.Undo(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		undone++
	}
	assert.Equal(t, board.HistoryLimit-1, undone)
	assert.NotEmpty(t, f.svc.State().Tasks, "oldest states were evicted")

	for i := 0; i < undone; i++ {
		ok, err := f.svc.Redo(ctx)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, latest, f.svc.Snapshot())
}

func TestBoardService_NoOpMutationIsNotRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.MoveTask(ctx, 42, model.ColumnDone, nil)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	moved, err := f.svc.BulkMove(ctx, []int{8, 9}, model.ColumnDone)
	assert.Error(t, err)
	assert.Zero(t, moved)
	assert.False(t, f.svc.View(board.Filter{}).CanUndo)
}

func TestBoardService_BulkOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, "A")
	b := f.add(t, "B")
	c := f.add(t, "C")

	moved, err := f.svc.BulkMove(ctx, []int{a.ID, c.ID, 99}, model.ColumnInProcess)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.Equal(t, 2, moved)
	assert.Equal(t, []int{a.ID, c.ID}, ids(column(f.svc.View(board.Filter{}), model.ColumnInProcess)))
	f.notifier.AssertCalled(t, "Notify", notify.SeveritySuccess, "2 tasks moved successfully!")

	deleted, err := f.svc.BulkDelete(ctx, []int{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Len(t, f.saved(t).Tasks, 1)

	ok, err := f.svc.Undo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, f.svc.State().Tasks, 3)
}

func TestBoardService_EditTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, "A")
	title := "Write report"
	progress := 40

	got, err := f.svc.EditTask(ctx, a.ID, model.TaskPatch{Title: &title, Progress: &progress})

	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, 40, f.saved(t).Tasks[0].Progress)

	bad := 140
	_, err = f.svc.EditTask(ctx, a.ID, model.TaskPatch{Progress: &bad})
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestBoardService_LoadDropsDanglingReferences(t *testing.T) {
	f := newFixture(t)

	f.seed(t, `{"tasks":[{"id":5,"title":"five","priority":"low","category":"","dueDate":"","description":"","progress":0,"createdAt":"2026-03-01T00:00:00Z","timeSpent":0,"notified":false}],`+
		`"columns":{"todo":["5","99"],"backlog":[],"in-process":[],"done":[]},"taskIdCounter":6}`)

	todo := column(f.svc.View(board.Filter{}), model.ColumnTodo)
	assert.Equal(t, 1, todo.Count)
	assert.Equal(t, []int{5}, ids(todo))

	task := f.add(t, "next")
	assert.Equal(t, 6, task.ID)
}

func TestBoardService_LoadDeletesCorruptRecord(t *testing.T) {
	f := newFixture(t)

	f.seed(t, `{"tasks": "nope"`)

	_, err := f.repo.Load(context.Background(), model.StorageKey)
	assert.True(t, errors.Is(err, repository.ErrRecordNotFound))
	for _, col := range f.svc.View(board.Filter{}).Columns {
		assert.Zero(t, col.Count)
	}
	assert.Equal(t, 1, f.add(t, "fresh").ID)
}

func TestBoardService_LoadMissingRecord(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Load(context.Background()))

	assert.Empty(t, f.svc.State().Tasks)
	assert.Equal(t, 1, f.svc.State().TaskIDCounter)
}

func TestBoardService_LoadRepositoryError(t *testing.T) {
	repo := &MockRecordRepository{}
	repo.On("Load", mock.Anything, model.StorageKey).Return("", errors.New("connection refused"))
	svc := service.New(repo, notify.NewCenter(nil, notify.PermissionDefault))

	err := svc.Load(context.Background())

	assert.ErrorContains(t, err, "connection refused")
	repo.AssertExpectations(t)
}

func TestBoardService_SaveFailureKeepsMutation(t *testing.T) {
	repo := &MockRecordRepository{}
	repo.On("Save", mock.Anything, model.StorageKey, mock.Anything).Return(errors.New("disk full"))
	logger, hook := test.NewNullLogger()
	svc := service.New(repo, notify.NewCenter(logger, notify.PermissionDefault), service.WithLogger(logger))

	task, err := svc.AddTask(context.Background(), model.NewTask{Title: "A"})

	assert.ErrorContains(t, err, "disk full")
	got, gerr := svc.GetTask(task.ID)
	require.NoError(t, gerr)
	assert.Equal(t, "A", got.Title)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestBoardService_TimerAccruesAndResumes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, `{"tasks":[{"id":7,"title":"seven","priority":"medium","createdAt":"2026-03-01T00:00:00Z","timeSpent":0}],`+
		`"columns":{"todo":["7"],"backlog":[],"in-process":[],"done":[]},"taskIdCounter":8}`)
	spent := func() int64 {
		task, err := f.svc.GetTask(7)
		require.NoError(t, err)
		return task.TimeSpent
	}

	running, err := f.svc.ToggleTimer(ctx, 7)
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, []int{7}, f.svc.View(board.Filter{}).Running)

	f.ticker.Tick(3)
	assert.Eventually(t, func() bool { return spent() == 3 }, time.Second, time.Millisecond)

	running, err = f.svc.ToggleTimer(ctx, 7)
	require.NoError(t, err)
	assert.False(t, running)
	assert.Empty(t, f.svc.View(board.Filter{}).Running)

	running, err = f.svc.ToggleTimer(ctx, 7)
	require.NoError(t, err)
	assert.True(t, running)
	f.ticker.Tick(2)
	assert.Eventually(t, func() bool { return spent() == 5 }, time.Second, time.Millisecond)
	assert.Equal(t, int64(5), f.saved(t).Tasks[0].TimeSpent)
	assert.False(t, f.svc.View(board.Filter{}).CanUndo, "ticks are not undo steps")
}

func TestBoardService_ToggleTimerUnknownTask(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ToggleTimer(context.Background(), 3)

	assert.True(t, errors.Is(err, model.ErrNotFound))
	assert.Zero(t, f.ticker.Started())
}

func TestBoardService_DeleteStopsTimer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, "A")
	_, err := f.svc.ToggleTimer(ctx, a.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTask(ctx, a.ID))

	assert.Empty(t, f.svc.View(board.Filter{}).Running)
}

func TestBoardService_CheckDueDatesNotifiesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tomorrow := fixedNow.AddDate(0, 0, 1).Format(model.DateLayout)
	yesterday := fixedNow.AddDate(0, 0, -1).Format(model.DateLayout)
	_, err := f.svc.AddTask(ctx, model.NewTask{Title: "Pay rent", DueDate: tomorrow})
	require.NoError(t, err)
	late, err := f.svc.AddTask(ctx, model.NewTask{Title: "File taxes", DueDate: yesterday})
	require.NoError(t, err)

	overdue, err := f.svc.CheckDueDates(ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, []int{late.ID}, overdue)
	f.notifier.AssertCalled(t, "Notify", notify.SeverityWarning, `Task "Pay rent" is due tomorrow!`)
	f.notifier.AssertCalled(t, "NotifyNative", "Task Due Tomorrow", `"Pay rent" is due tomorrow!`)
	assert.True(t, f.saved(t).Tasks[0].Notified)

	_, err = f.svc.CheckDueDates(ctx, fixedNow)
	require.NoError(t, err)
	f.notifier.AssertNumberOfCalls(t, "NotifyNative", 1)
}

func TestBoardService_ExportAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.AddTask(ctx, model.NewTask{Title: "A", Priority: model.PriorityHigh})
	require.NoError(t, err)
	b := f.add(t, "B")
	require.NoError(t, f.svc.MoveTask(ctx, b.ID, model.ColumnDone, nil))

	exp := f.svc.Export()
	assert.Len(t, exp.Tasks, 2)
	assert.Equal(t, fixedNow, exp.Exported)
	assert.Equal(t, []string{"2"}, exp.Columns[model.ColumnDone])

	stats := f.svc.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.HighPriority)
	assert.Equal(t, 1, stats.PerColumn[model.ColumnDone])
}

func TestBoardService_ViewFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.AddTask(ctx, model.NewTask{Title: "Buy milk", Category: "errand"})
	require.NoError(t, err)
	f.add(t, "Write report")

	todo := column(f.svc.View(board.Filter{Search: "milk"}), model.ColumnTodo)

	assert.Equal(t, 1, todo.Count)
	assert.Equal(t, "Buy milk", todo.Tasks[0].Title)
}

func TestBoardService_RunDueDateScannerStopsWithContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		f.svc.RunDueDateScanner(ctx, time.Millisecond)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scanner did not stop")
	}
}

func TestBoardService_UndoRedoKeepsTimeTrackedAfterUndo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, "A")
	f.add(t, "B")
	require.NoError(t, f.svc.MoveTask(ctx, a.ID, model.ColumnDone, nil))
	_, err := f.svc.Undo(ctx)
	require.NoError(t, err)

	_, err = f.svc.ToggleTimer(ctx, a.ID)
	require.NoError(t, err)
	f.ticker.Tick(3)
	assert.Eventually(t, func() bool {
		task, _ := f.svc.GetTask(a.ID)
		return task.TimeSpent == 3
	}, time.Second, time.Millisecond)
	_, err = f.svc.ToggleTimer(ctx, a.ID)
	require.NoError(t, err)
	before := f.svc.Snapshot()

	ok, err := f.svc.Undo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = f.svc.Redo(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, before, f.svc.Snapshot())
	got, err := f.svc.GetTask(a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TimeSpent)
}

func TestBoardService_UndoRedoKeepsNotifiedFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tomorrow := fixedNow.AddDate(0, 0, 1).Format(model.DateLayout)
	rent, err := f.svc.AddTask(ctx, model.NewTask{Title: "Pay rent", DueDate: tomorrow})
	require.NoError(t, err)
	f.add(t, "B")
	_, err = f.svc.Undo(ctx)
	require.NoError(t, err)
	_, err = f.svc.Redo(ctx)
	require.NoError(t, err)

	_, err = f.svc.CheckDueDates(ctx, fixedNow)
	require.NoError(t, err)
	ok, err := f.svc.Undo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = f.svc.Redo(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := f.svc.GetTask(rent.ID)
	require.NoError(t, err)
	assert.True(t, got.Notified)
	_, err = f.svc.CheckDueDates(ctx, fixedNow)
	require.NoError(t, err)
	f.notifier.AssertNumberOfCalls(t, "NotifyNative", 1)
}

package board

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"taskboard/internal/model"
)

var validate = validator.New()

// TaskStore owns the canonical task list and the id counter.
type TaskStore struct {
	tasks  []model.Task
	nextID int
	now    func() time.Time
}

func NewTaskStore(now func() time.Time) *TaskStore {
	if now == nil {
		now = time.Now
	}
	return &TaskStore{nextID: 1, now: now}
}

// Create validates the fields and appends a new task with the next id.
func (s *TaskStore) Create(fields model.NewTask) (model.Task, error) {
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Description = strings.TrimSpace(fields.Description)
	if fields.Title == "" {
		return model.Task{}, &model.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if err := validateStruct(fields); err != nil {
		return model.Task{}, err
	}
	if fields.Priority == "" {
		fields.Priority = model.PriorityMedium
	}

	task := model.Task{
		ID:          s.nextID,
		Title:       fields.Title,
		Priority:    fields.Priority,
		Category:    fields.Category,
		DueDate:     fields.DueDate,
		Description: fields.Description,
		CreatedAt:   s.now().UTC(),
	}
	s.nextID++
	s.tasks = append(s.tasks, task)
	return task, nil
}

// Update overwrites the provided fields. Nothing is written unless the whole
// patch is valid.
func (s *TaskStore) Update(id int, patch model.TaskPatch) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &model.NotFoundError{ID: id}
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.Task{}, &model.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return model.Task{}, &model.ValidationError{Field: "priority", Reason: "must be one of low, medium, high"}
	}
	if err := validateStruct(patch); err != nil {
		return model.Task{}, err
	}

	task := &s.tasks[i]
	if patch.Title != nil {
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Progress != nil {
		task.Progress = *patch.Progress
	}
	return *task, nil
}

func (s *TaskStore) Delete(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return &model.NotFoundError{ID: id}
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

func (s *TaskStore) Get(id int) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// List returns a copy of the tasks in insertion order.
func (s *TaskStore) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Len() int { return len(s.tasks) }

// IncrementTimeSpent adds delta seconds to the task's tracked time.
func (s *TaskStore) IncrementTimeSpent(id int, delta int64) (model.Task, error) {
	if delta < 0 {
		return model.Task{}, &model.ValidationError{Field: "timeSpent", Reason: "delta must not be negative"}
	}
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &model.NotFoundError{ID: id}
	}
	s.tasks[i].TimeSpent += delta
	return s.tasks[i], nil
}

func (s *TaskStore) SetNotified(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return &model.NotFoundError{ID: id}
	}
	s.tasks[i].Notified = true
	return nil
}

// NextID is the id the next created task will get.
func (s *TaskStore) NextID() int { return s.nextID }

// Reset replaces every task and the counter. The counter never drops to an
// id that is already taken.
func (s *TaskStore) Reset(tasks []model.Task, nextID int) {
	s.tasks = make([]model.Task, len(tasks))
	copy(s.tasks, tasks)
	for _, t := range tasks {
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}
	if nextID < 1 {
		nextID = 1
	}
	s.nextID = nextID
}

func (s *TaskStore) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &model.ValidationError{Field: strings.ToLower(fe.Field()), Reason: "failed " + fe.Tag() + " check"}
	}
	return &model.ValidationError{Reason: err.Error()}
}

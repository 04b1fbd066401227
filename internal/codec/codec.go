// Package codec turns a board into the JSON record kept in storage and back.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"taskboard/internal/model"
)

var validate = validator.New()

// record mirrors the stored JSON. Pointer fields tell a missing value apart
// from a zero one.
type record struct {
	Tasks         []model.Task         `json:"tasks"`
	Columns       *map[string][]string `json:"columns"`
	TaskIDCounter int                  `json:"taskIdCounter"`
}

// Encode serializes state. Map keys come out sorted, so equal states encode
// to equal bytes.
func Encode(state model.PersistedState) ([]byte, error) {
	out := model.PersistedState{
		Tasks:         state.Tasks,
		Columns:       make(map[model.ColumnID][]string, len(model.Columns)),
		TaskIDCounter: state.TaskIDCounter,
	}
	if out.Tasks == nil {
		out.Tasks = []model.Task{}
	}
	for _, col := range model.Columns {
		refs := state.Columns[col]
		if refs == nil {
			refs = []string{}
		}
		out.Columns[col] = refs
	}
	return json.Marshal(out)
}

// Decode parses a stored record. Any problem with the data is reported as a
// *model.DecodeError; nothing is returned in that case.
func Decode(data []byte) (model.PersistedState, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.PersistedState{}, &model.DecodeError{Err: errors.New("empty record")}
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.PersistedState{}, &model.DecodeError{Err: err}
	}
	if rec.Columns == nil {
		return model.PersistedState{}, &model.DecodeError{Err: errors.New("columns missing")}
	}

	state := model.PersistedState{
		Tasks:         rec.Tasks,
		Columns:       make(map[model.ColumnID][]string, len(model.Columns)),
		TaskIDCounter: rec.TaskIDCounter,
	}
	if state.Tasks == nil {
		state.Tasks = []model.Task{}
	}
	if state.TaskIDCounter <= 0 {
		state.TaskIDCounter = 1
	}

	for _, col := range model.Columns {
		state.Columns[col] = []string{}
	}
	for _, key := range columnKeys(*rec.Columns) {
		refs := (*rec.Columns)[key]
		col, ok := model.ParseColumn(key)
		if !ok {
			return model.PersistedState{}, &model.DecodeError{Err: fmt.Errorf("unknown column %q", key)}
		}
		if refs != nil {
			state.Columns[col] = append(state.Columns[col], refs...)
		}
	}

	seen := make(map[int]bool, len(state.Tasks))
	for i, task := range state.Tasks {
		if err := validate.Struct(task); err != nil {
			return model.PersistedState{}, &model.DecodeError{Err: fmt.Errorf("task %d: %w", i, err)}
		}
		if seen[task.ID] {
			return model.PersistedState{}, &model.DecodeError{Err: fmt.Errorf("duplicate task id %d", task.ID)}
		}
		seen[task.ID] = true
	}
	return state, nil
}

// columnKeys orders the stored column keys so that bare ids come before
// their legacy "-col" twins.
func columnKeys(cols map[string][]string) []string {
	keys := make([]string, 0, len(cols))
	for key := range cols {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := strings.HasSuffix(keys[i], "-col"), strings.HasSuffix(keys[j], "-col")
		if li != lj {
			return lj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// EncodeExport renders the downloadable artifact.
func EncodeExport(exp model.Export) ([]byte, error) {
	if exp.Tasks == nil {
		exp.Tasks = []model.Task{}
	}
	return json.MarshalIndent(exp, "", "  ")
}

// ExportFilename names the artifact after the day it was produced.
func ExportFilename(at time.Time) string {
	return "tasks-export-" + at.UTC().Format(model.DateLayout) + ".json"
}

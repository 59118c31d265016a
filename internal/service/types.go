// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Task represents a single task record.
type Task struct {
	ID   string // key of the entry in the store
	Name string

	// Raw is the entry's JSON object with "id" set to ID.
	// Fields the store carries beyond id and name pass through here unmodified.
	Raw []byte
}

// Field returns a pass-through attribute of the task by gjson path.
func (t Task) Field(path string) gjson.Result {
	return gjson.GetBytes(t.Raw, path)
}

// FetchError is the single error kind for a failed read: network failure,
// non-success status and malformed body alike.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch tasks: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps err as a *FetchError. A nil err yields nil.
func NewFetchError(err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Err: err}
}

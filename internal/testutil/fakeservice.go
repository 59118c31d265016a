// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/tidwall/sjson"

	"tasklist/internal/service"
)

// ErrNetwork is a canned transport failure for error injection.
var ErrNetwork = errors.New("dial tcp: connection refused")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.Mutex
	tasks []service.Task
	calls int

	// Err, when set, is returned from FetchTasks wrapped as *service.FetchError.
	Err error

	// Gate, when set, holds FetchTasks until it is closed or the context ends.
	Gate chan struct{}

	// Started receives one value per FetchTasks call, if non-nil.
	Started chan struct{}
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask adds a task with the given key and name.
func (f *FakeService) AddTask(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, _ := sjson.SetBytes([]byte(`{}`), "name", name)
	raw, _ = sjson.SetBytes(raw, "id", id)
	f.tasks = append(f.tasks, service.Task{ID: id, Name: name, Raw: raw})
}

// Calls returns how many times FetchTasks has been called.
func (f *FakeService) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FetchTasks implements service.Service.
func (f *FakeService) FetchTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.Started != nil {
		f.Started <- struct{}{}
	}
	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, service.NewFetchError(ctx.Err())
		}
	}
	if f.Err != nil {
		return nil, service.NewFetchError(f.Err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// TaskNames joins task names with commas, for compact assertions.
func TaskNames(tasks []service.Task) string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name
	}
	return strings.Join(names, ",")
}

// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All remote store calls go through this interface.
// The component and commands never import an HTTP client directly.
type Service interface {
	// FetchTasks performs one read of the task collection.
	// Returns an empty slice if the store holds no tasks.
	// Results are in the order the store delivered them (no client-side sorting).
	// Any failure is reported as *FetchError.
	FetchTasks(ctx context.Context) ([]Task, error)
}

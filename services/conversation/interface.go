// Package conversation persists per-thread dialogue state. The dialogue
// controller is the only writer; concurrent requests on the same thread are
// serialized above this layer.
package conversation

import (
	"context"
	"fmt"

	"voyago/models"
)

// Store is keyed persistence of dialogue threads.
type Store interface {
	// Get loads a thread, creating an empty one on first access.
	Get(ctx context.Context, threadID string) (*models.Thread, error)
	// Save persists the thread and refreshes its retention window.
	Save(ctx context.Context, thread *models.Thread) error
	// Reset destroys the thread; the next Get starts from empty state.
	Reset(ctx context.Context, threadID string) error
	// List enumerates known thread IDs.
	List(ctx context.Context) ([]string, error)
}

// StoreError marks persistence failures. They surface as service-level
// errors rather than silently losing slot state.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("conversation store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/rickchristie/backtrack"
)

// PersistError describes a failed PersistStack call.
// It matches backtrack.ErrPersistFailed with errors.Is and unwraps to the
// underlying cause.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist stack %q: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() []error {
	return []error{backtrack.ErrPersistFailed, e.Err}
}

// errNoStore is returned when a persistence operation runs on a Manager
// created without a Store.
var errNoStore = errors.New("snapshot: manager has no store")

// PersistStack encodes stack and saves it under key, overwriting any
// previous value. Every failure, including a panicking Store, is returned as
// a *PersistError; PersistStack itself never panics.
func (m *Manager) PersistStack(ctx context.Context, stack Stack, key string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PersistError{Key: key, Err: fmt.Errorf("store panic: %v", r)}
		}
	}()

	if m.store == nil {
		return &PersistError{Key: key, Err: errNoStore}
	}
	data, err := EncodeStack(stack)
	if err != nil {
		return &PersistError{Key: key, Err: err}
	}
	if err := m.store.Put(ctx, key, data); err != nil {
		return &PersistError{Key: key, Err: err}
	}
	return nil
}

// LoadStack loads the stack saved under key.
// Returns an error wrapping backtrack.ErrNotFound when the key is absent.
func (m *Manager) LoadStack(ctx context.Context, key string) (Stack, error) {
	if m.store == nil {
		return nil, errNoStore
	}
	data, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load stack %q: %w", key, err)
	}
	stack, err := DecodeStack(data)
	if err != nil {
		return nil, fmt.Errorf("load stack %q: %w", key, err)
	}
	return stack, nil
}

// DeleteStack removes the stack saved under key. Deleting a missing key is
// not an error.
func (m *Manager) DeleteStack(ctx context.Context, key string) error {
	if m.store == nil {
		return errNoStore
	}
	if err := m.store.Erase(ctx, key); err != nil {
		return fmt.Errorf("delete stack %q: %w", key, err)
	}
	return nil
}

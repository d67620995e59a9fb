package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Collection is a whole-blob list of T. Every read-modify-write goes through Update
// under one mutex, so concurrent mutations in this process never lose an update.
type Collection[T any] struct {
	mu    sync.Mutex
	store BlobStore
	name  string
}

func NewCollection[T any](store BlobStore, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

// Load returns the full collection; a missing blob is an empty collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Save replaces the full collection.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, items)
}

// Update runs fn on the current items and saves what it returns.
// When fn fails but still returns a non-nil slice, that slice is saved before the
// error is returned, so partial progress is kept. A nil slice means "save nothing".
// fn must not call back into the same collection.
//
// With an AtomicBlobStore the read and the write also happen inside the store's
// own lock, so other processes sharing the store cannot interleave.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if atomic, ok := c.store.(AtomicBlobStore); ok {
		var fnErr error
		err := atomic.Modify(ctx, c.name, func(data []byte) ([]byte, error) {
			items, err := c.decode(data)
			if err != nil {
				return nil, err
			}
			next, err := fn(items)
			fnErr = err
			if next == nil {
				return nil, nil
			}
			return c.encode(next)
		})
		if err != nil {
			return errors.Join(fnErr, err)
		}
		return fnErr
	}

	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	next, fnErr := fn(items)
	if next != nil {
		if err := c.save(ctx, next); err != nil {
			return errors.Join(fnErr, err)
		}
	}
	return fnErr
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.store.Read(ctx, c.name)
	if errors.Is(err, ErrBlobNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	return c.decode(data)
}

func (c *Collection[T]) decode(data []byte) ([]T, error) {
	items := []T{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return items, nil
}

func (c *Collection[T]) encode(items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.name, err)
	}
	return data, nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	data, err := c.encode(items)
	if err != nil {
		return err
	}
	return c.store.Write(ctx, c.name, data)
}

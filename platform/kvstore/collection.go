package kvstore

import (
	"context"

	"care_portal_backend/platform/logger"
)

// Collection is a typed view over a single key holding a JSON array of
// records, with update-by-id semantics. The id function extracts the record
// identifier used by Upsert, Patch, Remove and Find.
type Collection[T any] struct {
	store Store
	log   *logger.Logger
	key   string
	id    func(T) string
}

// NewCollection creates a typed collection over the given store key.
func NewCollection[T any](store Store, log *logger.Logger, key string, id func(T) string) *Collection[T] {
	return &Collection[T]{store: store, log: log, key: key, id: id}
}

// Key returns the store key this collection is persisted under.
func (c *Collection[T]) Key() string { return c.key }

// All returns every record in the collection. Absent or corrupt state yields
// an empty slice.
func (c *Collection[T]) All(ctx context.Context) []T {
	return GetJSON(ctx, c.store, c.log, c.key, []T{})
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) {
	SetJSON(ctx, c.store, c.log, c.key, items)
}

// Upsert inserts the record, or replaces the existing record with the same id.
func (c *Collection[T]) Upsert(ctx context.Context, item T) {
	items := c.All(ctx)
	id := c.id(item)
	replaced := false
	for i := range items {
		if c.id(items[i]) == id {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	c.Replace(ctx, items)
}

// FindByID returns the record with the given id.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, bool) {
	for _, item := range c.All(ctx) {
		if c.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// RemoveByID deletes the record with the given id. Returns false when no
// record matched.
func (c *Collection[T]) RemoveByID(ctx context.Context, id string) bool {
	items := c.All(ctx)
	for i := range items {
		if c.id(items[i]) == id {
			c.Replace(ctx, append(items[:i], items[i+1:]...))
			return true
		}
	}
	return false
}

// Patch shallow-merges the given fields into the JSON object with the
// matching id. Working on the raw JSON keeps fields unknown to T intact.
// Returns false when no record matched.
func (c *Collection[T]) Patch(ctx context.Context, id string, fields map[string]any) bool {
	raw := GetJSON(ctx, c.store, c.log, c.key, []map[string]any{})
	for i := range raw {
		recID, _ := raw[i]["id"].(string)
		if recID != id {
			continue
		}
		for k, v := range fields {
			raw[i][k] = v
		}
		SetJSON(ctx, c.store, c.log, c.key, raw)
		return true
	}
	return false
}

// Clear removes every record.
func (c *Collection[T]) Clear(ctx context.Context) {
	SetJSON(ctx, c.store, c.log, c.key, []T{})
}

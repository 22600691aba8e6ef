// Package repository persists the lead collection through the key-value
// store capability. The whole collection lives under one key as a JSON
// array; every operation is synchronous read-modify-write with last-write-
// wins semantics.
package repository

import (
	"context"
	"errors"

	"care_portal_backend/internal/leads/domain"
	"care_portal_backend/platform/kvstore"
	"care_portal_backend/platform/logger"
)

// CollectionKey is the store key holding the lead collection.
const CollectionKey = "leads"

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	leads *kvstore.Collection[domain.Lead]
}

func New(store kvstore.Store, log *logger.Logger) *Repository {
	return &Repository{
		leads: kvstore.NewCollection(store, log, CollectionKey, func(l domain.Lead) string {
			return l.ID
		}),
	}
}

// All returns every lead. Leads are never physically deleted by the
// lifecycle; cancellation is a status, not a removal.
func (r *Repository) All(ctx context.Context) []domain.Lead {
	return r.leads.All(ctx)
}

// ListByStatus returns leads with the given status, in stored order.
func (r *Repository) ListByStatus(ctx context.Context, status domain.Status) []domain.Lead {
	all := r.leads.All(ctx)
	out := make([]domain.Lead, 0, len(all))
	for _, l := range all {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out
}

func (r *Repository) FindByID(ctx context.Context, id string) (domain.Lead, error) {
	lead, ok := r.leads.FindByID(ctx, id)
	if !ok {
		return domain.Lead{}, ErrNotFound
	}
	return lead, nil
}

// Exists reports whether a lead with the id is stored; used by the id
// generator's collision check.
func (r *Repository) Exists(ctx context.Context, id string) bool {
	_, ok := r.leads.FindByID(ctx, id)
	return ok
}

// Upsert inserts the lead or replaces the stored record with the same id.
func (r *Repository) Upsert(ctx context.Context, lead domain.Lead) {
	r.leads.Upsert(ctx, lead)
}

// Patch shallow-merges fields into the stored lead record.
func (r *Repository) Patch(ctx context.Context, id string, fields map[string]any) error {
	if !r.leads.Patch(ctx, id, fields) {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) RemoveByID(ctx context.Context, id string) error {
	if !r.leads.RemoveByID(ctx, id) {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) Clear(ctx context.Context) {
	r.leads.Clear(ctx)
}

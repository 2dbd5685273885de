package order

import (
	"context"
	"errors"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	// Save persists the snapshot and returns its id. Snapshots are written
	// once and never updated afterwards (Published excepted).
	Save(ctx context.Context, snap *Snapshot) (string, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]Snapshot, error)
	// GetUnpublished returns snapshots whose completed-order event has not
	// been published yet, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]Snapshot, error)
	MarkPublished(ctx context.Context, orderID string) error
}

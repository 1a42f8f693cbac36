package repository

import (
	"context"
	"errors"

	"github.com/guttosm/kitchen-receipt-service/internal/circuitbreaker"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
)

// MenuRepositoryWithCircuitBreaker wraps a menu repository with circuit breaker protection.
type MenuRepositoryWithCircuitBreaker struct {
	repo           MenuRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewMenuRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewMenuRepositoryWithCircuitBreaker(repo MenuRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *MenuRepositoryWithCircuitBreaker {
	return &MenuRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// List returns the decodable menu documents with circuit breaker protection.
// Per-record diagnostics are not failures.
func (r *MenuRepositoryWithCircuitBreaker) List(ctx context.Context) ([]MenuItemDocument, []model.RecordDiagnostic, error) {
	var (
		docs  []MenuItemDocument
		diags []model.RecordDiagnostic
	)
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		docs, diags, cbErr = r.repo.List(ctx)
		return cbErr
	})
	return docs, diags, err
}

// Upsert writes menu items with circuit breaker protection.
func (r *MenuRepositoryWithCircuitBreaker) Upsert(ctx context.Context, docs []MenuItemDocument) (int64, error) {
	var n int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		n, cbErr = r.repo.Upsert(ctx, docs)
		return cbErr
	})
	return n, err
}

// Delete removes a menu item with circuit breaker protection.
func (r *MenuRepositoryWithCircuitBreaker) Delete(ctx context.Context, name string) (bool, error) {
	var deleted bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		deleted, cbErr = r.repo.Delete(ctx, name)
		return cbErr
	})
	return deleted, err
}

// Count returns the number of menu documents with circuit breaker protection.
func (r *MenuRepositoryWithCircuitBreaker) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		n, cbErr = r.repo.Count(ctx)
		return cbErr
	})
	return n, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *MenuRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// ChangesRepositoryWithCircuitBreaker wraps a changes repository with circuit breaker protection.
type ChangesRepositoryWithCircuitBreaker struct {
	repo           ChangesRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewChangesRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewChangesRepositoryWithCircuitBreaker(repo ChangesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ChangesRepositoryWithCircuitBreaker {
	return &ChangesRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetMarker reads a change marker with circuit breaker protection.
func (r *ChangesRepositoryWithCircuitBreaker) GetMarker(ctx context.Context, key string) (string, error) {
	var marker string
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		marker, cbErr = r.repo.GetMarker(ctx, key)
		return cbErr
	})
	return marker, err
}

// Touch bumps a change marker with circuit breaker protection.
func (r *ChangesRepositoryWithCircuitBreaker) Touch(ctx context.Context, key string) (string, error) {
	var marker string
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		marker, cbErr = r.repo.Touch(ctx, key)
		return cbErr
	})
	return marker, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ChangesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// ReceiptsRepositoryWithCircuitBreaker wraps a receipts repository with circuit breaker protection.
type ReceiptsRepositoryWithCircuitBreaker struct {
	repo           ReceiptsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewReceiptsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewReceiptsRepositoryWithCircuitBreaker(repo ReceiptsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ReceiptsRepositoryWithCircuitBreaker {
	return &ReceiptsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// CreateMany archives receipts with circuit breaker protection.
// An open circuit drops the batch: archiving is best effort.
func (r *ReceiptsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, receipts []*ReceiptDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, receipts)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Recent lists archived receipts with circuit breaker protection.
func (r *ReceiptsRepositoryWithCircuitBreaker) Recent(ctx context.Context, limit int) ([]*ReceiptDocument, error) {
	var result []*ReceiptDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Recent(ctx, limit)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ReceiptsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

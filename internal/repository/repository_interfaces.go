package repository

import (
	"context"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
)

// MenuRepositoryInterface defines the menu collection operations.
type MenuRepositoryInterface interface {
	List(ctx context.Context) ([]MenuItemDocument, []model.RecordDiagnostic, error)
	Upsert(ctx context.Context, docs []MenuItemDocument) (int64, error)
	Delete(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// ChangesRepositoryInterface defines the change marker operations.
type ChangesRepositoryInterface interface {
	GetMarker(ctx context.Context, key string) (string, error)
	Touch(ctx context.Context, key string) (string, error)
}

// ReceiptsRepositoryInterface defines the receipt archive operations.
type ReceiptsRepositoryInterface interface {
	CreateMany(ctx context.Context, receipts []*ReceiptDocument) error
	Recent(ctx context.Context, limit int) ([]*ReceiptDocument, error)
}

var (
	_ MenuRepositoryInterface     = (*MenuRepository)(nil)
	_ MenuRepositoryInterface     = (*MenuRepositoryWithCircuitBreaker)(nil)
	_ ChangesRepositoryInterface  = (*ChangesRepository)(nil)
	_ ChangesRepositoryInterface  = (*ChangesRepositoryWithCircuitBreaker)(nil)
	_ ReceiptsRepositoryInterface = (*ReceiptsRepository)(nil)
	_ ReceiptsRepositoryInterface = (*ReceiptsRepositoryWithCircuitBreaker)(nil)
)

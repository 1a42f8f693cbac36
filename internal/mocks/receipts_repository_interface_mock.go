// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/kitchen-receipt-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockReceiptsRepositoryInterface struct {
	mock.Mock
}

func (m *MockReceiptsRepositoryInterface) CreateMany(ctx context.Context, receipts []*repository.ReceiptDocument) error {
	args := m.Called(ctx, receipts)
	return args.Error(0)
}

func (m *MockReceiptsRepositoryInterface) Recent(ctx context.Context, limit int) ([]*repository.ReceiptDocument, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.ReceiptDocument), args.Error(1)
}

// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/guttosm/kitchen-receipt-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockMenuRepositoryInterface struct {
	mock.Mock
}

func (m *MockMenuRepositoryInterface) List(ctx context.Context) ([]repository.MenuItemDocument, []model.RecordDiagnostic, error) {
	args := m.Called(ctx)
	var docs []repository.MenuItemDocument
	if v := args.Get(0); v != nil {
		docs = v.([]repository.MenuItemDocument)
	}
	var diags []model.RecordDiagnostic
	if v := args.Get(1); v != nil {
		diags = v.([]model.RecordDiagnostic)
	}
	return docs, diags, args.Error(2)
}

func (m *MockMenuRepositoryInterface) Upsert(ctx context.Context, docs []repository.MenuItemDocument) (int64, error) {
	args := m.Called(ctx, docs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMenuRepositoryInterface) Delete(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockMenuRepositoryInterface) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

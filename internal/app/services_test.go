//go:build !integration

package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guttosm/kitchen-receipt-service/config"
	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/guttosm/kitchen-receipt-service/internal/mocks"
	"github.com/guttosm/kitchen-receipt-service/internal/repository"
	"github.com/guttosm/kitchen-receipt-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInitializeServices_WithoutDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecretKey = "dev-secret"
	cfg.Auth.JWTIssuer = "kitchen-receipt-service"

	components, err := InitializeServices(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(components.Stop)

	assert.Equal(t, service.SourceStatic, components.Catalog.Snapshot().Source())
	assert.Equal(t, len(service.DefaultMenu()), components.Catalog.Snapshot().Len())
	assert.Nil(t, components.Archiver)

	_, err = components.Receipts.Recent(context.Background(), 10)
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)

	require.NotNil(t, components.Tokens)
	token, err := components.Tokens.IssueToken("till-1", []string{service.RoleCounter}, time.Hour)
	require.NoError(t, err)
	claims, err := components.Tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "till-1", claims.Subject)
}

func TestInitializeServices_NoTokensWithoutSecret(t *testing.T) {
	components, err := InitializeServices(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(components.Stop)

	assert.Nil(t, components.Tokens)
}

func TestInitializeServices_InvalidTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Receipt.Timezone = "Nowhere/Special"

	components, err := InitializeServices(context.Background(), cfg, nil)

	assert.ErrorIs(t, err, config.ErrInvalidTimezone)
	assert.Nil(t, components)
}

func menuDocs(t *testing.T, items []model.CatalogItem) []repository.MenuItemDocument {
	t.Helper()
	docs := make([]repository.MenuItemDocument, 0, len(items))
	for _, item := range items {
		doc, err := repository.NewMenuItemDocument(item)
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	return docs
}

func TestSyncCatalog(t *testing.T) {
	defaults := service.DefaultMenu()

	tests := []struct {
		name       string
		cfg        config.CatalogConfig
		setupMocks func(*mocks.MockMenuRepositoryInterface, *mocks.MockChangesRepositoryInterface)
		wantItems  int
		wantSource string
	}{
		{
			name: "seeds an empty menu",
			cfg:  config.CatalogConfig{SeedDefaults: true},
			setupMocks: func(menu *mocks.MockMenuRepositoryInterface, changes *mocks.MockChangesRepositoryInterface) {
				menu.On("Count", mock.Anything).Return(int64(0), nil).Once()
				menu.On("Upsert", mock.Anything, mock.Anything).Return(int64(len(defaults)), nil).Once()
				changes.On("Touch", mock.Anything, repository.MenuChangesKey).Return("m1", nil).Once()
				changes.On("GetMarker", mock.Anything, repository.MenuChangesKey).Return("m1", nil)
				menu.On("List", mock.Anything).Return(menuDocs(t, defaults), nil, nil).Once()
			},
			wantItems:  len(defaults),
			wantSource: service.SourceServer,
		},
		{
			name: "skips seeding a populated menu",
			cfg:  config.CatalogConfig{SeedDefaults: true},
			setupMocks: func(menu *mocks.MockMenuRepositoryInterface, changes *mocks.MockChangesRepositoryInterface) {
				menu.On("Count", mock.Anything).Return(int64(1), nil).Once()
				changes.On("GetMarker", mock.Anything, repository.MenuChangesKey).Return("m7", nil).Once()
				menu.On("List", mock.Anything).Return(menuDocs(t, defaults[:1]), nil, nil).Once()
			},
			wantItems:  1,
			wantSource: service.SourceServer,
		},
		{
			name: "seeding disabled",
			cfg:  config.CatalogConfig{},
			setupMocks: func(menu *mocks.MockMenuRepositoryInterface, changes *mocks.MockChangesRepositoryInterface) {
				changes.On("GetMarker", mock.Anything, repository.MenuChangesKey).Return("", nil).Once()
				menu.On("List", mock.Anything).Return(menuDocs(t, defaults[:2]), nil, nil).Once()
			},
			wantItems:  2,
			wantSource: service.SourceServer,
		},
		{
			name: "initial load failure leaves the catalog empty",
			cfg:  config.CatalogConfig{SeedDefaults: true},
			setupMocks: func(menu *mocks.MockMenuRepositoryInterface, changes *mocks.MockChangesRepositoryInterface) {
				menu.On("Count", mock.Anything).Return(int64(0), errors.New("connection refused")).Once()
				changes.On("GetMarker", mock.Anything, repository.MenuChangesKey).Return("", errors.New("connection refused")).Once()
			},
			wantItems:  0,
			wantSource: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := new(mocks.MockMenuRepositoryInterface)
			menu.Test(t)
			changes := new(mocks.MockChangesRepositoryInterface)
			changes.Test(t)
			tt.setupMocks(menu, changes)

			catalog := service.NewCatalogService(menu, changes)
			syncCatalog(context.Background(), catalog, tt.cfg)

			snapshot := catalog.Snapshot()
			assert.Equal(t, tt.wantItems, snapshot.Len())
			if tt.wantSource != "" {
				assert.Equal(t, tt.wantSource, snapshot.Source())
			}
			menu.AssertExpectations(t)
			changes.AssertExpectations(t)
		})
	}
}

func TestSyncCatalog_StartsRefresher(t *testing.T) {
	menu := new(mocks.MockMenuRepositoryInterface)
	changes := new(mocks.MockChangesRepositoryInterface)
	var markerReads atomic.Int32
	changes.On("GetMarker", mock.Anything, repository.MenuChangesKey).
		Run(func(mock.Arguments) { markerReads.Add(1) }).
		Return("m1", nil)
	menu.On("List", mock.Anything).Return(menuDocs(t, service.DefaultMenu()), nil, nil).Once()

	catalog := service.NewCatalogService(menu, changes)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncCatalog(ctx, catalog, config.CatalogConfig{RefreshInterval: 10 * time.Millisecond})
	t.Cleanup(catalog.Stop)

	assert.Eventually(t, func() bool {
		return markerReads.Load() >= 3
	}, time.Second, 10*time.Millisecond)
}

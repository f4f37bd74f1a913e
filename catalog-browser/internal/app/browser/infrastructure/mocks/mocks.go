package mocks

import (
	"context"

	"storefront/catalog-browser/internal/app/browser/entity"

	"github.com/stretchr/testify/mock"
)

// MockCatalogFetcher мок для CatalogFetcher
type MockCatalogFetcher struct {
	mock.Mock
}

func (m *MockCatalogFetcher) FetchCategories(ctx context.Context, url string) ([]entity.Category, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCatalogFetcher) FetchProducts(ctx context.Context, url string) ([]entity.Product, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

// MockImageChecker мок для ImageChecker
type MockImageChecker struct {
	mock.Mock
}

func (m *MockImageChecker) Probe(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

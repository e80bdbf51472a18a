package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/ergolife/storefront/internal/domain/catalog"
	"github.com/ergolife/storefront/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) AddReview(ctx context.Context, product *catalog.Product, review *catalog.Review) error {
	args := m.Called(ctx, product, review)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockListCache is a mock implementation of ListCache
type MockListCache struct {
	mock.Mock
}

func (m *MockListCache) Get(ctx context.Context, key string) ([]catalog.Product, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]catalog.Product), args.Bool(1), args.Error(2)
}

func (m *MockListCache) Set(ctx context.Context, key string, products []catalog.Product) error {
	args := m.Called(ctx, key, products)
	return args.Error(0)
}

// recordingPublisher captures published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

func createTestProduct(id uint, name string, price int64) *catalog.Product {
	p, _ := catalog.NewProduct(name, catalog.CategoryChair, price)
	p.ID = id
	return p
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	products := []catalog.Product{*createTestProduct(2, "FlexiDesk V2", 12500000), *createTestProduct(1, "ErgoMaster Pro", 8500000)}

	t.Run("cache miss reads repository and fills cache", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockListCache)
		svc := NewProductService(repo, cache, nil, nil)

		filter := catalog.ProductFilter{Category: catalog.CategoryAll, Search: "Ergo"}
		key := filter.CacheKey()
		cache.On("Get", ctx, key).Return(nil, false, nil)
		repo.On("FindAll", ctx, filter.Normalized()).Return(products, nil)
		cache.On("Set", ctx, key, products).Return(nil)

		result, err := svc.List(ctx, filter)
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, uint(2), result[0].ID)
		assert.NotNil(t, result[0].Reviews)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockListCache)
		svc := NewProductService(repo, cache, nil, nil)

		cache.On("Get", ctx, mock.Anything).Return(products, true, nil)

		result, err := svc.List(ctx, catalog.ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, result, 2)
		repo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})

	t.Run("cache failure falls back to repository", func(t *testing.T) {
		repo := new(MockProductRepository)
		cache := new(MockListCache)
		svc := NewProductService(repo, cache, nil, nil)

		cache.On("Get", ctx, mock.Anything).Return(nil, false, errors.New("redis down"))
		repo.On("FindAll", ctx, mock.Anything).Return(products, nil)
		cache.On("Set", ctx, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		result, err := svc.List(ctx, catalog.ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("nil cache", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, nil, nil, nil)
		repo.On("FindAll", ctx, mock.Anything).Return(nil, errors.New("db down"))

		_, err := svc.List(ctx, catalog.ProductFilter{})
		assert.Error(t, err)
	})
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	pub := &recordingPublisher{}
	svc := NewProductService(repo, nil, pub, nil)

	repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).
		Run(func(args mock.Arguments) { args.Get(1).(*catalog.Product).ID = 9 }).
		Return(nil)

	resp, err := svc.Create(ctx, CreateProductRequest{
		Name:        "Chuột Vertical Ergo Mouse",
		Category:    catalog.CategoryAccessory,
		Price:       950000,
		Description: "Thiết kế dạng đứng 57 độ",
		Stock:       30,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(9), resp.ID)
	assert.Equal(t, 30, resp.Stock)
	assert.Equal(t, []string{catalog.EventTypeProductCreated}, pub.types())
	assert.Equal(t, uint(9), pub.events[0].AggregateID())

	_, err = svc.Create(ctx, CreateProductRequest{Name: "Bad", Category: catalog.CategoryAll, Price: 1})
	assert.Error(t, err)
	_, err = svc.Create(ctx, CreateProductRequest{Name: "Bad", Category: catalog.CategoryDesk, Price: -1})
	assert.Error(t, err)
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates fields", func(t *testing.T) {
		repo := new(MockProductRepository)
		pub := &recordingPublisher{}
		svc := NewProductService(repo, nil, pub, nil)

		repo.On("FindByID", ctx, uint(1)).Return(createTestProduct(1, "Old", 100), nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := svc.Update(ctx, 1, UpdateProductRequest{Name: "New", Category: catalog.CategoryDesk, Price: 200, Stock: 3})
		require.NoError(t, err)
		assert.Equal(t, "New", resp.Name)
		assert.Equal(t, int64(200), resp.Price)
		assert.Equal(t, []string{catalog.EventTypeProductUpdated}, pub.types())
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, nil, nil, nil)
		repo.On("FindByID", ctx, uint(5)).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, 5, UpdateProductRequest{Name: "x", Category: "y"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	pub := &recordingPublisher{}
	svc := NewProductService(repo, nil, pub, nil)

	repo.On("FindByID", ctx, uint(3)).Return(createTestProduct(3, "Arm Pro", 1850000), nil)
	repo.On("Delete", ctx, uint(3)).Return(nil)

	require.NoError(t, svc.Delete(ctx, 3))
	assert.Equal(t, []string{catalog.EventTypeProductDeleted}, pub.types())
}

func TestProductService_AddReview(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes rating", func(t *testing.T) {
		repo := new(MockProductRepository)
		pub := &recordingPublisher{}
		svc := NewProductService(repo, nil, pub, nil)

		product := createTestProduct(1, "ErgoMaster Pro", 8500000)
		existing, _ := catalog.NewReview(7, "Nguyễn Văn A", 5, "Ghế rất êm")
		product.AddReview(existing)

		repo.On("FindByID", ctx, uint(1)).Return(product, nil)
		repo.On("AddReview", ctx, product, mock.AnythingOfType("*catalog.Review")).Return(nil)

		resp, err := svc.AddReview(ctx, 1, Reviewer{UserID: 8, Name: "Trần B"}, AddReviewRequest{Rating: 4, Comment: "Tốt"})
		require.NoError(t, err)
		assert.Equal(t, 4.5, resp.Rating)
		require.Len(t, resp.Reviews, 2)
		assert.Equal(t, "Trần B", resp.Reviews[1].UserName)
		assert.Equal(t, uint(8), resp.Reviews[1].UserID)
		assert.Equal(t, []string{catalog.EventTypeProductReviewed}, pub.types())
	})

	t.Run("rejects rating out of range", func(t *testing.T) {
		repo := new(MockProductRepository)
		svc := NewProductService(repo, nil, nil, nil)
		repo.On("FindByID", ctx, uint(1)).Return(createTestProduct(1, "P", 1), nil)

		_, err := svc.AddReview(ctx, 1, Reviewer{UserID: 8, Name: "B"}, AddReviewRequest{Rating: 6})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListProductsQuery_Filter(t *testing.T) {
	maxPrice := int64(5000000)
	f := ListProductsQuery{Category: catalog.CategoryAll, MaxPrice: &maxPrice, Sort: ""}.Filter()
	assert.Equal(t, "", f.Category)
	assert.Equal(t, catalog.SortNewest, f.Sort)
	assert.Equal(t, &maxPrice, f.MaxPrice)
}

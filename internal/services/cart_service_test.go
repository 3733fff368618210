package services_test

import (
	"fmt"
	"testing"

	"dukaan/internal/models"
	"dukaan/internal/repositories"
	"dukaan/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of repositories.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartRepository) GetByUserAndProduct(userID, productID string) (*models.CartItem, error) {
	args := m.Called(userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) Create(item *models.CartItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateQuantity(userID, productID string, quantity int) error {
	args := m.Called(userID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(userID, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteByUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of
// repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(filter repositories.ProductFilter) ([]models.Product, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) DecrementStock(id string, qty int) error {
	args := m.Called(id, qty)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementStock(id string, qty int) error {
	args := m.Called(id, qty)
	return args.Error(0)
}

func TestCartService_AddItem(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	cartService := services.NewCartService(mockCartRepo, mockProductRepo)

	product := &models.Product{ID: "prod-1", Name: "Laptop", Price: 1200.00, Stock: 10}

	// New line is created when the product is not yet in the cart
	mockProductRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	mockCartRepo.On("GetByUserAndProduct", "user-1", "prod-1").Return(nil, fmt.Errorf("not found")).Once()
	mockCartRepo.On("Create", mock.AnythingOfType("*models.CartItem")).Return(nil).Once()

	err := cartService.AddItem("user-1", "prod-1", 2)
	assert.NoError(t, err)
	mockCartRepo.AssertExpectations(t)

	// Existing line is incremented instead of duplicated
	mockProductRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	mockCartRepo.On("GetByUserAndProduct", "user-1", "prod-1").
		Return(&models.CartItem{UserID: "user-1", ProductID: "prod-1", Quantity: 2}, nil).Once()
	mockCartRepo.On("UpdateQuantity", "user-1", "prod-1", 5).Return(nil).Once()

	err = cartService.AddItem("user-1", "prod-1", 3)
	assert.NoError(t, err)
	mockCartRepo.AssertExpectations(t)

	// A non-positive quantity is treated as one
	mockProductRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	mockCartRepo.On("GetByUserAndProduct", "user-1", "prod-1").Return(nil, fmt.Errorf("not found")).Once()
	mockCartRepo.On("Create", mock.MatchedBy(func(item *models.CartItem) bool {
		return item.Quantity == 1
	})).Return(nil).Once()

	err = cartService.AddItem("user-1", "prod-1", 0)
	assert.NoError(t, err)
	mockCartRepo.AssertExpectations(t)

	// Unknown product is rejected
	mockProductRepo.On("GetByID", "prod-missing").Return(nil, fmt.Errorf("product not found")).Once()
	err = cartService.AddItem("user-1", "prod-missing", 1)
	assert.Error(t, err)
	mockProductRepo.AssertExpectations(t)
}

func TestCartService_SetQuantity(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	cartService := services.NewCartService(mockCartRepo, mockProductRepo)

	// Positive quantity overwrites the line
	mockCartRepo.On("UpdateQuantity", "user-1", "prod-1", 4).Return(nil).Once()
	err := cartService.SetQuantity("user-1", "prod-1", 4)
	assert.NoError(t, err)

	// Zero removes the line
	mockCartRepo.On("Delete", "user-1", "prod-1").Return(nil).Once()
	err = cartService.SetQuantity("user-1", "prod-1", 0)
	assert.NoError(t, err)

	mockCartRepo.AssertExpectations(t)
}

func TestCartService_Total_UsesLivePrices(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	cartService := services.NewCartService(mockCartRepo, mockProductRepo)

	items := []models.CartItem{
		{UserID: "user-1", ProductID: "prod-1", Quantity: 2},
		{UserID: "user-1", ProductID: "prod-2", Quantity: 1},
	}
	mockCartRepo.On("GetByUser", "user-1").Return(items, nil).Once()
	// Prices come from the catalog at read time, not from the cart line
	mockProductRepo.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1", Price: 500.00}, nil).Once()
	mockProductRepo.On("GetByID", "prod-2").Return(&models.Product{ID: "prod-2", Price: 300.00}, nil).Once()

	total, err := cartService.Total("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 1300.00, total)
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
}

func TestCartService_GetCart_SkipsMissingProducts(t *testing.T) {
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	cartService := services.NewCartService(mockCartRepo, mockProductRepo)

	items := []models.CartItem{
		{UserID: "user-1", ProductID: "prod-1", Quantity: 1},
		{UserID: "user-1", ProductID: "prod-gone", Quantity: 3},
	}
	mockCartRepo.On("GetByUser", "user-1").Return(items, nil).Once()
	mockProductRepo.On("GetByID", "prod-1").Return(&models.Product{ID: "prod-1", Price: 25.00}, nil).Once()
	mockProductRepo.On("GetByID", "prod-gone").Return(nil, fmt.Errorf("product not found")).Once()

	lines, err := cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, "prod-1", lines[0].ProductID)
}

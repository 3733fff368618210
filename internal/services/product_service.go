package services

import (
	"fmt"

	"dukaan/internal/apperrors"
	"dukaan/internal/models"
	"dukaan/internal/repositories"
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// GetProducts retrieves products matching an optional text search and
// category filter.
func (s *ProductService) GetProducts(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.productRepo.GetAll(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct creates a new product. The referenced category must exist;
// its name is denormalized onto the product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return fmt.Errorf("category %s: %w", product.CategoryID, apperrors.ErrValidation)
	}
	product.CategoryName = category.Name
	return s.productRepo.Create(product)
}

// UpdateProduct updates an existing product, re-resolving the category name.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return fmt.Errorf("category %s: %w", product.CategoryID, apperrors.ErrValidation)
	}
	product.CategoryName = category.Name
	return s.productRepo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

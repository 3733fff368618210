package services

import (
	"dukaan/internal/models"
	"dukaan/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// GetCategories retrieves all categories.
func (s *CategoryService) GetCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	return s.repo.Create(category)
}

// DeleteCategory hard-deletes a category. Products referencing it keep
// their denormalized category name.
func (s *CategoryService) DeleteCategory(id string) error {
	return s.repo.Delete(id)
}

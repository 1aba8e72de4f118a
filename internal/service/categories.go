package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/repository"
)

// CategoryService manages product categories
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{categoryRepo: repository.NewCategoryRepository(db)}
}

// ListCategories returns all categories
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// GetCategory returns one category
func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// CreateCategory validates and stores a new category
func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.Name == "" {
		return Invalidf("name is required")
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return errors.Wrap(err, "failed to create category")
	}
	return nil
}

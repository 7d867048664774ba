package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"eventhub/internal/domain"
)

type categoryService struct {
	categoryRepo domain.CategoryRepository
	logger       *slog.Logger
}

// NewCategoryService creates a CategoryService with the given repository.
func NewCategoryService(categoryRepo domain.CategoryRepository, logger *slog.Logger) domain.CategoryService {
	return &categoryService{categoryRepo: categoryRepo, logger: logger}
}

func (s *categoryService) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}
	category := &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id string, name, description *string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty", domain.ErrInvalidInput)
		}
		category.Name = trimmed
	}
	if description != nil {
		category.Description = strings.TrimSpace(*description)
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category. Events in the category are removed with it.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "category_id", id)
	return nil
}

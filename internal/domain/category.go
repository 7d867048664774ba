package domain

import "context"

// Category groups events by theme. Deleting a category cascades to its
// events.
// swagger:model Category
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryRepository defines the interface for category storage
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
}

// CategoryService defines category management operations.
type CategoryService interface {
	Create(ctx context.Context, name, description string) (*Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, id string, name, description *string) (*Category, error)
	Delete(ctx context.Context, id string) error
}

package port

import (
	"context"

	"catalog-service/app/domain"
)

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Calories    *int
	Available   *bool // nil on create; defaults to true
}

// ProductUsecase defines product catalog business logic.
type ProductUsecase interface {
	List(ctx context.Context, page domain.Page) (domain.PagedResult[*domain.Product], error)
	Filter(ctx context.Context, filter domain.ProductFilter, page domain.Page) (domain.PagedResult[*domain.Product], error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepository defines persistence for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context, filter domain.ProductFilter, page domain.Page) ([]*domain.Product, int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

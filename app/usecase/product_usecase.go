package usecase

import (
	"context"
	"log/slog"

	"catalog-service/app/domain"
	"catalog-service/app/port"
)

// ProductUseCase implements product catalog business logic
type ProductUseCase struct {
	products port.ProductRepository
	logger   *slog.Logger
}

// NewProductUseCase creates a new ProductUseCase instance
func NewProductUseCase(products port.ProductRepository, logger *slog.Logger) *ProductUseCase {
	return &ProductUseCase{
		products: products,
		logger:   logger.With("component", "product_usecase"),
	}
}

// List returns all products, paginated
func (uc *ProductUseCase) List(ctx context.Context, page domain.Page) (domain.PagedResult[*domain.Product], error) {
	return uc.Filter(ctx, domain.ProductFilter{}, page)
}

// Filter returns products matching the filter, paginated
func (uc *ProductUseCase) Filter(ctx context.Context, filter domain.ProductFilter, page domain.Page) (domain.PagedResult[*domain.Product], error) {
	products, total, err := uc.products.Search(ctx, filter, page)
	if err != nil {
		return domain.PagedResult[*domain.Product]{}, err
	}
	return domain.NewPagedResult(products, total, page), nil
}

// GetByID returns a single product
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return uc.products.FindByID(ctx, id)
}

// Create adds a new product to the catalog
func (uc *ProductUseCase) Create(ctx context.Context, in port.ProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(in.Name, in.Description, in.Price, in.Category, in.Calories)
	if err != nil {
		return nil, err
	}
	if in.Available != nil {
		product.Available = *in.Available
	}

	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}

	uc.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// Update replaces a product's writable fields
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in port.ProductInput) (*domain.Product, error) {
	product, err := uc.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	available := product.Available
	if in.Available != nil {
		available = *in.Available
	}
	if err := product.Update(in.Name, in.Description, in.Price, in.Category, in.Calories, available); err != nil {
		return nil, err
	}

	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}

	uc.logger.Info("product updated", "product_id", product.ID)
	return product, nil
}

// Delete removes a product from the catalog
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.products.Delete(ctx, id)
}

var _ port.ProductUsecase = (*ProductUseCase)(nil)

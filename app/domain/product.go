package domain

import (
	"fmt"
	"time"
)

// Product represents a catalog item.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category,omitempty"`
	Calories    *int      `json:"calories,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProduct creates a product that is available by default.
func NewProduct(name, description string, price float64, category string, calories *int) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	now := time.Now().UTC()
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Calories:    calories,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update replaces the mutable fields of the product.
func (p *Product) Update(name, description string, price float64, category string, calories *int, available bool) error {
	if name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Category = category
	p.Calories = calories
	p.Available = available
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// ProductFilter holds optional search criteria for listing products.
// Nil price bounds mean unbounded.
type ProductFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

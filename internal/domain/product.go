package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog item with a price and a stock quantity.
// The zero UUID marks a product that has not been persisted yet; the
// store assigns an ID on first save.
type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProduct creates a new Product with the given name, price, and stock.
// The ID is left unset; the store assigns one when the product is first saved.
// Returns an error if validation fails.
func NewProduct(name string, price float64, stock int) (*Product, error) {
	product := &Product{
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks if the Product satisfies its invariants:
// a non-blank name, a strictly positive price, and a non-negative stock.
// Returns the sentinel error for the first rule that fails.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrProductNameRequired
	}

	if p.Price <= 0 {
		return ErrNonPositivePrice
	}

	if p.Stock < 0 {
		return ErrNegativeStock
	}

	return nil
}

// IsNew reports whether the product has not been persisted yet.
func (p *Product) IsNew() bool {
	return p.ID == uuid.Nil
}

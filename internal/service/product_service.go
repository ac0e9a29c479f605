package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/platform/logger"
	"github.com/openshelf/catalog-api/internal/store"
)

// ProductService provides product-related operations.
type ProductService interface {
	// GetByID retrieves a product by its ID.
	// Returns store.ErrProductNotFound if the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)

	// GetAll retrieves every product.
	GetAll(ctx context.Context) ([]*domain.Product, error)

	// GetByPriceRange retrieves products priced within [min, max].
	// Bound ordering is the caller's responsibility; an inverted range
	// yields an empty slice rather than an error.
	GetByPriceRange(ctx context.Context, min, max float64) ([]*domain.Product, error)

	// GetLowStock retrieves products with stock strictly below threshold.
	GetLowStock(ctx context.Context, threshold int) ([]*domain.Product, error)

	// Save validates and persists the product, returning the persisted
	// value (with an assigned ID for new products). Each rule violation
	// fails with a specific validation error.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)

	// Delete removes the product after confirming it exists.
	// Returns store.ErrProductNotFound if the id does not resolve.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock applies a delta (possibly negative) to the product's
	// stock. Fails with ErrStockBelowZero, stating the current stock,
	// when the result would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*domain.Product, error)

	// SetPrice replaces the product's price. Fails with
	// domain.ErrNonPositivePrice before touching storage when the new
	// price is zero or negative.
	SetPrice(ctx context.Context, id uuid.UUID, newPrice float64) (*domain.Product, error)
}

// productServiceImpl implements the ProductService interface.
type productServiceImpl struct {
	productStore store.ProductStore
	logger       *slog.Logger
}

// NewProductService creates a new ProductService.
// It returns an error if the store dependency is nil.
func NewProductService(
	productStore store.ProductStore,
	logger *slog.Logger,
) (ProductService, error) {
	if productStore == nil {
		return nil, domain.NewValidationError("productStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &productServiceImpl{
		productStore: productStore,
		logger:       logger.With(slog.String("component", "product_service")),
	}, nil
}

// GetByID implements ProductService.GetByID
func (s *productServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	product, err := s.productStore.FindByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("product not found", slog.String("product_id", id.String()))
		} else {
			log.Error("failed to retrieve product",
				slog.String("error", err.Error()),
				slog.String("product_id", id.String()))
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	return product, nil
}

// GetAll implements ProductService.GetAll
func (s *productServiceImpl) GetAll(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productStore.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByPriceRange implements ProductService.GetByPriceRange
// The bounds pass through unchecked: an inverted range comes back empty
// from the store, preserving the historical behavior.
func (s *productServiceImpl) GetByPriceRange(
	ctx context.Context,
	min, max float64,
) ([]*domain.Product, error) {
	products, err := s.productStore.FindByPriceBetween(ctx, min, max)
	if err != nil {
		s.logger.Error("failed to query products by price range",
			slog.String("error", err.Error()),
			slog.Float64("min", min),
			slog.Float64("max", max))
		return nil, fmt.Errorf("failed to query products by price range: %w", err)
	}
	return products, nil
}

// GetLowStock implements ProductService.GetLowStock
func (s *productServiceImpl) GetLowStock(
	ctx context.Context,
	threshold int,
) ([]*domain.Product, error) {
	products, err := s.productStore.FindByStockLessThan(ctx, threshold)
	if err != nil {
		s.logger.Error("failed to query low-stock products",
			slog.String("error", err.Error()),
			slog.Int("threshold", threshold))
		return nil, fmt.Errorf("failed to query low-stock products: %w", err)
	}
	return products, nil
}

// Save implements ProductService.Save
// Validation runs here even though the store validates again: the service
// is the authoritative gate and its errors carry the rule-specific message.
func (s *productServiceImpl) Save(
	ctx context.Context,
	product *domain.Product,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed",
			slog.String("error", err.Error()),
			slog.String("name", product.Name))
		return nil, err
	}

	saved, err := s.productStore.Save(ctx, product)
	if err != nil {
		log.Error("failed to save product",
			slog.String("error", err.Error()),
			slog.String("name", product.Name))
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	log.Debug("product saved",
		slog.String("product_id", saved.ID.String()),
		slog.String("name", saved.Name))
	return saved, nil
}

// Delete implements ProductService.Delete
// The existence check and the delete are two storage calls; a concurrent
// delete between them surfaces as the store's not-found error.
func (s *productServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.productStore.DeleteByID(ctx, id); err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return fmt.Errorf("failed to delete product: %w", err)
	}

	log.Info("product deleted", slog.String("product_id", id.String()))
	return nil
}

// AdjustStock implements ProductService.AdjustStock
// This is a read-modify-write with no isolation: two concurrent
// adjustments on the same product can race past the negative-stock check.
func (s *productServiceImpl) AdjustStock(
	ctx context.Context,
	id uuid.UUID,
	delta int,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStock := product.Stock + delta
	if newStock < 0 {
		log.Warn("stock adjustment rejected",
			slog.String("product_id", id.String()),
			slog.Int("current_stock", product.Stock),
			slog.Int("delta", delta))
		return nil, fmt.Errorf("%w (current stock: %d)", ErrStockBelowZero, product.Stock)
	}

	product.Stock = newStock
	saved, err := s.productStore.Save(ctx, product)
	if err != nil {
		log.Error("failed to persist stock adjustment",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to persist stock adjustment: %w", err)
	}

	log.Info("stock adjusted",
		slog.String("product_id", id.String()),
		slog.Int("delta", delta),
		slog.Int("stock", saved.Stock))
	return saved, nil
}

// SetPrice implements ProductService.SetPrice
// The price is rejected before the fetch so an invalid price never costs
// a storage round trip.
func (s *productServiceImpl) SetPrice(
	ctx context.Context,
	id uuid.UUID,
	newPrice float64,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if newPrice <= 0 {
		log.Warn("price update rejected",
			slog.String("product_id", id.String()),
			slog.Float64("new_price", newPrice))
		return nil, domain.ErrNonPositivePrice
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Price = newPrice
	saved, err := s.productStore.Save(ctx, product)
	if err != nil {
		log.Error("failed to persist price update",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return nil, fmt.Errorf("failed to persist price update: %w", err)
	}

	log.Info("price updated",
		slog.String("product_id", id.String()),
		slog.Float64("price", saved.Price))
	return saved, nil
}

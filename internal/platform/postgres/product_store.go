package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/platform/logger"
	"github.com/openshelf/catalog-api/internal/store"
)

// PostgresProductStore implements the store.ProductStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a new PostgreSQL implementation of the ProductStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

// Ensure PostgresProductStore implements store.ProductStore interface
var _ store.ProductStore = (*PostgresProductStore)(nil)

// FindByID implements store.ProductStore.FindByID
// It retrieves a product by its unique ID.
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found", slog.String("product_id", id.String()))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product by ID",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return nil, MapError(err)
	}

	return &product, nil
}

// FindAll implements store.ProductStore.FindAll
// It retrieves every product, ordered by creation time.
func (s *PostgresProductStore) FindAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products
		ORDER BY created_at
	`

	return s.queryProducts(ctx, query)
}

// FindByPriceBetween implements store.ProductStore.FindByPriceBetween
// It retrieves products whose price lies in the inclusive range [min, max].
// An inverted range matches nothing and yields an empty slice.
func (s *PostgresProductStore) FindByPriceBetween(
	ctx context.Context,
	min, max float64,
) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products
		WHERE price BETWEEN $1 AND $2
		ORDER BY price
	`

	return s.queryProducts(ctx, query, min, max)
}

// FindByStockLessThan implements store.ProductStore.FindByStockLessThan
// It retrieves products with stock strictly below the given threshold.
func (s *PostgresProductStore) FindByStockLessThan(
	ctx context.Context,
	threshold int,
) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM products
		WHERE stock < $1
		ORDER BY stock
	`

	return s.queryProducts(ctx, query, threshold)
}

// Save implements store.ProductStore.Save
// A product with an unset ID is inserted with a newly assigned ID;
// a product with a set ID is replaced in full via an upsert.
// Returns validation errors from the domain Product if data is invalid.
func (s *PostgresProductStore) Save(
	ctx context.Context,
	product *domain.Product,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during save",
			slog.String("error", err.Error()))
		return nil, err
	}

	saved := *product
	now := time.Now().UTC()
	saved.UpdatedAt = now

	if saved.IsNew() {
		saved.ID = uuid.New()
		saved.CreatedAt = now
	}

	query := `
		INSERT INTO products (id, name, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    price = EXCLUDED.price,
		    stock = EXCLUDED.stock,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		saved.ID,
		saved.Name,
		saved.Price,
		saved.Stock,
		saved.CreatedAt,
		saved.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to save product",
			slog.String("error", err.Error()),
			slog.String("product_id", saved.ID.String()))
		return nil, MapError(err)
	}

	log.Info("product saved successfully",
		slog.String("product_id", saved.ID.String()),
		slog.String("name", saved.Name))
	return &saved, nil
}

// DeleteByID implements store.ProductStore.DeleteByID
// It removes a product from the store by its ID.
// Returns store.ErrProductNotFound if the product does not exist.
func (s *PostgresProductStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM products WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("product_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("product not found for delete", slog.String("product_id", id.String()))
		return store.ErrProductNotFound
	}

	log.Info("product deleted successfully", slog.String("product_id", id.String()))
	return nil
}

// WithTx implements store.ProductStore.WithTx
// It returns a new store instance backed by the given transaction.
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{
		db:     tx,
		logger: s.logger,
	}
}

// queryProducts runs a product SELECT and scans the result set.
func (s *PostgresProductStore) queryProducts(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	products := []*domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Stock,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			log.Error("failed to scan product row", slog.String("error", err.Error()))
			return nil, err
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

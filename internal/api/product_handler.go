package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openshelf/catalog-api/internal/api/shared"
	"github.com/openshelf/catalog-api/internal/domain"
	"github.com/openshelf/catalog-api/internal/service"
)

// registerPriceMessage is the adapter-level wording for a rejected
// registration price. It deliberately differs from the service's generic
// validation message; both checks run, as a second line of defense.
const registerPriceMessage = "cannot register a product with zero or negative price"

// ProductRequest represents the request body for creating or replacing a product.
type ProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// AdjustStockRequest represents the request body for a stock adjustment.
// The delta may be negative to withdraw stock.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// ReplaceStockRequest represents the request body for a stock replacement.
type ReplaceStockRequest struct {
	Quantity int `json:"quantity"`
}

// SetPriceRequest represents the request body for a price update.
type SetPriceRequest struct {
	Price float64 `json:"price"`
}

// ProductResponse represents the response data for a product.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeleteProductResponse reports product deletion as a boolean success flag.
// Every failure kind is collapsed into deleted=false; callers cannot tell
// a missing product from a storage fault. Contractual boundary behavior.
type DeleteProductResponse struct {
	Deleted bool `json:"deleted"`
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProductHandler{
		productService: productService,
		logger:         logger.With(slog.String("component", "product_handler")),
	}
}

// RegisterProduct handles POST /api/products requests.
// It re-validates the price and name before calling the service; the
// price check carries its own distinct message.
func (h *ProductHandler) RegisterProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Price <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, registerPriceMessage)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "product name is required")
		return
	}

	product := &domain.Product{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}

	saved, err := h.productService.Save(r.Context(), product)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, productToResponse(saved))
}

// GetProduct handles GET /api/products/{id} requests.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(product))
}

// ListProducts handles GET /api/products requests.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productsToResponse(products))
}

// ListProductsByPriceRange handles GET /api/products/price-range requests.
// Bounds arrive as min and max query parameters; an inverted range is not
// an error, it simply matches nothing.
func (h *ProductHandler) ListProductsByPriceRange(w http.ResponseWriter, r *http.Request) {
	min, err := getQueryFloat(r, "min", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	max, err := getQueryFloat(r, "max", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	products, err := h.productService.GetByPriceRange(r.Context(), min, max)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productsToResponse(products))
}

// ListLowStockProducts handles GET /api/products/low-stock requests.
func (h *ProductHandler) ListLowStockProducts(w http.ResponseWriter, r *http.Request) {
	threshold, err := getQueryInt(r, "threshold", 0)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	products, err := h.productService.GetLowStock(r.Context(), threshold)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productsToResponse(products))
}

// ReplaceProduct handles PUT /api/products/{id} requests.
// The stored product is replaced in full through the service save path.
func (h *ProductHandler) ReplaceProduct(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	product := &domain.Product{
		ID:    id,
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	}

	saved, err := h.productService.Save(r.Context(), product)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(saved))
}

// AdjustStock handles POST /api/products/{id}/stock/adjustments requests.
// The delta is applied to the current stock; a result below zero is
// rejected with the current stock in the message.
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req AdjustStockRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := h.productService.AdjustStock(r.Context(), id, req.Delta)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(product))
}

// ReplaceStock handles PUT /api/products/{id}/stock requests.
// Unlike AdjustStock this REPLACES the stored quantity. A negative
// quantity is rejected up front.
func (h *ProductHandler) ReplaceStock(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ReplaceStockRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Quantity < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "stock quantity cannot be negative")
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product.Stock = req.Quantity
	saved, err := h.productService.Save(r.Context(), product)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(saved))
}

// SetPrice handles PUT /api/products/{id}/price requests.
func (h *ProductHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req SetPriceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := h.productService.SetPrice(r.Context(), id, req.Price)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToResponse(product))
}

// DeleteProduct handles DELETE /api/products/{id} requests.
// All failures are swallowed into a boolean flag: deleted=false covers a
// malformed id, a missing product, and a storage fault alike.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithJSON(w, r, http.StatusOK, DeleteProductResponse{Deleted: false})
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.logger.Debug("product delete failed",
			slog.String("product_id", id.String()),
			slog.String("error", err.Error()))
		shared.RespondWithJSON(w, r, http.StatusOK, DeleteProductResponse{Deleted: false})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteProductResponse{Deleted: true})
}

// productToResponse converts a domain.Product to a ProductResponse.
func productToResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

// productsToResponse converts a slice of products, keeping an empty JSON
// array instead of null for an empty result.
func productsToResponse(products []*domain.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, productToResponse(p))
	}
	return responses
}

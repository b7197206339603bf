package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ashimkarki/inventory-service/internal/events"
	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/models"
	"github.com/ashimkarki/inventory-service/internal/repositories"
	"github.com/ashimkarki/inventory-service/internal/validation"
)

// ErrProductNotFound is returned when an operation targets a product
// id that does not exist.
var ErrProductNotFound = errors.New("product not found")

const suggestLimit = 10

// sortFields maps the sort field names accepted by the API to table
// columns. Anything else falls back to the name column.
var sortFields = map[string]string{
	"name":      "product_name",
	"category":  "category",
	"price":     "price",
	"quantity":  "quantity",
	"createdAt": "created_at",
}

// ProductReader defines read operations for products.
type ProductReader interface {
	GetByID(ctx context.Context, productID int64) (*models.ProductDB, error)
	List(ctx context.Context, sortColumn, sortOrder string) ([]models.ProductDB, error)
	Search(ctx context.Context, filter models.ProductFilter) ([]models.ProductDB, error)
	SuggestNames(ctx context.Context, term string, limit int) ([]string, error)
	Stats(ctx context.Context) (*models.ProductStats, error)
}

// ProductWriter defines write operations for products.
type ProductWriter interface {
	Save(ctx context.Context, fields models.ProductFields) (int64, error)
	Update(ctx context.Context, productID int64, fields models.ProductFields) error
	Delete(ctx context.Context, productID int64) error
}

// StockEventPublisher publishes product mutations for downstream
// consumers. May be a disabled publisher.
type StockEventPublisher interface {
	Publish(ctx context.Context, operation string, productID int64, productName string)
}

// InventoryService is the validation-then-persistence pipeline for
// products.
type InventoryService struct {
	reader    ProductReader
	writer    ProductWriter
	publisher StockEventPublisher
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(reader ProductReader, writer ProductWriter, publisher StockEventPublisher) *InventoryService {
	return &InventoryService{reader: reader, writer: writer, publisher: publisher}
}

// Create validates the input and inserts a product. On any validation
// failure the ordered message list is returned and nothing is written.
func (svc *InventoryService) Create(ctx context.Context, in validation.ProductInput) (int64, error) {
	fields, errs := validation.Product(in)
	if len(errs) > 0 {
		return 0, errs
	}

	productID, err := svc.writer.Save(ctx, fields)
	if err != nil {
		logger.Log.Errorw("failed to save product", "err", err)
		return 0, err
	}

	svc.publish(ctx, events.OpCreated, productID, fields.Name)
	return productID, nil
}

// Update validates the input and overwrites all mutable fields of the
// product. id and creation time stay as they are.
func (svc *InventoryService) Update(ctx context.Context, productID int64, in validation.ProductInput) error {
	fields, errs := validation.Product(in)
	if len(errs) > 0 {
		return errs
	}

	if err := svc.writer.Update(ctx, productID, fields); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		logger.Log.Errorw("failed to update product", "product_id", productID, "err", err)
		return err
	}

	svc.publish(ctx, events.OpUpdated, productID, fields.Name)
	return nil
}

// Delete removes the product and returns its name for the caller's
// notice message.
func (svc *InventoryService) Delete(ctx context.Context, productID int64) (string, error) {
	product, err := svc.reader.GetByID(ctx, productID)
	if err != nil {
		logger.Log.Errorw("failed to get product", "product_id", productID, "err", err)
		return "", err
	}
	if product == nil {
		return "", ErrProductNotFound
	}

	if err := svc.writer.Delete(ctx, productID); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return "", ErrProductNotFound
		}
		logger.Log.Errorw("failed to delete product", "product_id", productID, "err", err)
		return "", err
	}

	svc.publish(ctx, events.OpDeleted, productID, product.Name)
	return product.Name, nil
}

// Get returns one product by id.
func (svc *InventoryService) Get(ctx context.Context, productID int64) (*models.ProductDB, error) {
	product, err := svc.reader.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List returns all products. sortField and sortOrder come from
// untrusted input; unknown values silently fall back to name
// ascending.
func (svc *InventoryService) List(ctx context.Context, sortField, sortOrder string) ([]models.ProductDB, error) {
	column, ok := sortFields[sortField]
	if !ok {
		column = "product_name"
	}
	return svc.reader.List(ctx, column, sortOrder)
}

// Search builds the conjunctive filter from the raw criteria. At least
// one criterion must be supplied; price bounds that are not valid
// non-negative numbers are silently ignored.
func (svc *InventoryService) Search(ctx context.Context, keyword, category, minPrice, maxPrice string) ([]models.ProductDB, error) {
	keyword = strings.TrimSpace(keyword)

	if keyword == "" && category == "" && minPrice == "" && maxPrice == "" {
		return nil, validation.Errors{"Please enter a search keyword or select filters"}
	}

	filter := models.ProductFilter{
		Keyword:  keyword,
		Category: category,
		MinPrice: parsePriceBound(minPrice),
		MaxPrice: parsePriceBound(maxPrice),
	}

	return svc.reader.Search(ctx, filter)
}

// Autocomplete returns up to ten distinct product names containing
// term. Terms shorter than two characters return an empty list without
// touching the datastore.
func (svc *InventoryService) Autocomplete(ctx context.Context, term string) ([]string, error) {
	if len(term) < 2 {
		return []string{}, nil
	}
	return svc.reader.SuggestNames(ctx, term, suggestLimit)
}

// Stats returns the dashboard aggregates.
func (svc *InventoryService) Stats(ctx context.Context) (*models.ProductStats, error) {
	return svc.reader.Stats(ctx)
}

func (svc *InventoryService) publish(ctx context.Context, operation string, productID int64, name string) {
	if svc.publisher == nil {
		return
	}
	svc.publisher.Publish(ctx, operation, productID, name)
}

func parsePriceBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"slices"
	"strings"

	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ProductRepository is the product data access used by the services
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error)
	Search(ctx context.Context, filter models.CompareFilter) ([]models.Product, error)
}

// ProductService manages the gold chains a store lists
type ProductService struct {
	products ProductRepository
	stores   *StoreService
	storage  ObjectStorage
}

// NewProductService creates a new product service. storage may be nil.
func NewProductService(products ProductRepository, stores *StoreService, storage ObjectStorage) *ProductService {
	return &ProductService{
		products: products,
		stores:   stores,
		storage:  storage,
	}
}

// ListByStore lists the products of an existing store
func (s *ProductService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Product, error) {
	if _, err := s.stores.Get(ctx, storeID); err != nil {
		return nil, err
	}
	products, err := s.products.ListByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Create adds a product to a store the actor owns
func (s *ProductService) Create(ctx context.Context, actor Actor, storeID uuid.UUID, req models.CreateProductRequest) (*models.Product, error) {
	if _, err := s.stores.owned(ctx, actor, storeID); err != nil {
		return nil, err
	}

	product, err := buildProduct(storeID, req)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Info().Str("product_id", product.ID.String()).Str("store_id", storeID.String()).Msg("Product created")
	return product, nil
}

// buildProduct checks a create request and fills in its defaults
func buildProduct(storeID uuid.UUID, req models.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if !slices.Contains(models.Karats, req.Karat) {
		return nil, invalid("karat must be one of " + strings.Join(models.Karats, ", "))
	}
	if req.Style != "" && !slices.Contains(models.ChainStyles, req.Style) {
		return nil, invalid("unknown chain style " + req.Style)
	}
	if !req.Price.IsPositive() {
		return nil, invalid("price must be greater than zero")
	}
	if req.WeightGrams.IsNegative() || req.LengthInches.IsNegative() {
		return nil, invalid("weight and length must not be negative")
	}

	style := req.Style
	if style == "" {
		style = "other"
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "USD"
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	return &models.Product{
		StoreID:      storeID,
		Name:         name,
		Description:  req.Description,
		Karat:        req.Karat,
		Style:        style,
		LengthInches: req.LengthInches,
		WeightGrams:  req.WeightGrams,
		Price:        req.Price,
		Currency:     currency,
		InStock:      inStock,
		ProductURL:   req.ProductURL,
	}, nil
}

// Update applies a partial update to a product of a store the actor owns
func (s *ProductService) Update(ctx context.Context, actor Actor, id uuid.UUID, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, invalid("price must be greater than zero")
		}
		product.Price = *req.Price
	}
	if req.WeightGrams != nil {
		if req.WeightGrams.IsNegative() {
			return nil, invalid("weight must not be negative")
		}
		product.WeightGrams = *req.WeightGrams
	}
	if req.LengthInches != nil {
		if req.LengthInches.IsNegative() {
			return nil, invalid("length must not be negative")
		}
		product.LengthInches = *req.LengthInches
	}
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Karat != nil {
		product.Karat = *req.Karat
	}
	if req.Style != nil {
		product.Style = *req.Style
	}
	if req.Currency != nil {
		product.Currency = strings.ToUpper(*req.Currency)
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.ProductURL != nil {
		product.ProductURL = *req.ProductURL
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete removes a product of a store the actor owns
func (s *ProductService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	product, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	removeImage(ctx, s.storage, product.ImageKey)
	return nil
}

// UploadImage stores a new image for the product
func (s *ProductService) UploadImage(ctx context.Context, actor Actor, id uuid.UUID, file *multipart.FileHeader) (*models.Product, error) {
	product, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	url, key, err := uploadImage(ctx, s.storage, file, "stores/"+product.StoreID.String()+"/products")
	if err != nil {
		return nil, err
	}

	previous := product.ImageKey
	product.ImageURL = url
	product.ImageKey = key
	if err := s.products.Update(ctx, product); err != nil {
		removeImage(ctx, s.storage, key)
		return nil, fmt.Errorf("failed to save product image: %w", err)
	}
	removeImage(ctx, s.storage, previous)
	return product, nil
}

func (s *ProductService) owned(ctx context.Context, actor Actor, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFound("product", err)
	}
	if _, err := s.stores.owned(ctx, actor, product.StoreID); err != nil {
		return nil, err
	}
	return product, nil
}

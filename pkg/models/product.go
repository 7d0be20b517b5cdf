package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Karat values accepted for gold chains
var Karats = []string{"10K", "14K", "18K", "22K", "24K"}

// Chain styles accepted for gold chains
var ChainStyles = []string{"rope", "box", "cable", "figaro", "franco", "curb", "cuban", "snake", "wheat", "herringbone", "other"}

// Product is a gold chain offered by a store
type Product struct {
	BaseModel
	StoreID      uuid.UUID       `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE" json:"store_id"`
	Name         string          `gorm:"not null" json:"name" validate:"required"`
	Description  string          `gorm:"type:text" json:"description"`
	Karat        string          `gorm:"not null;index" json:"karat"`
	Style        string          `gorm:"not null;index;default:'other'" json:"style"`
	LengthInches decimal.Decimal `gorm:"type:decimal(6,2)" json:"length_inches"`
	WeightGrams  decimal.Decimal `gorm:"type:decimal(8,2)" json:"weight_grams"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency     string          `gorm:"default:'USD'" json:"currency"`
	InStock      bool            `gorm:"default:true" json:"in_stock"`
	ImageURL     string          `json:"image_url"`
	ImageKey     string          `json:"-"`
	ProductURL   string          `json:"product_url"`

	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

// PricePerGram divides price by weight, zero when the weight is unknown
func (p Product) PricePerGram() decimal.Decimal {
	if !p.WeightGrams.IsPositive() {
		return decimal.Zero
	}
	return p.Price.DivRound(p.WeightGrams, 2)
}

// CreateProductRequest is the payload for a new gold chain listing
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,max=160"`
	Description  string          `json:"description"`
	Karat        string          `json:"karat" validate:"required,oneof=10K 14K 18K 22K 24K"`
	Style        string          `json:"style" validate:"omitempty,oneof=rope box cable figaro franco curb cuban snake wheat herringbone other"`
	LengthInches decimal.Decimal `json:"length_inches"`
	WeightGrams  decimal.Decimal `json:"weight_grams"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency" validate:"omitempty,len=3"`
	InStock      *bool           `json:"in_stock"`
	ProductURL   string          `json:"product_url" validate:"omitempty,url"`
}

// UpdateProductRequest is a partial product update
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,max=160"`
	Description  *string          `json:"description"`
	Karat        *string          `json:"karat" validate:"omitempty,oneof=10K 14K 18K 22K 24K"`
	Style        *string          `json:"style" validate:"omitempty,oneof=rope box cable figaro franco curb cuban snake wheat herringbone other"`
	LengthInches *decimal.Decimal `json:"length_inches"`
	WeightGrams  *decimal.Decimal `json:"weight_grams"`
	Price        *decimal.Decimal `json:"price"`
	Currency     *string          `json:"currency" validate:"omitempty,len=3"`
	InStock      *bool            `json:"in_stock"`
	ProductURL   *string          `json:"product_url" validate:"omitempty,url"`
}

// CompareFilter holds the shopper's comparison criteria
type CompareFilter struct {
	Karat     string
	Style     string
	StoreKind string
	City      string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinLength *decimal.Decimal
	MaxLength *decimal.Decimal
	InStock   bool
	OpenNow   bool
	Sort      string
	Limit     int
}

// CompareRow is one gold chain in a comparison result
type CompareRow struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Name         string          `json:"name"`
	Karat        string          `json:"karat"`
	Style        string          `json:"style"`
	LengthInches decimal.Decimal `json:"length_inches"`
	WeightGrams  decimal.Decimal `json:"weight_grams"`
	Price        decimal.Decimal `json:"price"`
	PricePerGram decimal.Decimal `json:"price_per_gram"`
	Currency     string          `json:"currency"`
	InStock      bool            `json:"in_stock"`
	ImageURL     string          `json:"image_url,omitempty"`
	ProductURL   string          `json:"product_url,omitempty"`
	StoreID      uuid.UUID       `json:"store_id"`
	StoreName    string          `json:"store_name"`
	StoreKind    string          `json:"store_kind"`
	StoreCity    string          `json:"store_city,omitempty"`
	StoreStatus  StoreStatus     `json:"store_status"`
}

// CompareResponse wraps comparison rows with summary figures
type CompareResponse struct {
	Data       []CompareRow     `json:"data"`
	Total      int              `json:"total"`
	Cheapest   *decimal.Decimal `json:"cheapest,omitempty"`
	Priciest   *decimal.Decimal `json:"priciest,omitempty"`
	AvgPerGram *decimal.Decimal `json:"avg_price_per_gram,omitempty"`
}

// ImportRowError explains why one CSV row was not imported
type ImportRowError struct {
	Row   int    `json:"row"` // 1-based line in the file, header included
	Error string `json:"error"`
}

// ImportResult summarizes a catalog CSV import
type ImportResult struct {
	Created   int              `json:"created"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors"`
	Delimiter string           `json:"delimiter"`
}

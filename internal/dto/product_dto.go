package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Description   *string         `json:"description"`
	CategoryID    *string         `json:"category_id" validate:"omitempty,uuid"`
	CostPrice     decimal.Decimal `json:"cost_price" validate:"min=0"`
	SalePrice     decimal.Decimal `json:"sale_price" validate:"min=0"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	LowStockAt    int             `json:"low_stock_at" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	LowStockAt  *int             `json:"low_stock_at"`
}

type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	CategoryID    *string         `json:"category_id,omitempty"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	StockQuantity int             `json:"stock_quantity"`
	LowStockAt    int             `json:"low_stock_at"`
	Active        bool            `json:"active"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// ProductFilter holds query params for GET /v1/products.
// Active: "false" = inactive only, "all" = everything, default = active only.
type ProductFilter struct {
	SKU        string `form:"sku"`
	Name       string `form:"name"`
	CategoryID string `form:"category_id"`
	Active     string `form:"active"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=50"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// CatalogEntry is the public storefront price/stock snapshot, served from the
// Redis read-through cache.
type CatalogEntry struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
	InStock   bool            `json:"in_stock"`
}

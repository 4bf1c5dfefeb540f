package dto

// AdjustStockRequest is the body of POST /v1/stock-movements.
// Type IN/OUT take Quantity as a positive magnitude; ADJUSTMENT takes it
// signed. Quantity must be nonzero and Reason non-empty — both are enforced
// in the service so the errors carry the spec'd messages.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	VariantID *string `json:"variant_id" validate:"omitempty,uuid"`
	Type      string `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

type StockMovementResponse struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	VariantID     *string `json:"variant_id,omitempty"`
	Type          string  `json:"type"`
	Quantity      int     `json:"quantity"`
	PreviousStock int     `json:"previous_stock"`
	NewStock      int     `json:"new_stock"`
	Reason        string  `json:"reason"`
	ReferenceID   *string `json:"reference_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// AdjustStockResponse returns the created movement plus the product's updated
// quantity so the admin UI can refresh without a second round trip.
type AdjustStockResponse struct {
	Movement      StockMovementResponse `json:"movement"`
	StockQuantity int                   `json:"stock_quantity"`
}

type MovementFilter struct {
	ProductID string `form:"product_id"`
	Type      string `form:"type"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=100"`
}

type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

type StockAlertResponse struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	LowStockAt    int    `json:"low_stock_at"`
}

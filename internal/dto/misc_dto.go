package dto

// Category

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	Active      bool    `json:"active"`
}

// Blog

type CreateBlogPostRequest struct {
	Title     string `json:"title" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
}

type UpdateBlogPostRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	Published *bool  `json:"published"`
}

type BlogPostResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Settings

type UpdateSettingsRequest struct {
	StoreName            *string `json:"store_name"`
	Currency             *string `json:"currency" validate:"omitempty,len=3"`
	AllowNegativeStock   *bool   `json:"allow_negative_stock"`
	LowStockThreshold    *int    `json:"low_stock_threshold" validate:"omitempty,min=0"`
	NotifyOnStatusChange *bool   `json:"notify_on_status_change"`
}

type SettingsResponse struct {
	StoreName            string `json:"store_name"`
	Currency             string `json:"currency"`
	AllowNegativeStock   bool   `json:"allow_negative_stock"`
	LowStockThreshold    int    `json:"low_stock_threshold"`
	NotifyOnStatusChange bool   `json:"notify_on_status_change"`
}

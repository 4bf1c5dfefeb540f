package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gemstore/internal/apierror"
	"gemstore/internal/dto"
	"gemstore/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CatalogHandler serves the public storefront price/stock lookup.
// No authentication required and no side effects.
type CatalogHandler struct {
	repo repository.ProductRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCatalogHandler(repo repository.ProductRepository, rdb *redis.Client, ttlSeconds int) *CatalogHandler {
	return &CatalogHandler{repo: repo, rdb: rdb, ttl: time.Duration(ttlSeconds) * time.Second}
}

// GetBySKU godoc
// @Summary Public price and availability lookup by SKU (no authentication)
// @Tags catalog
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} dto.CatalogEntry
// @Failure 404 {object} apierror.APIError
// @Router /v1/catalog/{sku} [get]
func (h *CatalogHandler) GetBySKU(c *gin.Context) {
	sku := c.Param("sku")
	ctx := c.Request.Context()
	cacheKey := "catalog:" + sku

	// 1. Try Redis cache
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.CatalogEntry
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	// 2. Cache miss — query DB
	product, err := h.repo.FindBySKU(ctx, sku)
	if err != nil || !product.Active {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}

	resp := dto.CatalogEntry{
		SKU:       product.SKU,
		Name:      product.Name,
		SalePrice: product.SalePrice,
		InStock:   product.StockQuantity > 0,
	}

	// 3. Populate cache — best effort, ignore errors
	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), cacheKey, b, h.ttl).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}

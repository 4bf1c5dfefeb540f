package handler

import (
	"net/http"

	"gemstore/internal/apierror"
	"gemstore/internal/dto"
	"gemstore/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Adjust handles POST /v1/stock-movements — manual IN/OUT/ADJUSTMENT entries.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApplyAdjustment(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list stock movements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.ListAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list stock alerts"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

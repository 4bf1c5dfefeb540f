package handler

import (
	"net/http"

	"gemstore/internal/apierror"
	"gemstore/internal/dto"
	"gemstore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BlogHandler struct{ svc service.BlogService }

func NewBlogHandler(svc service.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

func (h *BlogHandler) Create(c *gin.Context) {
	var req dto.CreateBlogPostRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListPublished serves the public storefront feed.
func (h *BlogHandler) ListPublished(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list posts"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

// ListAll serves the back-office view including drafts.
func (h *BlogHandler) ListAll(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list posts"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (h *BlogHandler) GetBySlug(c *gin.Context) {
	resp, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BlogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateBlogPostRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

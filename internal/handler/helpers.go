package handler

import (
	"errors"
	"net/http"
	"reflect"

	"gemstore/internal/apierror"
	"gemstore/internal/domain"
	"gemstore/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondDomainError maps the service error taxonomy to HTTP statuses:
//
//	ValidationError        → 422
//	InvalidTransitionError → 409
//	InsufficientStockError → 409
//	ConflictError          → 409
//	ErrNotFound            → 404
//	anything else          → 400
func respondDomainError(c *gin.Context, err error) {
	var (
		vErr  *domain.ValidationError
		tErr  *domain.InvalidTransitionError
		sErr  *domain.InsufficientStockError
		cErr  *domain.ConflictError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(vErr.Error()))
	case errors.As(err, &tErr):
		c.JSON(http.StatusConflict, apierror.New(tErr.Error()))
	case errors.As(err, &sErr):
		c.JSON(http.StatusConflict, apierror.New(sErr.Error()))
	case errors.As(err, &cErr):
		c.JSON(http.StatusConflict, apierror.New(cErr.Error()))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// actorID extracts the authenticated user's id from JWT claims, nil when the
// route is unauthenticated or the claim is malformed.
func actorID(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}
	return &id
}

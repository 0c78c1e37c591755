package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/middleware"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/responses"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/validators"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/products"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/logger"
)

type createProductRequest struct {
	StoreID     string   `json:"storeId"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Price       float64  `json:"price"`
	Currency    *string  `json:"currency,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Unlimited   *bool    `json:"unlimited,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
}

// ProductCreate adds a product to one of the caller's stores. A zero price is
// treated as missing, matching the storefront's required-field semantics.
func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.StoreID == "" || req.Name == "" || req.Slug == "" || req.Price == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields"))
			return
		}
		storeID, err := validators.PathUUID(req.StoreID, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), userID, products.CreateProductInput{
			StoreID:     storeID,
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
			Image:       req.Image,
			Price:       req.Price,
			Currency:    req.Currency,
			Stock:       req.Stock,
			Unlimited:   req.Unlimited,
			Category:    req.Category,
			Tags:        req.Tags,
			SKU:         req.SKU,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductList resolves the catalog to return by precedence: search query,
// then explicit store scope, then the caller's own products, then nothing.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		storeID, err := validators.QueryUUID(r, "storeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if search := validators.QueryString(r, "search"); search != "" {
			var scope *uuid.UUID
			if storeID != uuid.Nil {
				scope = &storeID
			}
			list, err := svc.Search(ctx, search, scope)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, list)
			return
		}

		if storeID != uuid.Nil {
			list, err := svc.ListForStore(ctx, storeID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, list)
			return
		}

		if raw := middleware.UserIDFromContext(ctx); raw != "" {
			userID, err := uuid.Parse(raw)
			if err == nil {
				list, err := svc.ListForOwner(ctx, userID)
				if err != nil {
					responses.WriteError(ctx, logg, w, err)
					return
				}
				responses.WriteSuccess(w, list)
				return
			}
		}

		responses.WriteSuccess(w, []products.ProductDTO{})
	}
}

// ProductGet returns a single product by id.
func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "productID"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type updateProductRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	Unlimited   *bool     `json:"unlimited,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

// ProductUpdate applies a partial update to an owned product.
func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathUUID(chi.URLParam(r, "productID"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), id, userID, products.UpdateProductInput{
			Name:        req.Name,
			Description: req.Description,
			Image:       req.Image,
			Price:       req.Price,
			Stock:       req.Stock,
			Unlimited:   req.Unlimited,
			Category:    req.Category,
			Tags:        req.Tags,
			IsActive:    req.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductDelete removes an owned product.
func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathUUID(chi.URLParam(r, "productID"), "product id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Product deleted successfully")
	}
}

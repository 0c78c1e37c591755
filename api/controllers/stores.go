package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/responses"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/validators"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/stores"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/logger"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

// storeRefParam is the shared path parameter under /api/stores. CRUD, stats
// and publish endpoints read it as a uuid; design, settings, product-display
// and public endpoints read it as a slug.
const storeRefParam = "storeRef"

type createStoreRequest struct {
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Description   *string `json:"description,omitempty"`
	WalletAddress string  `json:"walletAddress"`
}

// StoreCreate registers a new store for the caller.
func StoreCreate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createStoreRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.Name == "" || req.Slug == "" || req.WalletAddress == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields"))
			return
		}

		store, err := svc.Create(r.Context(), userID, stores.CreateStoreInput{
			Name:          req.Name,
			Slug:          req.Slug,
			Description:   req.Description,
			WalletAddress: req.WalletAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

// StoreList returns the caller's stores.
func StoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForOwner(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// StoreGet returns a store by id, with catalog and orders joined in.
func StoreGet(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, storeRefParam), "store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

// StoreGetBySlug returns a store by slug with its active catalog.
func StoreGetBySlug(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

type updateStoreRequest struct {
	Name           *string   `json:"name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Logo           *string   `json:"logo,omitempty"`
	Banner         *string   `json:"banner,omitempty"`
	Theme          *string   `json:"theme,omitempty"`
	CustomDomain   *string   `json:"customDomain,omitempty"`
	IsPublished    *bool     `json:"isPublished,omitempty"`
	AcceptedTokens *[]string `json:"acceptedTokens,omitempty"`
}

// StoreUpdate applies a partial update to an owned store.
func StoreUpdate(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathUUID(chi.URLParam(r, storeRefParam), "store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateStoreRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Update(r.Context(), id, userID, stores.UpdateStoreInput{
			Name:           req.Name,
			Description:    req.Description,
			Logo:           req.Logo,
			Banner:         req.Banner,
			Theme:          req.Theme,
			CustomDomain:   req.CustomDomain,
			IsPublished:    req.IsPublished,
			AcceptedTokens: req.AcceptedTokens,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

// StoreDelete removes an owned store and everything under it.
func StoreDelete(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathUUID(chi.URLParam(r, storeRefParam), "store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Store deleted successfully")
	}
}

// StoreStats returns the store's aggregate counters.
func StoreStats(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, storeRefParam), "store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// StorePublish marks an owned store as live.
func StorePublish(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.PathUUID(chi.URLParam(r, storeRefParam), "store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Publish(r.Context(), id, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

// StorePublic composes the public storefront payload for a slug.
func StorePublic(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := svc.PublicStorefront(r.Context(), chi.URLParam(r, storeRefParam))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

// StoreDesignGet returns the saved design document, or an empty one.
func StoreDesignGet(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := resolveStoreBySlug(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		design, err := svc.GetDesign(r.Context(), store.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, design)
	}
}

// StoreDesignSave overwrites the design document for an owned store.
func StoreDesignSave(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := resolveStoreBySlug(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := storeContext(r, logg, store)

		doc, err := decodeDocument(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		saved, err := svc.SaveDesign(ctx, store.ID, userID, doc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"message": "Design saved successfully",
			"design":  saved,
		})
	}
}

// StoreSettingsGet returns the saved settings document, falling back to a
// default derived from the store row.
func StoreSettingsGet(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, storeRefParam)
		store, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settings, err := svc.GetSettings(r.Context(), store.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(settings) == 0 {
			settings = stores.DefaultSettings(store, slug)
		}
		responses.WriteSuccess(w, settings)
	}
}

// StoreSettingsSave overwrites the settings document for an owned store.
func StoreSettingsSave(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := resolveStoreBySlug(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := storeContext(r, logg, store)

		doc, err := decodeDocument(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		saved, err := svc.SaveSettings(ctx, store.ID, userID, doc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"message":  "Settings saved successfully",
			"settings": saved,
		})
	}
}

// StoreProductDisplayGet returns the catalog rendering configuration, falling
// back to the static default.
func StoreProductDisplayGet(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := resolveStoreBySlug(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		display, err := svc.GetProductDisplay(r.Context(), store.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(display) == 0 {
			display = stores.DefaultProductDisplay()
		}
		responses.WriteSuccess(w, display)
	}
}

// StoreProductDisplaySave overwrites the catalog rendering configuration.
func StoreProductDisplaySave(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store, err := resolveStoreBySlug(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := storeContext(r, logg, store)

		doc, err := decodeDocument(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		saved, err := svc.SaveProductDisplay(ctx, store.ID, userID, doc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"message":        "Product display settings saved successfully",
			"productDisplay": saved,
		})
	}
}

func resolveStoreBySlug(r *http.Request, svc stores.Service) (*stores.StoreDTO, error) {
	slug := strings.TrimSpace(chi.URLParam(r, storeRefParam))
	return svc.GetBySlug(r.Context(), slug)
}

// storeContext seeds the request context with the resolved store id so error
// logs on the mutation paths carry it.
func storeContext(r *http.Request, logg *logger.Logger, store *stores.StoreDTO) context.Context {
	ctx := r.Context()
	if logg != nil && store != nil {
		ctx = logg.WithStoreID(ctx, store.ID.String())
	}
	return ctx
}

// decodeDocument reads the body as a free-form JSON object. Sub-documents are
// schemaless; the client owns their shape.
func decodeDocument(r *http.Request) (types.JSONDoc, error) {
	var doc types.JSONDoc
	if err := validators.DecodeJSONBody(r, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

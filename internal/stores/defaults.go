package stores

import (
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/types"
)

// DefaultSettings builds the settings document returned before the owner has
// saved one. It mirrors the store row so the dashboard renders something
// sensible out of the box.
func DefaultSettings(store *StoreDTO, subdomain string) types.JSONDoc {
	customDomain := ""
	if store.CustomDomain != nil {
		customDomain = *store.CustomDomain
	}
	var description any
	if store.Description != nil {
		description = *store.Description
	}
	tokens := append([]string(nil), store.AcceptedTokens...)
	if tokens == nil {
		tokens = []string{}
	}
	return types.JSONDoc{
		"storeName":            store.Name,
		"storeDescription":     description,
		"storeEmail":           "",
		"storePhone":           "",
		"currency":             "USDC",
		"paymentMethods":       tokens,
		"shippingEnabled":      false,
		"shippingCost":         0,
		"taxRate":              0,
		"notificationsEnabled": true,
		"emailNotifications":   true,
		"orderNotifications":   true,
		"customDomain":         customDomain,
		"subdomain":            subdomain,
		"isPublished":          store.IsPublished,
	}
}

// DefaultProductDisplay is the catalog rendering configuration used before
// the owner has saved one.
func DefaultProductDisplay() types.JSONDoc {
	return types.JSONDoc{
		"layout":                 "grid",
		"cardsPerRow":            3,
		"showProductImage":       true,
		"showProductPrice":       true,
		"showProductDescription": true,
		"showProductRating":      true,
		"showProductStock":       true,
		"cardStyle":              "standard",
		"imageHeight":            200,
		"enableFilters":          true,
		"enableSearch":           true,
		"enableSorting":          true,
		"sortOptions":            []string{"newest", "price-low", "price-high", "popular"},
		"filterOptions":          []string{"category", "price", "rating"},
	}
}

package analytics

import "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/orders"

// DashboardDTO is the merchant dashboard payload. Field names are part of the
// wire contract.
type DashboardDTO struct {
	TotalSales     float64           `json:"totalSales"`
	TotalOrders    int               `json:"totalOrders"`
	TotalCustomers int               `json:"totalCustomers"`
	ActiveStores   int               `json:"activeStores"`
	RecentOrders   []orders.OrderDTO `json:"recentOrders"`
	TopProducts    []TopProductDTO   `json:"topProducts"`
	SalesByDay     []DailySalesDTO   `json:"salesByDay"`
}

// TopProductDTO is a placeholder slot in the dashboard. Nothing populates it
// yet, but the key must be present in the response.
type TopProductDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Sales     float64 `json:"sales"`
}

// DailySalesDTO is one bucket of the weekly sales series.
type DailySalesDTO struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

package entities

import "time"

// SaleItem - позиция оформленной продажи.
type SaleItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
}

// Sale представляет продажу.
type Sale struct {
	ID    int        `json:"id"`
	Date  time.Time  `json:"date"`
	Total float64    `json:"total"`
	Items []SaleItem `json:"items"`
}

// SaleRequest - тело запроса на оформление продажи.
type SaleRequest struct {
	Date  time.Time  `json:"date"`
	Items []SaleItem `json:"items"`
}

// TopProduct - строка рейтинга продаваемых товаров.
type TopProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// SalesSummary - агрегированные показатели продаж для панели администратора.
type SalesSummary struct {
	TotalSales    int          `json:"totalSales"`
	TotalRevenue  float64      `json:"totalRevenue"`
	DayRevenue    float64      `json:"dayRevenue"`
	AverageTicket float64      `json:"averageTicket"`
	TopProducts   []TopProduct `json:"topProducts"`
}

// StoreConfiguration - настройки магазина.
type StoreConfiguration struct {
	StoreName string `json:"storeName"`
}

// StoreConfigurationUpdate - частичное обновление настроек магазина.
type StoreConfigurationUpdate struct {
	StoreName *string `json:"storeName,omitempty"`
}

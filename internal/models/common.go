package models

// Error carries a machine-readable code alongside the human message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

// SuccessResponse is the generic JSON success envelope.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// ProductResponse wraps a single product.
type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data"`
	Message *string  `json:"message,omitempty"`
}

// ProductListResponse wraps a product listing.
type ProductListResponse struct {
	Success bool      `json:"success"`
	Data    []Product `json:"data"`
}

// TransactionResponse wraps a single transaction.
type TransactionResponse struct {
	Success bool         `json:"success"`
	Data    *Transaction `json:"data"`
	Message *string      `json:"message,omitempty"`
}

// TransactionListResponse wraps a transaction listing.
type TransactionListResponse struct {
	Success bool          `json:"success"`
	Data    []Transaction `json:"data"`
}

// ResellerListResponse wraps the reseller directory listing.
type ResellerListResponse struct {
	Success bool       `json:"success"`
	Data    []Reseller `json:"data"`
}

// DashboardStats aggregates catalog and reseller counts for the admin
// dashboard. Counts are computed with status-scoped queries server-side.
type DashboardStats struct {
	TotalProducts    int64 `json:"totalProducts"`
	ActiveProducts   int64 `json:"activeProducts"`
	InactiveProducts int64 `json:"inactiveProducts"`
	TotalResellers   int64 `json:"totalResellers"`
}

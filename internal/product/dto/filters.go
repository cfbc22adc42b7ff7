package dto

type ProductFilters struct {
	MerchantID    string
	CategoryID    string
	IsActive      *bool
	IsComposition *bool
	SearchQuery   string // name, sku or barcode
	SortBy        string // name, price, created_at
	SortOrder     string // asc, desc
	Page          int
	PageSize      int
}

// CandidateFilters narrows the products that may be added as components.
type CandidateFilters struct {
	MerchantID string
	Query      string
	ExcludeID  string
	Limit      int
}

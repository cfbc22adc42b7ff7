package dto

type MovementFilters struct {
	MerchantID   string
	ProductID    string
	MovementType string
	Page         int
	PageSize     int
}

package dto

import (
	"github.com/fekuna/omnipos-backoffice-service/internal/model"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
)

type SaleFilters struct {
	MerchantID string
	Status     orderstatus.Status
	SaleType   model.SaleType
	Page       int
	PageSize   int
}

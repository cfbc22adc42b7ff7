// Package apperr turns domain errors into gRPC statuses whose message is a
// localized notification for the operator.
package apperr

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/fekuna/omnipos-backoffice-service/internal/category"
	"github.com/fekuna/omnipos-backoffice-service/internal/composition"
	"github.com/fekuna/omnipos-backoffice-service/internal/inventory"
	"github.com/fekuna/omnipos-backoffice-service/internal/orderstatus"
	"github.com/fekuna/omnipos-backoffice-service/internal/preparation"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/pkg/cache"
	"github.com/fekuna/omnipos-backoffice-service/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice-service/pkg/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var sentinels = []struct {
	err       error
	code      codes.Code
	messageID string
}{
	{composition.ErrAlreadyInComposition, codes.AlreadyExists, "already_in_composition"},
	{composition.ErrNestedComposition, codes.FailedPrecondition, "nested_composition"},
	{composition.ErrSelfReference, codes.FailedPrecondition, "self_reference"},
	{composition.ErrInvalidQuantity, codes.InvalidArgument, "invalid_quantity"},
	{composition.ErrNotInComposition, codes.NotFound, "not_in_composition"},

	{category.ErrNotFound, codes.NotFound, "category_not_found"},
	{category.ErrInvalidParent, codes.InvalidArgument, "invalid_parent"},

	{product.ErrNotFound, codes.NotFound, "product_not_found"},
	{product.ErrSKUExists, codes.AlreadyExists, "sku_exists"},
	{product.ErrBarcodeExists, codes.AlreadyExists, "barcode_exists"},
	{product.ErrNotComposition, codes.FailedPrecondition, "not_composition"},

	{sale.ErrNotFound, codes.NotFound, "sale_not_found"},
	{sale.ErrProductNotFound, codes.NotFound, "product_not_found"},
	{sale.ErrEmptySale, codes.InvalidArgument, "empty_sale"},
	{sale.ErrDeliveryRequired, codes.InvalidArgument, "delivery_required"},

	{preparation.ErrIncomplete, codes.FailedPrecondition, "preparation_incomplete"},
	{preparation.ErrLineNotFound, codes.NotFound, "pick_line_not_found"},
	{preparation.ErrNotAwaiting, codes.FailedPrecondition, "not_awaiting_preparation"},

	{inventory.ErrNotFound, codes.NotFound, "product_not_found"},
	{inventory.ErrNotManaged, codes.FailedPrecondition, "stock_not_managed"},
	{inventory.ErrInsufficientStock, codes.FailedPrecondition, "insufficient_stock"},

	{orderstatus.ErrUnknownStatus, codes.InvalidArgument, "invalid_status"},
	{validation.ErrInvalidPhone, codes.InvalidArgument, "invalid_phone"},
	{cache.ErrLockNotObtained, codes.Aborted, "busy"},
}

// Status maps err to a gRPC status error. Errors that already carry a
// status pass through; unknown errors become Internal without leaking
// their text.
func Status(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	lang := auth.GetLanguage(ctx)

	var verr *validation.Error
	if errors.As(err, &verr) {
		return status.Error(codes.InvalidArgument, t(lang, "validation_failed", map[string]interface{}{"Detail": verr.Detail()}))
	}
	var inactive *sale.InactiveProductError
	if errors.As(err, &inactive) {
		return status.Error(codes.InvalidArgument, t(lang, "product_inactive", map[string]interface{}{"Name": inactive.Name}))
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return status.Error(s.code, t(lang, s.messageID, nil))
		}
	}
	return status.Error(codes.Internal, t(lang, "internal_error", nil))
}

// MissingMerchant is returned when the caller's session names no merchant.
func MissingMerchant(ctx context.Context) error {
	return status.Error(codes.Unauthenticated, t(auth.GetLanguage(ctx), "missing_merchant", nil))
}

func t(lang, id string, data map[string]interface{}) string {
	if lang == "" {
		return i18n.T(id, data)
	}
	return i18n.T(id, data, lang)
}

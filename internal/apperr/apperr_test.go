package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fekuna/omnipos-backoffice-service/internal/composition"
	"github.com/fekuna/omnipos-backoffice-service/internal/preparation"
	"github.com/fekuna/omnipos-backoffice-service/internal/product"
	"github.com/fekuna/omnipos-backoffice-service/internal/sale"
	"github.com/fekuna/omnipos-backoffice-service/pkg/cache"
	"github.com/fekuna/omnipos-backoffice-service/pkg/validation"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func english() context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("accept-language", "en"))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{"already in composition", composition.ErrAlreadyInComposition, codes.AlreadyExists, "This product is already part of the composition."},
		{"nested", composition.ErrNestedComposition, codes.FailedPrecondition, "A composition cannot be a component of another composition."},
		{"wrapped not found", fmt.Errorf("load: %w", product.ErrNotFound), codes.NotFound, "Product not found."},
		{"duplicate", product.ErrSKUExists, codes.AlreadyExists, "A product with this SKU already exists."},
		{"incomplete", preparation.ErrIncomplete, codes.FailedPrecondition, "Pick every item before completing the preparation."},
		{"busy", cache.ErrLockNotObtained, codes.Aborted, "Operation in progress, please try again."},
		{"inactive", &sale.InactiveProductError{Name: "Fries"}, codes.InvalidArgument, "Product Fries is inactive."},
		{"validation", &validation.Error{Fields: map[string]string{"Name": "required"}}, codes.InvalidArgument, "Invalid data: Name=required"},
		{"unknown", errors.New("pq: connection refused"), codes.Internal, "The operation could not be completed. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := status.FromError(Status(english(), tt.err))
			assert.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, tt.msg, st.Message())
		})
	}
}

func TestStatusPassThroughAndDefaultLanguage(t *testing.T) {
	assert.Nil(t, Status(context.Background(), nil))

	original := status.Error(codes.PermissionDenied, "nope")
	assert.Equal(t, original, Status(context.Background(), original))

	st, _ := status.FromError(Status(context.Background(), sale.ErrNotFound))
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "Venda não encontrada.", st.Message())
}

func TestMissingMerchant(t *testing.T) {
	assert.Equal(t, codes.Unauthenticated, status.Code(MissingMerchant(english())))
}

package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var secret = []byte("test-secret")

func sign(t *testing.T, claims Claims) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return tok
}

func run(t *testing.T, md metadata.MD) (context.Context, error) {
	var seen context.Context
	ctx := metadata.NewIncomingContext(context.Background(), md)
	_, err := ContextInterceptor(secret)(ctx, nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = ctx
		return nil, nil
	})
	return seen, err
}

func TestContextInterceptorWithToken(t *testing.T) {
	tok := sign(t, Claims{
		MerchantID: "m-1",
		Role:       "cashier",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	ctx, err := run(t, metadata.Pairs("authorization", "Bearer "+tok, "accept-language", "en"))
	require.NoError(t, err)
	assert.Equal(t, "m-1", ctx.Value(MerchantIDKey))
	assert.Equal(t, "u-1", ctx.Value(UserIDKey))
	assert.Equal(t, "cashier", ctx.Value(RoleKey))
	assert.Equal(t, "en", ctx.Value(LanguageKey))
}

func TestContextInterceptorRejectsBadToken(t *testing.T) {
	expired := sign(t, Claims{
		MerchantID: "m-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	for _, tok := range []string{"garbage", expired} {
		_, err := run(t, metadata.Pairs("authorization", "Bearer "+tok))
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	}
}

func TestContextInterceptorMetadataFallback(t *testing.T) {
	ctx, err := run(t, metadata.Pairs("x-merchant-id", "m-2", "x-user-id", "u-2"))
	require.NoError(t, err)
	assert.Equal(t, "m-2", ctx.Value(MerchantIDKey))
	assert.Equal(t, "u-2", ctx.Value(UserIDKey))
	assert.Nil(t, ctx.Value(LanguageKey))
}

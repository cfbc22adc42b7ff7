package middleware

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const (
	MerchantIDKey contextKey = "merchant_id"
	UserIDKey     contextKey = "user_id"
	RoleKey       contextKey = "role"
	LanguageKey   contextKey = "language"
)

// Claims are issued by the identity service at sign-in.
type Claims struct {
	MerchantID string `json:"merchant_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// ContextInterceptor verifies the bearer token when one is sent and copies
// merchant, user and language into the request context. Requests without a
// token fall back to the x-merchant-id / x-user-id metadata set by the
// gateway.
func ContextInterceptor(secret []byte) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx, err := withIdentity(ctx, secret)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamContextInterceptor is ContextInterceptor for streaming RPCs.
func StreamContextInterceptor(secret []byte) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx, err := withIdentity(ss.Context(), secret)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})
	}
}

type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context { return w.ctx }

func withIdentity(ctx context.Context, secret []byte) (context.Context, error) {
	md, _ := metadata.FromIncomingContext(ctx)

	if lang := first(md, "accept-language"); lang != "" {
		ctx = context.WithValue(ctx, LanguageKey, lang)
	}

	if token := bearer(first(md, "authorization")); token != "" {
		claims, err := ParseToken(token, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		ctx = context.WithValue(ctx, MerchantIDKey, claims.MerchantID)
		ctx = context.WithValue(ctx, UserIDKey, claims.Subject)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		return ctx, nil
	}

	if v := first(md, "x-merchant-id"); v != "" {
		ctx = context.WithValue(ctx, MerchantIDKey, v)
	}
	if v := first(md, "x-user-id"); v != "" {
		ctx = context.WithValue(ctx, UserIDKey, v)
	}
	return ctx, nil
}

// ParseToken validates an HS256 token and returns its claims.
func ParseToken(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func bearer(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func first(md metadata.MD, key string) string {
	if vals := md.Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

package auth

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/pkg/middleware"
	"google.golang.org/grpc/metadata"
)

type UserContext struct {
	MerchantID string
	UserID     string
	Role       string
	Language   string
}

// GetMerchantID returns the merchant set by the context interceptor, falling
// back to the raw metadata for calls that bypassed it.
func GetMerchantID(ctx context.Context) string {
	return lookup(ctx, middleware.MerchantIDKey, "x-merchant-id")
}

func GetUserID(ctx context.Context) string {
	return lookup(ctx, middleware.UserIDKey, "x-user-id")
}

// GetLanguage is the caller's Accept-Language value, empty when not sent.
func GetLanguage(ctx context.Context) string {
	return lookup(ctx, middleware.LanguageKey, "accept-language")
}

func FromContext(ctx context.Context) UserContext {
	role, _ := ctx.Value(middleware.RoleKey).(string)
	return UserContext{
		MerchantID: GetMerchantID(ctx),
		UserID:     GetUserID(ctx),
		Role:       role,
		Language:   GetLanguage(ctx),
	}
}

func lookup(ctx context.Context, key interface{}, header string) string {
	if val, ok := ctx.Value(key).(string); ok && val != "" {
		return val
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if val := md.Get(header); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

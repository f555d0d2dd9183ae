package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/pkg/identity"
	"cluster-dashboard-backend/pkg/utils"
)

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) *model.Identity
}

// Identity attaches the caller's identity to the request context when the
// Authorization header carries a valid bearer token. It never rejects a
// request; authorization is decided per operation.
func Identity(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.BearerToken(c.GetHeader("Authorization"))
		if token != "" {
			ctx := c.Request.Context()
			if id := resolver.ResolveIdentity(ctx, token); id != nil {
				c.Request = c.Request.WithContext(identity.WithIdentity(ctx, id))
			}
		}
		c.Next()
	}
}

// Client records the caller's address in the request context so limits
// apply per client whichever transport runs the operation.
func Client() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(identity.WithClient(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}

package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// AccessEmailHeader is set by the access gateway in front of this
	// service after it has authenticated the request.
	AccessEmailHeader = "CF-Access-Authenticated-User-Email"
	// LocalEmailHeader lets local development pick an identity when no
	// gateway is present.
	LocalEmailHeader = "X-Admin-Email"

	ContextActor = "actor"

	localFallbackActor = "local-admin@localhost"
)

// AccessRequired trusts the gateway-injected email header for identity.
// When allowLocal is set and the request arrives from loopback, a
// development identity is substituted instead of rejecting.
func AccessRequired(allowLocal bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader(AccessEmailHeader))
		if email == "" && allowLocal && isLoopback(c.ClientIP()) {
			email = strings.TrimSpace(c.GetHeader(LocalEmailHeader))
			if email == "" {
				email = localFallbackActor
			}
		}

		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "authentication required",
			})
			c.Abort()
			return
		}

		c.Set(ContextActor, email)
		c.Next()
	}
}

// GetActor returns the authenticated admin email from context.
func GetActor(c *gin.Context) string {
	if actor, exists := c.Get(ContextActor); exists {
		return actor.(string)
	}
	return ""
}

func isLoopback(ip string) bool {
	parsed := net.ParseIP(ip)
	return parsed != nil && parsed.IsLoopback()
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
)

func abortWith(c *gin.Context, err *appErrors.AppError) {
	payload := gin.H{
		"error":   err.Code,
		"message": err.Message,
	}
	if len(err.Details) > 0 {
		payload["details"] = err.Details
	}
	c.JSON(err.StatusCode, payload)
	c.Abort()
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// AuthMiddleware guards the staff surface. Client tokens are rejected
// here even when otherwise valid.
func AuthMiddleware(jwtService *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWith(c, appErrors.ErrUnauthorized)
			return
		}

		claims, err := jwtService.Parse(token)
		if err != nil {
			abortWith(c, appErrors.ErrUnauthorized)
			return
		}

		if claims.Rol == string(user.RoleClient) {
			abortWith(c, appErrors.ErrForbidden)
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("rol", claims.Rol)
		c.Set("nombre", claims.NombreCompleto)
		c.Next()
	}
}

// ClientAuthMiddleware guards the self-service surface; only tokens
// with the CLIENTE role and a client id pass.
func ClientAuthMiddleware(jwtService *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWith(c, appErrors.ErrUnauthorized)
			return
		}

		claims, err := jwtService.Parse(token)
		if err != nil {
			abortWith(c, appErrors.ErrUnauthorized)
			return
		}

		if claims.Rol != string(user.RoleClient) || claims.ClienteId == "" {
			abortWith(c, appErrors.ErrForbidden)
			return
		}

		c.Set("cliente_id", claims.ClienteId)
		c.Set("nombre", claims.NombreCompleto)
		c.Next()
	}
}

// RequireRoles restricts a staff route to the given roles. It assumes
// AuthMiddleware already ran.
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		rolValue, exists := c.Get("rol")
		if !exists {
			abortWith(c, appErrors.ErrForbidden)
			return
		}

		rol, ok := rolValue.(string)
		if !ok {
			abortWith(c, appErrors.ErrForbidden)
			return
		}

		for _, r := range roles {
			if rol == string(r) {
				c.Next()
				return
			}
		}

		abortWith(c, appErrors.ErrForbidden.WithDetails(map[string]interface{}{
			"requiredRoles": roles,
		}))
	}
}

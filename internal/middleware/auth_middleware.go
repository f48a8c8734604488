package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"strings"

	autherrors "go-presensi/internal/auth/errors"
	"go-presensi/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// identityClaims are required in every access token; a token missing one is
// rejected even if the signature checks out.
var identityClaims = []string{"user_id", "company_id", "employee_id"}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Token not found")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "INVALID_TOKEN", "Invalid token claims")
			return
		}

		for _, name := range identityClaims {
			value, ok := claims[name].(string)
			if !ok || value == "" {
				abortUnauthorized(c, "INVALID_TOKEN", "Missing "+name+" claim")
				return
			}
			c.Set(name, value)
		}

		role, _ := claims["role"].(string)
		c.Set("role", role)

		c.Next()
	}
}

// extractToken prefers the Authorization header; web clients fall back to the
// access_token cookie set at login.
func extractToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func abortUnauthorized(c *gin.Context, code, message string) {
	response.Error(c, http.StatusUnauthorized, code, message, nil)
	c.Abort()
}

// RoleMiddleware is a coarse role gate for routes where a casbin policy is
// overkill, e.g. admin-only maintenance endpoints.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, _ := c.Get("role")
		role, ok := userRole.(string)
		if !ok || !slices.Contains(allowedRoles, role) {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

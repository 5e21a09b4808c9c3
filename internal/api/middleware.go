package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/milkantri/inventory-service/internal/models"
)

// AuthMiddleware enforces a valid bearer token and exposes its claims
// (user_id, email, role) on the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "Authorization header required",
				Message: "Please provide a valid authorization token",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "Invalid authorization format",
				Message: "Authorization header must be in format 'Bearer <token>'",
			})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "Invalid token",
				Message: "The provided token is invalid or expired",
			})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if v, ok := claims["user_id"].(string); ok {
				c.Set("user_id", v)
			}
			if v, ok := claims["email"].(string); ok {
				c.Set("email", v)
			}
			if v, ok := claims["role"].(string); ok {
				c.Set("role", v)
			}
		}
		c.Next()
	}
}

// AdminMiddleware requires the admin role for the routes it guards
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentRole(c) != models.RoleAdmin {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "Forbidden",
				Message: "Admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// DistributorMiddleware requires the distributor role
func DistributorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentRole(c) != models.RoleDistributor {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   "Forbidden",
				Message: "Distributor access only",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUserID returns the authenticated caller's id
func currentUserID(c *gin.Context) string {
	id, _ := c.Get("user_id")
	s, _ := id.(string)
	return s
}

// currentRole returns the authenticated caller's role
func currentRole(c *gin.Context) models.Role {
	role, _ := c.Get("role")
	s, _ := role.(string)
	return models.Role(s)
}

// canModify is the capability check for owned resources: admins may touch
// anything, everyone else only what they own.
func canModify(c *gin.Context, ownerID string) bool {
	return currentRole(c) == models.RoleAdmin || currentUserID(c) == ownerID
}

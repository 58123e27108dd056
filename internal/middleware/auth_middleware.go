package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/acmcyber/rewards-backend/internal/config"
	"github.com/acmcyber/rewards-backend/internal/repositories"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// TeamIDKey is the gin context key holding the resolved team ObjectID.
const TeamIDKey = "TeamID"

// JWTAuthMiddleware guards admin routes with a bearer token.
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtSecret := []byte(cfg.JWT.Secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set("claims", claims)
		}
		c.Next()
	}
}

// SessionAuthMiddleware resolves the platform session cookie to a team and
// stores the team ID in the context. Session creation and rotation belong to
// the main platform; this service only performs the lookup.
func SessionAuthMiddleware(cfg *config.Config, sessionRepo repositories.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cfg.Server.SessionCookie)
		if err != nil || cookie == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		session, err := sessionRepo.FindByCookie(c.Request.Context(), cookie)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			}
			c.Abort()
			return
		}

		c.Set(TeamIDKey, session.TeamID)
		c.Next()
	}
}

package auth

import (
	"boost-server/internal/observability"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Authenticator validates session tokens issued by the identity service and
// exposes the gin middleware that guards owner-facing routes. The gateway
// webhook does not pass through here; it authenticates with the gateway's
// signature instead.
type Authenticator struct {
	jwtSecret string
	logger    *observability.Logger
}

func New(jwtSecret string, logger *observability.Logger) Authenticator {
	return Authenticator{
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// ValidateToken parses and verifies an HS256 session token.
func (a *Authenticator) ValidateToken(tokenString string) (jwt.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(a.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return token.Claims, nil
}

// HandleJWTMiddleware authenticates the caller and stores the owning account
// id in the gin context under "Account-ID".
func (a *Authenticator) HandleJWTMiddleware(c *gin.Context) {
	tokenHeader := c.GetHeader("Authorization")

	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is missing or invalid"})
		c.Abort() // Stop further processing
		return
	}

	tokenString := strings.TrimPrefix(tokenHeader, "Bearer ")

	claims, err := a.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	sub, err := claims.GetSubject()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	if _, err := uuid.Parse(sub); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid subject claim"})
		c.Abort()
		return
	}
	c.Set("Account-ID", sub)
	c.Next()
}

// AccountID extracts the authenticated account id a middleware stored on the
// gin context.
func AccountID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get("Account-ID")
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

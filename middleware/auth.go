package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	identityKey   = "identity"
	sessionCookie = "__session"
)

// Claims are the fields the auth provider puts in its session token. The
// user id travels in the standard "sub" claim.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

var errNoToken = errors.New("no session token")

// ParseSessionToken validates a provider session token and returns the identity it carries.
func ParseSessionToken(tokenString string) (models.Identity, error) {
	if config.Cfg.JWTSecret == "" {
		return models.Anonymous, errors.New("JWT_SECRET is not configured")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(30 * time.Second),
	}
	if config.Cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Cfg.JWTIssuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Cfg.JWTSecret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return models.Anonymous, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || strings.TrimSpace(claims.Subject) == "" {
		return models.Anonymous, errors.New("invalid token claims")
	}

	return models.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

func sessionToken(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return "", errors.New("invalid authorization header format")
		}
		return tokenString, nil
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errNoToken
}

// OptionalAuth resolves the identity when a valid session is present and
// leaves the request anonymous otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := models.Anonymous
		if tokenString, err := sessionToken(c); err == nil {
			if parsed, err := ParseSessionToken(tokenString); err == nil {
				identity = parsed
			}
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid session. Browsers are sent to
// the sign-in page with a return path; API clients get a 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := sessionToken(c)
		if err == nil {
			var identity models.Identity
			identity, err = ParseSessionToken(tokenString)
			if err == nil {
				c.Set(identityKey, identity)
				c.Next()
				return
			}
		}

		signIn := SignInURL(c.Request.URL.RequestURI())
		if wantsHTML(c) {
			c.Redirect(http.StatusFound, signIn)
			c.Abort()
			return
		}

		message := "Authentication required"
		if !errors.Is(err, errNoToken) {
			message = err.Error()
		}
		c.JSON(http.StatusUnauthorized, gin.H{
			"success":     false,
			"error":       message,
			"sign_in_url": signIn,
		})
		c.Abort()
	}
}

// SignInURL builds the sign-in location carrying returnPath.
func SignInURL(returnPath string) string {
	base := config.Cfg.SignInURL
	if base == "" {
		base = "/sign-in"
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "redirect_url=" + url.QueryEscape(returnPath)
}

// IdentityFromContext returns the identity resolved by the auth middleware,
// or models.Anonymous.
func IdentityFromContext(c *gin.Context) models.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(models.Identity); ok {
			return identity
		}
	}
	return models.Anonymous
}

func wantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}

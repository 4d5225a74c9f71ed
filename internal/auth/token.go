package auth

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie the backend sets on login.
const CookieName = "access_token"

// TokenFromRequest reads the access token cookie; absent means empty.
func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Claims are the token fields this layer cares about.
type Claims struct {
	UserID int
	Role   string
}

// ParseToken verifies an HS256 token and extracts the user id and role.
// The user id may arrive as a numeric "user_id" claim or a numeric "sub".
func ParseToken(raw, secret string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	claims := &Claims{}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	switch id := mapClaims["user_id"].(type) {
	case float64:
		claims.UserID = int(id)
	case string:
		claims.UserID, _ = strconv.Atoi(id)
	default:
		if sub, ok := mapClaims["sub"].(string); ok {
			claims.UserID, _ = strconv.Atoi(sub)
		}
	}
	return claims, nil
}

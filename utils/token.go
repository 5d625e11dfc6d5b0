package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleAdmin     = "admin"
	AdminTokenTTL = 8 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateAdminToken signs an HS256 token carrying admin_id and role.
func GenerateAdminToken(secret string, adminID uint, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret is not configured")
	}
	claims := jwt.MapClaims{
		"admin_id": adminID,
		"role":     RoleAdmin,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// AdminIDFromClaims extracts admin_id from parsed admin claims.
func AdminIDFromClaims(claims jwt.MapClaims) (uint, error) {
	if role, _ := claims["role"].(string); role != RoleAdmin {
		return 0, ErrInvalidToken
	}
	id, ok := claims["admin_id"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// AdminTokenVerifier accepts or rejects admin bearer tokens.
type AdminTokenVerifier struct {
	secret []byte
}

func NewAdminTokenVerifier(secret string) *AdminTokenVerifier {
	return &AdminTokenVerifier{secret: []byte(secret)}
}

func (v *AdminTokenVerifier) Verify(token string) (uint, error) {
	if len(v.secret) == 0 {
		return 0, ErrInvalidToken
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	return AdminIDFromClaims(claims)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

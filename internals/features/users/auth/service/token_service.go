// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"ardu_backend/internals/configs"
)

const accessTokenTTL = 24 * time.Hour

// CreateAccessToken menandatangani access token HS256 dengan klaim
// yang dibaca AuthMiddleware (sub, user_name, role, exp, iat).
func CreateAccessToken(subjectID uuid.UUID, userName, role string) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", errors.New("JWT_SECRET belum diset")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       subjectID.String(),
		"user_name": userName,
		"role":      role,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// TokenExpiry membaca klaim exp tanpa validasi penuh (untuk blacklist TTL).
func TokenExpiry(tokenString string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err != nil {
		return time.Now().Add(accessTokenTTL)
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0)
	}
	return time.Now().Add(accessTokenTTL)
}

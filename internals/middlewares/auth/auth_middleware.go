// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ardu_backend/internals/configs"
	TokenBlacklistModel "ardu_backend/internals/features/users/auth/model"
)

// AuthMiddleware memvalidasi bearer token dan menyimpan identitas
// (user_id, user_name, userRole) ke Locals untuk dipakai controller.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := ExtractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 2) Cek blacklist (sekali per request)
		if c.Locals("token_checked") == nil {
			var existing TokenBlacklistModel.TokenBlacklist
			if err := db.Where("token = ? AND deleted_at IS NULL", tokenString).First(&existing).Error; err == nil {
				log.Println("[WARNING] Token ditemukan di blacklist")
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] DB error saat cek blacklist:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		// 3) Parse & verifikasi JWT
		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 4) Validasi exp (dengan sedikit leeway utk clock skew)
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 5) Simpan identitas ke Locals
		sub, _ := claims["sub"].(string)
		if _, err := uuid.Parse(sub); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", sub)

		if name, ok := claims["user_name"].(string); ok {
			c.Locals("user_name", name)
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals("userRole", strings.ToUpper(role))
		}

		return c.Next()
	}
}

// OptionalAuth: sama seperti AuthMiddleware tapi tidak menolak request
// tanpa token (dipakai endpoint publik seperti reaction summary).
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := ExtractBearerToken(c)
		if err != nil || configs.JWTSecret == "" {
			return c.Next()
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(configs.JWTSecret), nil
		}); err != nil {
			return c.Next()
		}
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return c.Next()
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Locals("user_id", sub)
		}
		if name, ok := claims["user_name"].(string); ok {
			c.Locals("user_name", name)
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals("userRole", strings.ToUpper(role))
		}
		return c.Next()
	}
}

// ExtractBearerToken mengambil token dari header Authorization atau cookie.
func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1]), nil
		}
		return "", errors.New("Unauthorized - Invalid Authorization header")
	}
	if cookie := strings.TrimSpace(c.Cookies("access_token")); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("Unauthorized - Missing token")
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return errors.New("exp claim tidak ada")
	}
	expFloat, ok := expVal.(float64)
	if !ok {
		return fmt.Errorf("exp claim bukan angka: %v", expVal)
	}
	expTime := time.Unix(int64(expFloat), 0)
	if time.Now().After(expTime.Add(leeway)) {
		return fmt.Errorf("token kadaluarsa pada %s", expTime)
	}
	return nil
}

package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret          string
	CloudinaryURL      string
	CloudinaryFolder   string
	MembershipTimezone string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	CloudinaryURL = GetEnv("CLOUDINARY_URL")
	CloudinaryFolder = GetEnvOr("CLOUDINARY_FOLDER", "ardu_media")
	MembershipTimezone = GetEnvOr("MEMBERSHIP_TIMEZONE", "Asia/Kolkata")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if CloudinaryURL == "" {
		log.Println("❌ CLOUDINARY_URL belum diset! Upload media tidak akan jalan.")
	} else {
		log.Println("✅ CLOUDINARY_URL berhasil dimuat.")
	}
}

func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvOr(key, def string) string {
	if v := GetEnv(key); v != "" {
		return v
	}
	return def
}

// internals/features/users/auth/service/auth_service.go
package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	AdminModel "ardu_backend/internals/features/admins/model"
	authModel "ardu_backend/internals/features/users/auth/model"
	UserModel "ardu_backend/internals/features/users/user/model"
	helper "ardu_backend/internals/helpers"
	authMw "ardu_backend/internals/middlewares/auth"
)

var validateAuth = validator.New()

const otpTTL = 5 * time.Minute

// ========================== REGISTER ==========================
// Member baru selalu PENDING + inactive sampai di-approve admin.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		UserName     string  `json:"user_name" validate:"required,min=3,max=50"`
		Name         string  `json:"name" validate:"required,max=100"`
		Email        string  `json:"email" validate:"required,email"`
		MobileNumber string  `json:"mobile_number" validate:"required,min=8,max=20"`
		Password     string  `json:"password" validate:"required,min=8"`
		FatherName   *string `json:"father_name"`
		DateOfBirth  *string `json:"date_of_birth"`
		DlNumber     *string `json:"dl_number"`
		BadgeNumber  *string `json:"badge_number"`
		Address      *string `json:"address"`
		BloodGroup   *string `json:"blood_group"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validateAuth.Struct(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Cek duplikat username / email / nomor HP
	var count int64
	if err := db.Model(&UserModel.UserModel{}).
		Where("user_name = ? OR email = ? OR mobile_number = ?", input.UserName, email, input.MobileNumber).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Username, email, atau nomor HP sudah terdaftar")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := UserModel.UserModel{
		UserName:     input.UserName,
		Name:         input.Name,
		Email:        email,
		MobileNumber: input.MobileNumber,
		PasswordHash: hash,
		Role:         "USER",

		ApprovalStatus: UserModel.ApprovalPending,
		IsActive:       false,

		FatherName:  input.FatherName,
		DlNumber:    input.DlNumber,
		BadgeNumber: input.BadgeNumber,
		Address:     input.Address,
		BloodGroup:  input.BloodGroup,
	}
	if input.DateOfBirth != nil {
		if t, err := time.Parse("2006-01-02", *input.DateOfBirth); err == nil {
			d := datatypes.Date(t)
			user.DateOfBirth = &d
		}
	}

	if err := db.Create(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	return helper.JsonCreated(c, "Registrasi berhasil, menunggu approval admin", user)
}

// ========================== LOGIN ==========================
// Identifier boleh username atau email; akun admin login dengan email.
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Identifier string `json:"identifier" validate:"required"`
		Password   string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validateAuth.Struct(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ident := strings.TrimSpace(input.Identifier)

	// 1) Coba tabel users
	var user UserModel.UserModel
	err := db.Where("user_name = ? OR email = ?", ident, strings.ToLower(ident)).
		First(&user).Error
	if err == nil {
		if CheckPasswordHash(user.PasswordHash, input.Password) != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email/username atau password salah")
		}
		if user.ApprovalStatus != UserModel.ApprovalApproved || !user.IsActive {
			return helper.JsonError(c, fiber.StatusForbidden, "Akun belum di-approve atau sudah nonaktif")
		}
		token, err := CreateAccessToken(user.ID, user.UserName, user.Role)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
		}
		return helper.JsonOK(c, "Login berhasil", fiber.Map{
			"access_token": token,
			"user":         user,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	// 2) Tidak ada di users — coba tabel admins (principal = email)
	var admin AdminModel.AdminModel
	if err := db.Where("email = ?", strings.ToLower(ident)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email/username atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if CheckPasswordHash(admin.PasswordHash, input.Password) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email/username atau password salah")
	}

	token, err := CreateAccessToken(admin.ID, admin.Email, admin.Role())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": token,
		"admin":        admin,
	})
}

// ========================== OTP ==========================

// RequestOTP membuat kode 6 digit dan menyimpannya di baris user.
// Pengiriman SMS/email di luar scope; kode dicatat di log server.
func RequestOTP(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validateAuth.Struct(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user UserModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	code, err := generateOTP()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat OTP")
	}
	expiry := time.Now().Add(otpTTL)

	if err := db.Model(&UserModel.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"otp_code":   code,
			"otp_expiry": expiry,
		}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan OTP")
	}

	log.Printf("[INFO] OTP untuk %s: %s (berlaku %s)", email, code, otpTTL)

	return helper.JsonOK(c, "OTP dikirim", fiber.Map{
		"expires_in_seconds": int(otpTTL.Seconds()),
	})
}

// VerifyOTP memvalidasi kode, menandai email terverifikasi, dan
// menerbitkan access token kalau akun sudah approved + aktif.
func VerifyOTP(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
		Otp   string `json:"otp" validate:"required,len=6"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validateAuth.Struct(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user UserModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if user.OtpCode == nil || user.OtpExpiry == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "OTP belum diminta")
	}
	if time.Now().After(*user.OtpExpiry) {
		return helper.JsonError(c, fiber.StatusBadRequest, "OTP sudah kadaluarsa")
	}
	if *user.OtpCode != input.Otp {
		return helper.JsonError(c, fiber.StatusBadRequest, "OTP salah")
	}

	// Sekali pakai: langsung dikosongkan
	if err := db.Model(&UserModel.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"otp_code":       nil,
			"otp_expiry":     nil,
			"email_verified": true,
		}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update status OTP")
	}

	if user.ApprovalStatus != UserModel.ApprovalApproved || !user.IsActive {
		return helper.JsonOK(c, "OTP terverifikasi, akun masih menunggu approval", nil)
	}

	token, err := CreateAccessToken(user.ID, user.UserName, user.Role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	return helper.JsonOK(c, "OTP terverifikasi", fiber.Map{
		"access_token": token,
	})
}

// ========================== LOGOUT ==========================
// Token yang masih valid dimasukkan ke blacklist sampai exp-nya lewat.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	tokenString, err := authMw.ExtractBearerToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	entry := authModel.TokenBlacklist{
		Token:     tokenString,
		ExpiredAt: TokenExpiry(tokenString),
	}
	if err := db.Create(&entry).Error; err != nil {
		// Token sudah pernah di-blacklist → tetap anggap sukses
		log.Printf("[WARNING] Gagal insert blacklist (mungkin duplikat): %v", err)
	}

	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logout berhasil", nil)
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

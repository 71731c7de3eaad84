package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	AdminModel "ardu_backend/internals/features/admins/model"
	UserModel "ardu_backend/internals/features/users/user/model"
	helper "ardu_backend/internals/helpers"
)

// HashPassword membungkus bcrypt dengan cost default.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash mengembalikan error kalau password tidak cocok.
func CheckPasswordHash(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if len(input.NewPassword) < 8 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Password baru minimal 8 karakter")
	}

	// Ambil user_id dari Locals dengan aman
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid user id")
	}

	// Subject token bisa baris users ATAU baris admins (login admin by email)
	var user UserModel.UserModel
	err = db.First(&user, "id = ?", userID).Error
	if err == nil {
		if CheckPasswordHash(user.PasswordHash, input.CurrentPassword) != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
		}
		newHash, err := HashPassword(input.NewPassword)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
		}
		if err := db.Model(&UserModel.UserModel{}).
			Where("id = ?", userID).
			Update("password_hash", newHash).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
		}
		return helper.JsonUpdated(c, "Password changed successfully", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var admin AdminModel.AdminModel
	if err := db.First(&admin, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if CheckPasswordHash(admin.PasswordHash, input.CurrentPassword) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}
	newHash, err := HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}
	if err := db.Model(&AdminModel.AdminModel{}).
		Where("id = ?", userID).
		Update("password_hash", newHash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}

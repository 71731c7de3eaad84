// file: internals/features/admins/service/account_service.go
package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ardu_backend/internals/configs"
	AdminModel "ardu_backend/internals/features/admins/model"
	UserModel "ardu_backend/internals/features/users/user/model"
)

// Window keanggotaan: 364 hari dari tanggal approve.
const membershipDays = 364

// MembershipLocation: zona waktu tetap untuk stempel tanggal keanggotaan.
func MembershipLocation() *time.Location {
	name := configs.MembershipTimezone
	if name == "" {
		name = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[WARNING] Zona waktu %q tidak dikenal, pakai UTC", name)
		return time.UTC
	}
	return loc
}

// =====================================================
// APPROVE / REJECT MEMBER
// =====================================================

// ApproveUser: APPROVED + aktif + window keanggotaan baru
// (joining = hari ini di zona tetap, expiry = joining + 364 hari).
func ApproveUser(db *gorm.DB, userID uuid.UUID, loc *time.Location) (*UserModel.UserModel, error) {
	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(loc)
	joining := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	expiry := joining.AddDate(0, 0, membershipDays)

	joiningD := datatypes.Date(joining)
	expiryD := datatypes.Date(expiry)

	user.ApprovalStatus = UserModel.ApprovalApproved
	user.IsActive = true
	user.DateOfJoiningOrRenewal = &joiningD
	user.ExpiryDate = &expiryD

	if err := db.Model(user).Updates(map[string]interface{}{
		"approval_status":            user.ApprovalStatus,
		"is_active":                  true,
		"date_of_joining_or_renewal": joiningD,
		"expiry_date":                expiryD,
	}).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// RejectUser: REJECTED + nonaktif; field joining/expiry tidak disentuh.
func RejectUser(db *gorm.DB, userID uuid.UUID) (*UserModel.UserModel, error) {
	user, err := findUser(db, userID)
	if err != nil {
		return nil, err
	}

	user.ApprovalStatus = UserModel.ApprovalRejected
	user.IsActive = false

	if err := db.Model(user).Updates(map[string]interface{}{
		"approval_status": user.ApprovalStatus,
		"is_active":       false,
	}).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// =====================================================
// LINK ADMIN → USER (langkah eksplisit, bukan on-the-fly)
// =====================================================

// LinkAdminUser membuat (atau menempelkan) baris users untuk admin supaya
// admin bisa berkomentar/bereaksi. Idempotent: link yang sudah ada dipakai ulang.
func LinkAdminUser(db *gorm.DB, adminID uuid.UUID) (*UserModel.UserModel, error) {
	var admin AdminModel.AdminModel
	if err := db.First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Admin tidak ditemukan")
		}
		return nil, err
	}

	// Sudah pernah di-link
	if admin.UserID != nil {
		var existing UserModel.UserModel
		if err := db.First(&existing, "id = ?", *admin.UserID).Error; err == nil {
			return &existing, nil
		}
	}

	// User dengan email sama sudah ada → tempelkan saja
	var existing UserModel.UserModel
	if err := db.Where("email = ?", strings.ToLower(admin.Email)).First(&existing).Error; err == nil {
		if err := db.Model(&admin).Update("user_id", existing.ID).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	// Buat user cermin: APPROVED + aktif, hash credential yang sama
	user := UserModel.UserModel{
		UserName:       admin.Name,
		Name:           admin.Name,
		Email:          strings.ToLower(admin.Email),
		PasswordHash:   admin.PasswordHash,
		MobileNumber:   admin.MobileNumber,
		Role:           admin.Role(),
		ApprovalStatus: UserModel.ApprovalApproved,
		IsActive:       true,
		ImageURL:       admin.ImageURL,
		ImagePublicID:  admin.ImagePublicID,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Gagal membuat user untuk admin: "+err.Error())
	}
	if err := db.Model(&admin).Update("user_id", user.ID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func findUser(db *gorm.DB, userID uuid.UUID) (*UserModel.UserModel, error) {
	var user UserModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, err
	}
	return &user, nil
}

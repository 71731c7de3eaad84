package controller

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ardu_backend/internals/constants"
	"ardu_backend/internals/features/admins/dto"
	"ardu_backend/internals/features/admins/model"
	"ardu_backend/internals/features/admins/service"
	UserModel "ardu_backend/internals/features/users/user/model"
	helper "ardu_backend/internals/helpers"
)

var validateAdmin = validator.New()

// ImageStore: subset adapter media yang dibutuhkan fitur admin.
type ImageStore interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader) (publicURL, publicID string, err error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

type AdminController struct {
	DB    *gorm.DB
	Media ImageStore
}

func NewAdminController(db *gorm.DB, media ImageStore) *AdminController {
	return &AdminController{DB: db, Media: media}
}

func jsonFromErr(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// =====================================================
// POST /api/admins/create (MAIN_ADMIN)
// =====================================================
func (ctrl *AdminController) CreateAdmin(c *fiber.Ctx) error {
	var req dto.AdminCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email wajib diisi")
	}
	if err := validateAdmin.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Duplikat email dicek case-insensitive
	var count int64
	if err := ctrl.DB.Model(&model.AdminModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return jsonFromErr(c, err)
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email admin sudah terdaftar")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
	}

	admin := model.AdminModel{
		Name:         req.Name,
		Email:        email,
		MobileNumber: req.MobileNumber,
		PasswordHash: string(hash),
		IsMainAdmin:  false, // admin baru selalu non-main

		DlNumber:       req.DlNumber,
		FatherName:     req.FatherName,
		DateOfBirth:    dto.ParseDateOfBirth(req.DateOfBirth),
		BadgeNumber:    req.BadgeNumber,
		Address:        req.Address,
		BloodGroup:     req.BloodGroup,
		WhatsappNumber: req.WhatsappNumber,

		NomineeName:          req.NomineeName,
		NomineeRelationship:  req.NomineeRelationship,
		NomineeContactNumber: req.NomineeContactNumber,
	}
	if err := ctrl.DB.Create(&admin).Error; err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonCreated(c, "Admin berhasil dibuat", admin)
}

// =====================================================
// GET /api/admins/:id (ADMIN|MAIN_ADMIN)
// =====================================================
func (ctrl *AdminController) GetAdmin(c *fiber.Ctx) error {
	adminID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var admin model.AdminModel
	if err := ctrl.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Admin tidak ditemukan")
		}
		return jsonFromErr(c, err)
	}
	// hash tidak pernah diserialisasi (json:"-")
	return helper.JsonOK(c, "Detail admin", admin)
}

// =====================================================
// PUT /api/admins/:id — patch bertipe; self atau MAIN_ADMIN
// =====================================================
func (ctrl *AdminController) UpdateAdmin(c *fiber.Ctx) error {
	adminID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var admin model.AdminModel
	if err := ctrl.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Admin tidak ditemukan")
		}
		return jsonFromErr(c, err)
	}

	if err := ctrl.requireSelfOrMainAdmin(c, &admin, "mengubah profil admin lain"); err != nil {
		return jsonFromErr(c, err)
	}

	var patch dto.AdminPatchRequest
	if err := c.BodyParser(&patch); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	patch.Apply(&admin)

	// Password: hash ulang hanya kalau dikirim dan tidak blank
	if patch.Password != nil && strings.TrimSpace(*patch.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
		}
		admin.PasswordHash = string(hash)
	}

	if err := ctrl.DB.Save(&admin).Error; err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonUpdated(c, "Profil admin diperbarui", admin)
}

// =====================================================
// POST /api/admins/:id/image — self atau MAIN_ADMIN
// =====================================================
func (ctrl *AdminController) UploadAdminImage(c *fiber.Ctx) error {
	adminID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var admin model.AdminModel
	if err := ctrl.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Admin tidak ditemukan")
		}
		return jsonFromErr(c, err)
	}

	if err := ctrl.requireSelfOrMainAdmin(c, &admin, "mengunggah foto admin lain"); err != nil {
		return jsonFromErr(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak ditemukan")
	}

	url, publicID, err := ctrl.Media.UploadImage(c.UserContext(), fh)
	if err != nil {
		return jsonFromErr(c, err)
	}

	// Asset lama diganti: hapus best-effort
	if admin.ImagePublicID != nil && *admin.ImagePublicID != "" {
		if err := ctrl.Media.Destroy(c.UserContext(), *admin.ImagePublicID, "image"); err != nil {
			log.Printf("[WARNING] Gagal hapus foto lama %s: %v", *admin.ImagePublicID, err)
		}
	}

	admin.ImageURL = &url
	admin.ImagePublicID = &publicID
	if err := ctrl.DB.Model(&admin).Updates(map[string]interface{}{
		"image_url":       url,
		"image_public_id": publicID,
	}).Error; err != nil {
		return jsonFromErr(c, err)
	}

	return helper.JsonOK(c, "Foto admin tersimpan", fiber.Map{
		"image_url":       url,
		"image_public_id": publicID,
	})
}

// =====================================================
// POST /api/admins/:id/link-user (MAIN_ADMIN) — account link eksplisit
// =====================================================
func (ctrl *AdminController) LinkUser(c *fiber.Ctx) error {
	adminID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}

	user, err := service.LinkAdminUser(ctrl.DB, adminID)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonOK(c, "Akun admin ter-link ke user", user)
}

// =====================================================
// Member moderation (ADMIN|MAIN_ADMIN)
// =====================================================

// GET /api/admins/users/pending
func (ctrl *AdminController) GetPendingUsers(c *fiber.Ctx) error {
	var users []UserModel.UserModel
	if err := ctrl.DB.
		Where("approval_status = ?", UserModel.ApprovalPending).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonOK(c, "Member menunggu approval", users)
}

// PUT /api/admins/users/:id/approve
func (ctrl *AdminController) ApproveUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	user, err := service.ApproveUser(ctrl.DB, userID, service.MembershipLocation())
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonUpdated(c, "Member disetujui", user)
}

// PUT /api/admins/users/:id/reject
func (ctrl *AdminController) RejectUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "id tidak valid")
	}
	user, err := service.RejectUser(ctrl.DB, userID)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonUpdated(c, "Member ditolak", user)
}

/* ===============================
   Authorization helpers
=================================*/

// requireSelfOrMainAdmin: MAIN_ADMIN bebas; ADMIN hanya untuk record miliknya
// (principal token = email admin). Mengembalikan *fiber.Error supaya caller
// bisa memetakan lewat jsonFromErr (bukan menulis response di sini).
func (ctrl *AdminController) requireSelfOrMainAdmin(c *fiber.Ctx, admin *model.AdminModel, action string) error {
	role, _ := c.Locals("userRole").(string)
	if strings.EqualFold(role, constants.RoleMainAdmin) {
		return nil
	}
	principal, _ := c.Locals("user_name").(string)
	if principal == "" || !strings.EqualFold(principal, admin.Email) {
		return fiber.NewError(fiber.StatusForbidden, "Admin tidak boleh "+action)
	}
	return nil
}

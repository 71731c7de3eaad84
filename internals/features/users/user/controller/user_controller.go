package controller

import (
	"context"
	"errors"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ardu_backend/internals/features/users/user/dto"
	"ardu_backend/internals/features/users/user/model"
	helper "ardu_backend/internals/helpers"
)

// ImageStore: kebutuhan media fitur profil member.
type ImageStore interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader) (publicURL, publicID string, err error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

type UserController struct {
	DB    *gorm.DB
	Media ImageStore
}

func NewUserController(db *gorm.DB, media ImageStore) *UserController {
	return &UserController{DB: db, Media: media}
}

// =====================================================
// GET /api/users/me
// =====================================================
func (ctrl *UserController) GetMe(c *fiber.Ctx) error {
	user, err := ctrl.currentUser(c)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonOK(c, "Profil saya", user)
}

// =====================================================
// PUT /api/users/me — typed partial update
// =====================================================
func (ctrl *UserController) UpdateMe(c *fiber.Ctx) error {
	user, err := ctrl.currentUser(c)
	if err != nil {
		return jsonFromErr(c, err)
	}

	var patch dto.UserPatchRequest
	if err := c.BodyParser(&patch); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	patch.Apply(user)

	if err := ctrl.DB.Save(user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update profil")
	}
	return helper.JsonUpdated(c, "Profil diperbarui", user)
}

// =====================================================
// POST /api/users/me/image
// =====================================================
func (ctrl *UserController) UploadMyImage(c *fiber.Ctx) error {
	user, err := ctrl.currentUser(c)
	if err != nil {
		return jsonFromErr(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak ditemukan")
	}

	url, publicID, err := ctrl.Media.UploadImage(c.UserContext(), fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal upload foto")
	}

	// Hapus asset lama best-effort
	if user.ImagePublicID != nil && *user.ImagePublicID != "" {
		if err := ctrl.Media.Destroy(c.UserContext(), *user.ImagePublicID, "image"); err != nil {
			log.Printf("[WARNING] Gagal hapus foto lama %s: %v", *user.ImagePublicID, err)
		}
	}

	if err := ctrl.DB.Model(user).Updates(map[string]interface{}{
		"image_url":       url,
		"image_public_id": publicID,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal simpan foto")
	}

	return helper.JsonOK(c, "Foto profil tersimpan", fiber.Map{
		"image_url": url,
	})
}

// jsonFromErr memetakan error sentinel (fiber.Error) ke envelope standar.
func jsonFromErr(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// currentUser mengambil user dari Locals user_id. Mengembalikan *fiber.Error
// (bukan menulis response langsung) supaya handler memetakan lewat jsonFromErr;
// subject token tanpa baris users (mis. admin yang belum di-link) → 404.
func (ctrl *UserController) currentUser(c *fiber.Ctx) (*model.UserModel, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "DB error")
	}
	return &user, nil
}

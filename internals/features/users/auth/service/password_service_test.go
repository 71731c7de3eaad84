package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	AdminModel "ardu_backend/internals/features/admins/model"
	UserModel "ardu_backend/internals/features/users/user/model"
)

func TestChangePasswordMember(t *testing.T) {
	app, db := newTestApp(t)

	status, _ := postJSON(t, app, "/register", registerBody("budi"), nil)
	require.Equal(t, fiber.StatusCreated, status)
	require.NoError(t, db.Model(&UserModel.UserModel{}).
		Where("user_name = ?", "budi").
		Updates(map[string]interface{}{
			"approval_status": UserModel.ApprovalApproved,
			"is_active":       true,
		}).Error)

	status, payload := postJSON(t, app, "/login", map[string]any{
		"identifier": "budi",
		"password":   "rahasia-sekali",
	}, nil)
	require.Equal(t, fiber.StatusOK, status)
	token := payload["data"].(map[string]any)["access_token"].(string)
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	// Current password salah -> 401
	status, _ = postJSON(t, app, "/change-password", map[string]any{
		"current_password": "salah-total",
		"new_password":     "rahasia-baru-123",
	}, authHeader)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// Password baru terlalu pendek -> 422
	status, _ = postJSON(t, app, "/change-password", map[string]any{
		"current_password": "rahasia-sekali",
		"new_password":     "pendek",
	}, authHeader)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = postJSON(t, app, "/change-password", map[string]any{
		"current_password": "rahasia-sekali",
		"new_password":     "rahasia-baru-123",
	}, authHeader)
	require.Equal(t, fiber.StatusOK, status)

	var user UserModel.UserModel
	require.NoError(t, db.First(&user, "user_name = ?", "budi").Error)
	assert.NoError(t, CheckPasswordHash(user.PasswordHash, "rahasia-baru-123"))
	assert.Error(t, CheckPasswordHash(user.PasswordHash, "rahasia-sekali"))

	// Login pakai password baru tetap jalan
	status, _ = postJSON(t, app, "/login", map[string]any{
		"identifier": "budi",
		"password":   "rahasia-baru-123",
	}, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

// Subject token admin (id di tabel admins, bukan users) juga harus bisa
// ganti password lewat endpoint yang sama.
func TestChangePasswordAdmin(t *testing.T) {
	app, db := newTestApp(t)

	hash, err := HashPassword("admin-rahasia")
	require.NoError(t, err)
	admin := AdminModel.AdminModel{
		Name:         "Siti",
		Email:        "siti@example.com",
		MobileNumber: "0811",
		PasswordHash: hash,
	}
	require.NoError(t, db.Create(&admin).Error)

	status, payload := postJSON(t, app, "/login", map[string]any{
		"identifier": "siti@example.com",
		"password":   "admin-rahasia",
	}, nil)
	require.Equal(t, fiber.StatusOK, status)
	token := payload["data"].(map[string]any)["access_token"].(string)
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	status, _ = postJSON(t, app, "/change-password", map[string]any{
		"current_password": "admin-rahasia-salah",
		"new_password":     "admin-baru-123",
	}, authHeader)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = postJSON(t, app, "/change-password", map[string]any{
		"current_password": "admin-rahasia",
		"new_password":     "admin-baru-123",
	}, authHeader)
	require.Equal(t, fiber.StatusOK, status)

	var reloaded AdminModel.AdminModel
	require.NoError(t, db.First(&reloaded, "id = ?", admin.ID).Error)
	assert.NoError(t, CheckPasswordHash(reloaded.PasswordHash, "admin-baru-123"))

	// Login ulang pakai password baru
	status, _ = postJSON(t, app, "/login", map[string]any{
		"identifier": "siti@example.com",
		"password":   "admin-baru-123",
	}, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

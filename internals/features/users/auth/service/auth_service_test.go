package service

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ardu_backend/internals/configs"
	AdminModel "ardu_backend/internals/features/admins/model"
	authModel "ardu_backend/internals/features/users/auth/model"
	UserModel "ardu_backend/internals/features/users/user/model"
	authMw "ardu_backend/internals/middlewares/auth"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&UserModel.UserModel{},
		&AdminModel.AdminModel{},
		&authModel.TokenBlacklist{},
	))

	app := fiber.New()
	app.Post("/register", func(c *fiber.Ctx) error { return Register(db, c) })
	app.Post("/login", func(c *fiber.Ctx) error { return Login(db, c) })
	app.Post("/otp/request", func(c *fiber.Ctx) error { return RequestOTP(db, c) })
	app.Post("/otp/verify", func(c *fiber.Ctx) error { return VerifyOTP(db, c) })
	app.Post("/logout", authMw.AuthMiddleware(db), func(c *fiber.Ctx) error { return Logout(db, c) })
	app.Post("/change-password", authMw.AuthMiddleware(db), func(c *fiber.Ctx) error { return ChangePassword(db, c) })
	app.Get("/protected", authMw.AuthMiddleware(db), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_name": c.Locals("user_name")})
	})
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	payload := map[string]any{}
	data, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &payload)
	return resp.StatusCode, payload
}

func registerBody(username string) map[string]any {
	return map[string]any{
		"user_name":     username,
		"name":          "Budi Santoso",
		"email":         username + "@example.com",
		"mobile_number": "081234567890",
		"password":      "rahasia-sekali",
	}
}

func TestRegisterCreatesPendingInactiveUser(t *testing.T) {
	app, db := newTestApp(t)

	status, _ := postJSON(t, app, "/register", registerBody("budi"), nil)
	require.Equal(t, fiber.StatusCreated, status)

	var user UserModel.UserModel
	require.NoError(t, db.First(&user, "user_name = ?", "budi").Error)
	assert.Equal(t, UserModel.ApprovalPending, user.ApprovalStatus)
	assert.False(t, user.IsActive)
	assert.Equal(t, "USER", user.Role)
	assert.NotEqual(t, "rahasia-sekali", user.PasswordHash, "password harus di-hash")

	// Duplikat ditolak
	status, _ = postJSON(t, app, "/register", registerBody("budi"), nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLoginBlockedUntilApproved(t *testing.T) {
	app, db := newTestApp(t)

	status, _ := postJSON(t, app, "/register", registerBody("budi"), nil)
	require.Equal(t, fiber.StatusCreated, status)

	login := map[string]any{"identifier": "budi", "password": "rahasia-sekali"}

	status, _ = postJSON(t, app, "/login", login, nil)
	assert.Equal(t, fiber.StatusForbidden, status, "akun PENDING belum boleh login")

	require.NoError(t, db.Model(&UserModel.UserModel{}).
		Where("user_name = ?", "budi").
		Updates(map[string]interface{}{
			"approval_status": UserModel.ApprovalApproved,
			"is_active":       true,
		}).Error)

	status, payload := postJSON(t, app, "/login", login, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := payload["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])

	// Password salah
	status, _ = postJSON(t, app, "/login", map[string]any{"identifier": "budi", "password": "salah"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginAdminByEmail(t *testing.T) {
	app, db := newTestApp(t)

	hash, err := HashPassword("admin-rahasia")
	require.NoError(t, err)
	require.NoError(t, db.Create(&AdminModel.AdminModel{
		Name:         "Siti",
		Email:        "siti@example.com",
		MobileNumber: "0811",
		PasswordHash: hash,
		IsMainAdmin:  true,
	}).Error)

	status, payload := postJSON(t, app, "/login", map[string]any{
		"identifier": "siti@example.com",
		"password":   "admin-rahasia",
	}, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := payload["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
}

func TestLogoutBlacklistsToken(t *testing.T) {
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
		"identifier": "budi", "password": "rahasia-sekali",
	}, nil)
	require.Equal(t, fiber.StatusOK, status)
	token := payload["data"].(map[string]any)["access_token"].(string)
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	// Token valid bisa akses endpoint protected
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	status, _ = postJSON(t, app, "/logout", nil, authHeader)
	require.Equal(t, fiber.StatusOK, status)

	// Setelah logout, token yang sama ditolak
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOTPFlow(t *testing.T) {
	app, db := newTestApp(t)

	status, _ := postJSON(t, app, "/register", registerBody("budi"), nil)
	require.Equal(t, fiber.StatusCreated, status)
	require.NoError(t, db.Model(&UserModel.UserModel{}).
		Where("user_name = ?", "budi").
		Updates(map[string]interface{}{
			"approval_status": UserModel.ApprovalApproved,
			"is_active":       true,
		}).Error)

	status, _ = postJSON(t, app, "/otp/request", map[string]any{"email": "budi@example.com"}, nil)
	require.Equal(t, fiber.StatusOK, status)

	var user UserModel.UserModel
	require.NoError(t, db.First(&user, "user_name = ?", "budi").Error)
	require.NotNil(t, user.OtpCode)
	require.NotNil(t, user.OtpExpiry)
	assert.Len(t, *user.OtpCode, 6)

	// Kode salah
	status, _ = postJSON(t, app, "/otp/verify", map[string]any{
		"email": "budi@example.com", "otp": "000000",
	}, nil)
	if *user.OtpCode != "000000" {
		assert.Equal(t, fiber.StatusBadRequest, status)
	}

	// Kode benar → token keluar, OTP dikosongkan
	status, payload := postJSON(t, app, "/otp/verify", map[string]any{
		"email": "budi@example.com", "otp": *user.OtpCode,
	}, nil)
	require.Equal(t, fiber.StatusOK, status)
	data := payload["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])

	require.NoError(t, db.First(&user, "user_name = ?", "budi").Error)
	assert.Nil(t, user.OtpCode)
	assert.True(t, user.EmailVerified)

	// OTP sekali pakai
	status, _ = postJSON(t, app, "/otp/verify", map[string]any{
		"email": "budi@example.com", "otp": "123456",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestOTPExpired(t *testing.T) {
	app, db := newTestApp(t)

	status, _ := postJSON(t, app, "/register", registerBody("budi"), nil)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = postJSON(t, app, "/otp/request", map[string]any{"email": "budi@example.com"}, nil)
	require.Equal(t, fiber.StatusOK, status)

	// Mundurkan expiry-nya
	past := time.Now().Add(-time.Minute)
	require.NoError(t, db.Model(&UserModel.UserModel{}).
		Where("user_name = ?", "budi").
		Update("otp_expiry", past).Error)

	var user UserModel.UserModel
	require.NoError(t, db.First(&user, "user_name = ?", "budi").Error)

	status, _ = postJSON(t, app, "/otp/verify", map[string]any{
		"email": "budi@example.com", "otp": *user.OtpCode,
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

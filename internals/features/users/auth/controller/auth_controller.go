package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ardu_backend/internals/features/users/auth/service"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return service.Register(ac.DB, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ac.DB, c)
}

func (ac *AuthController) RequestOTP(c *fiber.Ctx) error {
	return service.RequestOTP(ac.DB, c)
}

func (ac *AuthController) VerifyOTP(c *fiber.Ctx) error {
	return service.VerifyOTP(ac.DB, c)
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ac.DB, c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return service.ChangePassword(ac.DB, c)
}

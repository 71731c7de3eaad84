package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ardu_backend/internals/features/users/auth/controller"
	"ardu_backend/internals/middlewares"
	"ardu_backend/internals/middlewares/auth"
)

// AuthRoutes memasang endpoint autentikasi di bawah /api/auth.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	authGroup := api.Group("/auth")

	// 🌐 Public (dibatasi rate limiter)
	authGroup.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	authGroup.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	authGroup.Post("/otp/request", middlewares.OTPRateLimiter(), ctrl.RequestOTP)
	authGroup.Post("/otp/verify", middlewares.OTPRateLimiter(), ctrl.VerifyOTP)

	// 🔒 Butuh token
	authGroup.Post("/logout", auth.AuthMiddleware(db), ctrl.Logout)
	authGroup.Put("/change-password", auth.AuthMiddleware(db), ctrl.ChangePassword)
}

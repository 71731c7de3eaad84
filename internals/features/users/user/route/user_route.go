package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ardu_backend/internals/features/users/user/controller"
	"ardu_backend/internals/middlewares/auth"
)

// UserRoutes: self-service profil member di bawah /api/users.
func UserRoutes(api fiber.Router, db *gorm.DB, media controller.ImageStore) {
	ctrl := controller.NewUserController(db, media)

	users := api.Group("/users", auth.AuthMiddleware(db))

	users.Get("/me", ctrl.GetMe)
	users.Put("/me", ctrl.UpdateMe)
	users.Post("/me/image", ctrl.UploadMyImage)
}

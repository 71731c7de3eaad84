package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ardu_backend/internals/constants"
	"ardu_backend/internals/features/admins/controller"
	"ardu_backend/internals/middlewares/auth"
)

// AdminRoutes memasang semua endpoint manajemen admin & moderasi member.
// Semua route butuh token; create/link-user khusus MAIN_ADMIN.
func AdminRoutes(api fiber.Router, db *gorm.DB, media controller.ImageStore) {
	ctrl := controller.NewAdminController(db, media)

	admins := api.Group("/admins", auth.AuthMiddleware(db))

	adminOnly := auth.OnlyRoles(
		constants.RoleErrorAdmin("mengakses fitur admin"),
		constants.AdminAndAbove...,
	)
	mainAdminOnly := auth.OnlyRoles(
		constants.RoleErrorMainAdmin("mengelola akun admin"),
		constants.RoleMainAdmin,
	)

	// 🛡️ Member moderation — route statis sebelum route param
	admins.Get("/users/pending", adminOnly, ctrl.GetPendingUsers)
	admins.Put("/users/:id/approve", adminOnly, ctrl.ApproveUser)
	admins.Put("/users/:id/reject", adminOnly, ctrl.RejectUser)

	// 👤 Admin accounts
	admins.Post("/create", mainAdminOnly, ctrl.CreateAdmin)
	admins.Get("/:id", adminOnly, ctrl.GetAdmin)
	admins.Put("/:id", adminOnly, ctrl.UpdateAdmin)
	admins.Post("/:id/image", adminOnly, ctrl.UploadAdminImage)
	admins.Post("/:id/link-user", mainAdminOnly, ctrl.LinkUser)
}

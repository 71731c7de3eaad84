// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AdminRoute "ardu_backend/internals/features/admins/route"
	PostRoute "ardu_backend/internals/features/posts/route"
	AuthRoute "ardu_backend/internals/features/users/auth/route"
	UserRoute "ardu_backend/internals/features/users/user/route"
	cloudinary "ardu_backend/internals/helpers/cloudinary"
)

var startTime time.Time

// SetupRoutes memasang seluruh route aplikasi di bawah /api.
func SetupRoutes(app *fiber.App, db *gorm.DB, media *cloudinary.MediaService) {
	startTime = time.Now()

	api := app.Group("/api")

	log.Println("[INFO] Setting up AuthRoutes...")
	AuthRoute.AuthRoutes(api, db)

	log.Println("[INFO] Setting up UserRoutes...")
	UserRoute.UserRoutes(api, db, media)

	log.Println("[INFO] Setting up AdminRoutes...")
	AdminRoute.AdminRoutes(api, db, media)

	log.Println("[INFO] Setting up PostRoutes...")
	PostRoute.PostRoutes(api, db, media)
}

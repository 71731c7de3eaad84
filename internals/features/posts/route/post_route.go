package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ardu_backend/internals/constants"
	"ardu_backend/internals/features/posts/controller"
	"ardu_backend/internals/features/posts/service"
	authMw "ardu_backend/internals/middlewares/auth"
)

// PostRoutes memasang seluruh endpoint post/komentar/reaksi.
func PostRoutes(api fiber.Router, db *gorm.DB, media service.MediaStore) {
	ctrl := controller.NewPostController(service.NewPostService(db, media))

	posts := api.Group("/posts")

	// Publik: ringkasan reaksi (identitas pemanggil opsional dari token).
	// Didaftarkan sebelum AuthMiddleware supaya tidak ikut kena guard.
	posts.Get("/:post_id/reactions/summary", authMw.OptionalAuth(), ctrl.GetReactionSummary)

	posts.Use(authMw.AuthMiddleware(db))

	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("moderasi post"), constants.AdminAndAbove...)

	// Moderasi (route statis sebelum route berparameter)
	posts.Get("/pending", adminOnly, ctrl.GetPendingPosts)

	// Semua role terautentikasi
	posts.Get("", ctrl.GetVisiblePosts)
	posts.Post("/create", ctrl.CreatePost)
	posts.Get("/user/:user_id/pending", ctrl.GetUserPendingPosts)
	posts.Get("/user/:user_id", ctrl.GetUserPosts)

	posts.Put("/:post_id/approve", adminOnly, ctrl.ApprovePost)
	posts.Put("/:post_id/reject", adminOnly, ctrl.RejectPost)
	posts.Put("/:post_id", ctrl.UpdatePost)

	posts.Delete("/:post_id/user", ctrl.DeleteUserPost)
	posts.Delete("/:post_id", adminOnly, ctrl.DeletePost)

	posts.Post("/:post_id/reaction", ctrl.AddReaction)
	posts.Post("/:post_id/comment", ctrl.AddComment)
	posts.Get("/:post_id/comments", ctrl.GetComments)
	posts.Get("/:post_id/reactions", ctrl.GetReactions)
}

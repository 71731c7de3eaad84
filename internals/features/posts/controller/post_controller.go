package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ardu_backend/internals/features/posts/dto"
	"ardu_backend/internals/features/posts/service"
	helper "ardu_backend/internals/helpers"
)

var validatePost = validator.New()

type PostController struct {
	Service *service.PostService
}

func NewPostController(svc *service.PostService) *PostController {
	return &PostController{Service: svc}
}

// jsonFromErr memetakan error service (fiber.Error) ke envelope standar.
func jsonFromErr(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

func currentPrincipal(c *fiber.Ctx) (principal, role string) {
	principal, _ = c.Locals("user_name").(string)
	role, _ = c.Locals("userRole").(string)
	return
}

// =====================================================
// POST /api/posts/create (multipart: userId, file, caption, story)
// =====================================================
func (ctrl *PostController) CreatePost(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validatePost.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "userId tidak valid")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File media wajib diisi untuk post")
	}

	post, err := ctrl.Service.CreatePost(c.UserContext(), userID, fh, req.Caption, req.Story)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonCreated(c, "Post berhasil dibuat", dto.ToPostDTO(*post))
}

// =====================================================
// PUT /api/posts/:post_id/approve & /reject (ADMIN|MAIN_ADMIN)
// =====================================================
func (ctrl *PostController) ApprovePost(c *fiber.Ctx) error {
	return ctrl.setApproval(c, true, "Post disetujui")
}

func (ctrl *PostController) RejectPost(c *fiber.Ctx) error {
	return ctrl.setApproval(c, false, "Post ditolak")
}

func (ctrl *PostController) setApproval(c *fiber.Ctx, approved bool, message string) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}
	post, err := ctrl.Service.SetApproval(c.UserContext(), postID, approved)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonUpdated(c, message, dto.ToPostDTO(*post))
}

// =====================================================
// GET /api/posts — post yang tayang (approved & belum kedaluwarsa)
// =====================================================
func (ctrl *PostController) GetVisiblePosts(c *fiber.Ctx) error {
	posts, err := ctrl.Service.GetVisiblePosts(c.UserContext())
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonOK(c, "Daftar post", dto.ToPostDTOs(posts))
}

// GET /api/posts/pending — antrian moderasi
func (ctrl *PostController) GetPendingPosts(c *fiber.Ctx) error {
	posts, err := ctrl.Service.GetPendingPosts(c.UserContext())
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonOK(c, "Post menunggu moderasi", dto.ToPostDTOs(posts))
}

// GET /api/posts/user/:user_id/pending
func (ctrl *PostController) GetUserPendingPosts(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
	}
	posts, err := ctrl.Service.GetUserPendingPosts(c.UserContext(), userID)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonOK(c, "Post user menunggu moderasi", dto.ToPostDTOs(posts))
}

// GET /api/posts/user/:user_id
func (ctrl *PostController) GetUserPosts(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
	}
	posts, err := ctrl.Service.GetUserPosts(c.UserContext(), userID)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonOK(c, "Post user", dto.ToPostDTOs(posts))
}

// =====================================================
// PUT /api/posts/:post_id — update caption (pemilik atau admin)
// =====================================================
func (ctrl *PostController) UpdatePost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}

	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validatePost.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	principal, role := currentPrincipal(c)
	post, err := ctrl.Service.UpdateCaption(c.UserContext(), postID, principal, role, req.Caption)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonUpdated(c, "Post diperbarui", dto.ToPostDTO(*post))
}

// DELETE /api/posts/:post_id (ADMIN|MAIN_ADMIN)
func (ctrl *PostController) DeletePost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}
	if err := ctrl.Service.DeletePost(c.UserContext(), postID); err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonDeleted(c, "Post dihapus", nil)
}

// DELETE /api/posts/:post_id/user (pemilik atau admin)
func (ctrl *PostController) DeleteUserPost(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}
	principal, role := currentPrincipal(c)
	if err := ctrl.Service.DeleteOwnedPost(c.UserContext(), postID, principal, role); err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonDeleted(c, "Post dihapus", nil)
}

// =====================================================
// POST /api/posts/:post_id/reaction (form: username, reactionType)
// =====================================================
func (ctrl *PostController) AddReaction(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}

	var req dto.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validatePost.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := ctrl.Service.AddReaction(c.UserContext(), postID, req.Username, req.ReactionType)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonOK(c, "Reaksi tersimpan", dto.ToReactionDTO(*row))
}

// POST /api/posts/:post_id/comment (form: username, text)
func (ctrl *PostController) AddComment(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validatePost.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := ctrl.Service.AddComment(c.UserContext(), postID, req.Username, req.Text)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonCreated(c, "Komentar tersimpan", dto.ToCommentDTO(*row))
}

// =====================================================
// GET /api/posts/:post_id/comments?page&size
// Urutan deterministik: created_at ASC.
// =====================================================
func (ctrl *PostController) GetComments(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}

	p := helper.ResolvePaging(c, 10, 100)
	rows, total, err := ctrl.Service.GetComments(c.UserContext(), postID, p.Page, p.PerPage)
	if err != nil {
		return jsonFromErr(c, err)
	}

	out := make([]dto.CommentDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToCommentDTO(r))
	}
	return helper.JsonList(c, "Komentar", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// GET /api/posts/:post_id/reactions?page&size
func (ctrl *PostController) GetReactions(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}

	p := helper.ResolvePaging(c, 10, 100)
	rows, total, err := ctrl.Service.GetReactions(c.UserContext(), postID, p.Page, p.PerPage)
	if err != nil {
		return jsonFromErr(c, err)
	}

	out := make([]dto.ReactionDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToReactionDTO(r))
	}
	return helper.JsonList(c, "Reaksi", out, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// =====================================================
// GET /api/posts/:post_id/reactions/summary (publik)
// Identitas pemanggil dibaca opportunistik dari token (kalau ada).
// =====================================================
func (ctrl *PostController) GetReactionSummary(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "post_id tidak valid")
	}

	principal, _ := c.Locals("user_name").(string)
	summary, err := ctrl.Service.ReactionSummary(c.UserContext(), postID, principal)
	if err != nil {
		return jsonFromErr(c, err)
	}
	return helper.JsonOK(c, "Ringkasan reaksi", summary)
}

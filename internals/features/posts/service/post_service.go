// file: internals/features/posts/service/post_service.go
package service

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ardu_backend/internals/constants"
	"ardu_backend/internals/features/posts/dto"
	"ardu_backend/internals/features/posts/model"
	UserModel "ardu_backend/internals/features/users/user/model"
)

// Batas baris yang dibaca untuk reaction summary (sama seperti sistem lama).
const reactionSummaryLimit = 1000

// MediaStore adalah kontrak ke penyimpanan media eksternal (Cloudinary).
type MediaStore interface {
	UploadMedia(ctx context.Context, fh *multipart.FileHeader) (publicURL, publicID string, err error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

type PostService struct {
	DB    *gorm.DB
	Media MediaStore
}

func NewPostService(db *gorm.DB, media MediaStore) *PostService {
	return &PostService{DB: db, Media: media}
}

// =====================================================
// CREATE
// - story  → auto-approved, kedaluwarsa +24 jam
// - post   → kedaluwarsa +7 hari; auto-approved hanya kalau
//   penulisnya admin (dari role ATAU ada di tabel admins)
// =====================================================
func (s *PostService) CreatePost(ctx context.Context, userID uuid.UUID, fh *multipart.FileHeader, caption string, story bool) (*model.PostModel, error) {
	var user UserModel.UserModel
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, err
	}

	if fh == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File media wajib diisi untuk post")
	}

	contentURL, publicID, err := s.Media.UploadMedia(ctx, fh)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := model.PostModel{
		PostContentURL:      contentURL,
		PostContentPublicID: &publicID,
		PostCaption:         caption,
		PostUserID:          user.ID,
		PostCreatedAt:       now,
	}

	if story {
		post.PostType = model.PostTypeStory
		post.PostExpiresAt = now.Add(model.StoryTTL)
		post.PostIsApproved = true // story langsung tayang
	} else {
		post.PostType = model.PostTypePost
		post.PostExpiresAt = now.Add(model.PostTTL)
		post.PostIsApproved = s.isAdminAuthor(ctx, &user)
	}

	if err := s.DB.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	post.User = &user
	return &post, nil
}

// isAdminAuthor: admin dideteksi dari role string (case-insensitive)
// ATAU keberadaan email di tabel admins.
func (s *PostService) isAdminAuthor(ctx context.Context, user *UserModel.UserModel) bool {
	if constants.IsAdminRole(user.Role) {
		return true
	}
	var count int64
	if err := s.DB.WithContext(ctx).
		Table("admins").
		Where("email = ?", strings.ToLower(user.Email)).
		Count(&count).Error; err != nil {
		log.Printf("[ERROR] Gagal cek tabel admins untuk %s: %v", user.Email, err)
		return false
	}
	return count > 0
}

// =====================================================
// MODERASI
// =====================================================

func (s *PostService) SetApproval(ctx context.Context, postID uuid.UUID, approved bool) (*model.PostModel, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.PostIsApproved = approved
	if err := s.DB.WithContext(ctx).
		Model(post).
		Update("post_is_approved", approved).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPendingPosts(ctx context.Context) ([]model.PostModel, error) {
	var posts []model.PostModel
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("post_is_approved = ?", false).
		Order("post_created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (s *PostService) GetUserPendingPosts(ctx context.Context, userID uuid.UUID) ([]model.PostModel, error) {
	var posts []model.PostModel
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("post_user_id = ? AND post_is_approved = ?", userID, false).
		Order("post_created_at DESC").
		Find(&posts).Error
	return posts, err
}

// =====================================================
// READ
// =====================================================

// GetVisiblePosts: approved DAN belum kedaluwarsa, dievaluasi terhadap
// timestamp sekarang (post kedaluwarsa berhenti muncul tanpa sweeper).
func (s *PostService) GetVisiblePosts(ctx context.Context) ([]model.PostModel, error) {
	var posts []model.PostModel
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("post_is_approved = ? AND post_expires_at > ?", true, time.Now()).
		Order("post_created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uuid.UUID) ([]model.PostModel, error) {
	var posts []model.PostModel
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("post_user_id = ?", userID).
		Order("post_created_at DESC").
		Find(&posts).Error
	return posts, err
}

// =====================================================
// REAKSI (upsert atomik, satu reaksi aktif per user per post)
// =====================================================

func (s *PostService) AddReaction(ctx context.Context, postID uuid.UUID, username, reactionType string) (*model.ReactionModel, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	row := model.ReactionModel{
		ReactionType:      reactionType,
		ReactionPostID:    postID,
		ReactionUserID:    user.ID,
		ReactionCreatedAt: time.Now(),
	}
	// INSERT ... ON CONFLICT (post, user) DO UPDATE: pengganti
	// delete-then-insert yang tidak atomik di sistem lama.
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "reaction_post_id"}, {Name: "reaction_user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"reaction_type":       reactionType,
			"reaction_created_at": row.ReactionCreatedAt,
		}),
	}).Create(&row).Error; err != nil {
		return nil, err
	}

	// Baca ulang row hasil akhir (saat conflict, id lama yang bertahan).
	var saved model.ReactionModel
	if err := s.DB.WithContext(ctx).
		Where("reaction_post_id = ? AND reaction_user_id = ?", postID, user.ID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *PostService) GetReactions(ctx context.Context, postID uuid.UUID, page, size int) ([]model.ReactionModel, int64, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, 0, err
	}
	var total int64
	if err := s.DB.WithContext(ctx).
		Model(&model.ReactionModel{}).
		Where("reaction_post_id = ?", postID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.ReactionModel
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("reaction_post_id = ?", postID).
		Order("reaction_created_at ASC, reaction_id ASC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error
	return rows, total, err
}

// ReactionSummary: hitung reaksi per tipe (max 1000 baris) + reaksi milik
// pemanggil (nil kalau tidak login / tidak dikenal).
func (s *PostService) ReactionSummary(ctx context.Context, postID uuid.UUID, currentUsername string) (*dto.ReactionSummaryDTO, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	var rows []model.ReactionModel
	if err := s.DB.WithContext(ctx).
		Where("reaction_post_id = ?", postID).
		Order("reaction_created_at ASC, reaction_id ASC").
		Limit(reactionSummaryLimit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	summary := dto.ReactionSummaryDTO{
		Counts: make(map[string]int64, 4),
		Total:  int64(len(rows)),
	}
	for _, r := range rows {
		summary.Counts[r.ReactionType]++
	}

	if currentUsername != "" {
		if user, err := s.resolveUser(ctx, currentUsername); err == nil {
			for _, r := range rows {
				if r.ReactionUserID == user.ID {
					t := r.ReactionType
					summary.UserReaction = &t
					break
				}
			}
		}
	}
	return &summary, nil
}

// =====================================================
// KOMENTAR
// =====================================================

func (s *PostService) AddComment(ctx context.Context, postID uuid.UUID, username, text string) (*model.CommentModel, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}
	// Tidak ada auto-create user untuk admin di sini: admin harus
	// di-link dulu lewat endpoint link-user.
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	comment := model.CommentModel{
		CommentText:      text,
		CommentPostID:    postID,
		CommentUserID:    user.ID,
		CommentCreatedAt: time.Now(),
	}
	if err := s.DB.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.User = user
	return &comment, nil
}

func (s *PostService) GetComments(ctx context.Context, postID uuid.UUID, page, size int) ([]model.CommentModel, int64, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, 0, err
	}
	var total int64
	if err := s.DB.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("comment_post_id = ?", postID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.CommentModel
	err := s.DB.WithContext(ctx).
		Preload("User").
		Where("comment_post_id = ?", postID).
		Order("comment_created_at ASC, comment_id ASC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error
	return rows, total, err
}

// =====================================================
// UPDATE / DELETE (cek kepemilikan)
// =====================================================

// UpdateCaption: hanya pemilik post (match username-atau-email) atau
// ADMIN/MAIN_ADMIN yang boleh mengubah caption.
func (s *PostService) UpdateCaption(ctx context.Context, postID uuid.UUID, principal, role string, caption *string) (*model.PostModel, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwnerOrAdmin(ctx, post, principal, role); err != nil {
		return nil, err
	}

	if caption != nil {
		post.PostCaption = *caption
		if err := s.DB.WithContext(ctx).
			Model(post).
			Update("post_caption", *caption).Error; err != nil {
			return nil, err
		}
	}
	return post, nil
}

// DeletePost: jalur admin (role sudah dicek di route).
func (s *PostService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	return s.deletePost(ctx, post)
}

// DeleteOwnedPost: jalur user biasa, pemilik atau admin.
func (s *PostService) DeleteOwnedPost(ctx context.Context, postID uuid.UUID, principal, role string) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.authorizeOwnerOrAdmin(ctx, post, principal, role); err != nil {
		return err
	}
	return s.deletePost(ctx, post)
}

func (s *PostService) deletePost(ctx context.Context, post *model.PostModel) error {
	// Hapus media remote best-effort: gagal hanya dicatat, post tetap dihapus.
	if post.PostContentPublicID != nil && *post.PostContentPublicID != "" {
		resourceType := "image"
		if strings.Contains(post.PostContentURL, "/video/") {
			resourceType = "video"
		}
		if err := s.Media.Destroy(ctx, *post.PostContentPublicID, resourceType); err != nil {
			log.Printf("[WARNING] Gagal hapus media %s: %v", *post.PostContentPublicID, err)
		}
	}

	// Post memiliki comments & reactions: hapus anak-anaknya dalam satu
	// transaksi bersama post-nya.
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_post_id = ?", post.PostID).Delete(&model.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reaction_post_id = ?", post.PostID).Delete(&model.ReactionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PostModel{}, "post_id = ?", post.PostID).Error
	})
}

func (s *PostService) authorizeOwnerOrAdmin(ctx context.Context, post *model.PostModel, principal, role string) error {
	if constants.IsAdminRole(role) {
		return nil
	}
	current, err := s.resolveUser(ctx, principal)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, "Anda hanya boleh mengubah post milik sendiri")
	}
	if post.PostUserID != current.ID && !constants.IsAdminRole(current.Role) {
		return fiber.NewError(fiber.StatusForbidden, "Anda hanya boleh mengubah post milik sendiri")
	}
	return nil
}

/* ===============================
   Internal lookups
=================================*/

func (s *PostService) findPost(ctx context.Context, postID uuid.UUID) (*model.PostModel, error) {
	var post model.PostModel
	if err := s.DB.WithContext(ctx).First(&post, "post_id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Post tidak ditemukan")
		}
		return nil, err
	}
	return &post, nil
}

// resolveUser mencari user by username ATAU email (login principal bisa dua-duanya).
func (s *PostService) resolveUser(ctx context.Context, identifier string) (*UserModel.UserModel, error) {
	var user UserModel.UserModel
	if err := s.DB.WithContext(ctx).
		Where("user_name = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan: "+identifier)
		}
		return nil, err
	}
	return &user, nil
}

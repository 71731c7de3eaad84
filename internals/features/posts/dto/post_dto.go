package dto

import (
	"time"

	"github.com/google/uuid"

	"ardu_backend/internals/features/posts/model"
	UserModel "ardu_backend/internals/features/users/user/model"
)

/* ===============================
   Requests
=================================*/

// CreatePostRequest dibaca dari multipart form (file diambil terpisah).
type CreatePostRequest struct {
	UserID  string `form:"userId" validate:"required,uuid"`
	Caption string `form:"caption" validate:"max=2000"`
	Story   bool   `form:"story"`
}

type UpdatePostRequest struct {
	Caption *string `json:"caption" validate:"omitempty,max=2000"`
}

type ReactionRequest struct {
	Username     string `form:"username" validate:"required"`
	ReactionType string `form:"reactionType" validate:"required,max=30"`
}

type CommentRequest struct {
	Username string `form:"username" validate:"required"`
	Text     string `form:"text" validate:"required,max=2000"`
}

/* ===============================
   Responses
=================================*/

// UserLite: proyeksi user tanpa field sensitif (hash, nomor hp, OTP dsb).
type UserLite struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user_name"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	ImageURL *string   `json:"image_url,omitempty"`
}

func ToUserLite(u *UserModel.UserModel) *UserLite {
	if u == nil {
		return nil
	}
	return &UserLite{
		ID:       u.ID,
		UserName: u.UserName,
		Name:     u.Name,
		Role:     u.Role,
		ImageURL: u.ImageURL,
	}
}

type PostDTO struct {
	PostID     uuid.UUID `json:"post_id"`
	ContentURL string    `json:"content_url"`
	Caption    string    `json:"caption"`
	Type       string    `json:"type"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	User       *UserLite `json:"user,omitempty"`
}

func ToPostDTO(m model.PostModel) PostDTO {
	return PostDTO{
		PostID:     m.PostID,
		ContentURL: m.PostContentURL,
		Caption:    m.PostCaption,
		Type:       m.PostType,
		IsApproved: m.PostIsApproved,
		CreatedAt:  m.PostCreatedAt,
		ExpiresAt:  m.PostExpiresAt,
		User:       ToUserLite(m.User),
	}
}

func ToPostDTOs(ms []model.PostModel) []PostDTO {
	out := make([]PostDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPostDTO(m))
	}
	return out
}

type CommentDTO struct {
	CommentID uuid.UUID `json:"comment_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	User      *UserLite `json:"user,omitempty"`
}

func ToCommentDTO(m model.CommentModel) CommentDTO {
	return CommentDTO{
		CommentID: m.CommentID,
		Text:      m.CommentText,
		CreatedAt: m.CommentCreatedAt,
		User:      ToUserLite(m.User),
	}
}

type ReactionDTO struct {
	ReactionID uuid.UUID `json:"reaction_id"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	User       *UserLite `json:"user,omitempty"`
}

func ToReactionDTO(m model.ReactionModel) ReactionDTO {
	return ReactionDTO{
		ReactionID: m.ReactionID,
		Type:       m.ReactionType,
		CreatedAt:  m.ReactionCreatedAt,
		User:       ToUserLite(m.User),
	}
}

// ReactionSummaryDTO: agregat reaksi per tipe + reaksi milik pemanggil.
type ReactionSummaryDTO struct {
	Counts       map[string]int64 `json:"counts"`
	UserReaction *string          `json:"user_reaction"`
	Total        int64            `json:"total"`
}

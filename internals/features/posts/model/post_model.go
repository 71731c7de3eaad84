package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	UserModel "ardu_backend/internals/features/users/user/model"
)

const (
	PostTypePost  = "POST"
	PostTypeStory = "STORY"
)

// Window kedaluwarsa konten (dievaluasi saat query, tidak ada sweeper).
const (
	StoryTTL = 24 * time.Hour
	PostTTL  = 7 * 24 * time.Hour
)

type PostModel struct {
	PostID              uuid.UUID `gorm:"column:post_id;type:uuid;primaryKey" json:"post_id"`
	PostContentURL      string    `gorm:"column:post_content_url;type:text;not null" json:"post_content_url"`
	PostContentPublicID *string   `gorm:"column:post_content_public_id;size:500" json:"-"`
	PostCaption         string    `gorm:"column:post_caption;type:text" json:"post_caption"`
	PostType            string    `gorm:"column:post_type;type:varchar(20);not null;default:'POST'" json:"post_type"`
	PostIsApproved      bool      `gorm:"column:post_is_approved;not null;default:false" json:"post_is_approved"`

	PostUserID uuid.UUID `gorm:"column:post_user_id;type:uuid;not null;index" json:"post_user_id"`

	PostCreatedAt time.Time `gorm:"column:post_created_at;autoCreateTime" json:"post_created_at"`
	PostUpdatedAt time.Time `gorm:"column:post_updated_at;autoUpdateTime" json:"post_updated_at"`
	PostExpiresAt time.Time `gorm:"column:post_expires_at;not null;index" json:"post_expires_at"`

	// Relations (post memiliki comments & reactions, ikut terhapus bersama post)
	User      *UserModel.UserModel `gorm:"foreignKey:PostUserID" json:"user,omitempty"`
	Comments  []CommentModel       `gorm:"foreignKey:CommentPostID;constraint:OnDelete:CASCADE" json:"-"`
	Reactions []ReactionModel      `gorm:"foreignKey:ReactionPostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.PostID == uuid.Nil {
		p.PostID = uuid.New()
	}
	return nil
}

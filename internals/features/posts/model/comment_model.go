package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	UserModel "ardu_backend/internals/features/users/user/model"
)

type CommentModel struct {
	CommentID     uuid.UUID `gorm:"column:comment_id;type:uuid;primaryKey" json:"comment_id"`
	CommentText   string    `gorm:"column:comment_text;type:text;not null" json:"comment_text"`
	CommentPostID uuid.UUID `gorm:"column:comment_post_id;type:uuid;not null;index" json:"comment_post_id"`
	CommentUserID uuid.UUID `gorm:"column:comment_user_id;type:uuid;not null" json:"comment_user_id"`

	CommentCreatedAt time.Time `gorm:"column:comment_created_at;autoCreateTime" json:"comment_created_at"`

	// Relations
	User *UserModel.UserModel `gorm:"foreignKey:CommentUserID" json:"user,omitempty"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (m *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if m.CommentID == uuid.Nil {
		m.CommentID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	UserModel "ardu_backend/internals/features/users/user/model"
)

// ReactionModel: satu reaksi aktif per (post, user), dijaga unique index
// uq_reactions_post_user + upsert atomik di service (bukan delete-then-insert).
type ReactionModel struct {
	ReactionID     uuid.UUID `gorm:"column:reaction_id;type:uuid;primaryKey" json:"reaction_id"`
	ReactionType   string    `gorm:"column:reaction_type;type:varchar(30);not null" json:"reaction_type"`
	ReactionPostID uuid.UUID `gorm:"column:reaction_post_id;type:uuid;not null;uniqueIndex:uq_reactions_post_user" json:"reaction_post_id"`
	ReactionUserID uuid.UUID `gorm:"column:reaction_user_id;type:uuid;not null;uniqueIndex:uq_reactions_post_user" json:"reaction_user_id"`

	ReactionCreatedAt time.Time `gorm:"column:reaction_created_at;autoCreateTime" json:"reaction_created_at"`

	// Relations
	User *UserModel.UserModel `gorm:"foreignKey:ReactionUserID" json:"user,omitempty"`
}

func (ReactionModel) TableName() string {
	return "reactions"
}

func (m *ReactionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReactionID == uuid.Nil {
		m.ReactionID = uuid.New()
	}
	return nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AdminModel adalah identitas admin yang terpisah dari users.
// Hanya MAIN_ADMIN yang boleh membuat admin baru; link ke baris users
// (untuk komentar/reaksi) dilakukan lewat endpoint link-user eksplisit.
type AdminModel struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"size:100;not null" json:"name" validate:"required"`
	Email string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`

	PasswordHash string `gorm:"not null" json:"-"`

	MobileNumber   string `gorm:"size:20;not null" json:"mobile_number" validate:"required,min=8,max=20"`
	MobileVerified bool   `gorm:"not null;default:false" json:"-"`
	EmailVerified  bool   `gorm:"not null;default:false" json:"-"`

	IsMainAdmin bool `gorm:"not null;default:false" json:"is_main_admin"`

	// Optional profile
	WhatsappNumber *string         `gorm:"size:20" json:"whatsapp_number,omitempty"`
	FatherName     *string         `gorm:"size:100" json:"father_name,omitempty"`
	DateOfBirth    *datatypes.Date `json:"date_of_birth,omitempty"`
	DlNumber       *string         `gorm:"size:50" json:"dl_number,omitempty"`
	BadgeNumber    *string         `gorm:"size:50" json:"badge_number,omitempty"`
	Address        *string         `gorm:"size:255" json:"address,omitempty"`
	BloodGroup     *string         `gorm:"size:10" json:"blood_group,omitempty"`

	// Nominee details
	NomineeName          *string `gorm:"size:100" json:"nominee_name,omitempty"`
	NomineeRelationship  *string `gorm:"size:50" json:"nominee_relationship,omitempty"`
	NomineeContactNumber *string `gorm:"size:20" json:"nominee_contact_number,omitempty"`

	// Media
	ImageURL      *string `gorm:"size:1000" json:"image_url,omitempty"`
	ImagePublicID *string `gorm:"size:500" json:"-"`

	// Diisi oleh account-link eksplisit (bukan on-the-fly).
	UserID *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (AdminModel) TableName() string {
	return "admins"
}

func (a *AdminModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Role mengembalikan role efektif admin untuk klaim token.
func (a *AdminModel) Role() string {
	if a.IsMainAdmin {
		return "MAIN_ADMIN"
	}
	return "ADMIN"
}

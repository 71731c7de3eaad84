package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status approval member
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// UserModel merepresentasikan tabel users di database.
// Member baru dibuat PENDING + inactive sampai di-approve admin;
// approve memberi window keanggotaan 364 hari.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName string    `gorm:"size:50;not null;uniqueIndex" json:"user_name" validate:"required,min=3,max=50"`
	Name     string    `gorm:"size:100;not null" json:"name" validate:"required"`
	Email    string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`

	PasswordHash string `gorm:"not null" json:"-"`

	MobileNumber   string  `gorm:"size:20;not null;uniqueIndex" json:"-" validate:"required,min=8,max=20"`
	MobileVerified bool    `gorm:"not null;default:false" json:"-"`
	EmailVerified  bool    `gorm:"not null;default:false" json:"-"`
	WhatsappNumber *string `gorm:"size:20" json:"-"`

	Role           string `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	ApprovalStatus string `gorm:"type:varchar(20);not null;default:'PENDING'" json:"approval_status"`

	// Personal details
	FatherName  *string         `gorm:"size:100" json:"father_name,omitempty"`
	DateOfBirth *datatypes.Date `json:"date_of_birth,omitempty"`
	DlNumber    *string         `gorm:"size:50" json:"dl_number,omitempty"`
	BadgeNumber *string         `gorm:"size:50" json:"badge_number,omitempty"`
	Address     *string         `gorm:"size:255" json:"address,omitempty"`
	BloodGroup  *string         `gorm:"size:10" json:"blood_group,omitempty"`

	// Nominee details
	NomineeName          *string `gorm:"size:100" json:"nominee_name,omitempty"`
	NomineeRelationship  *string `gorm:"size:50" json:"nominee_relationship,omitempty"`
	NomineeContactNumber *string `gorm:"size:20" json:"nominee_contact_number,omitempty"`

	// Keanggotaan
	IsActive               bool            `gorm:"not null;default:false" json:"is_active"`
	DateOfJoiningOrRenewal *datatypes.Date `json:"date_of_joining_or_renewal,omitempty"`
	ExpiryDate             *datatypes.Date `json:"expiry_date,omitempty"`

	// Media
	ImageURL      *string `gorm:"size:1000" json:"image_url,omitempty"`
	ImagePublicID *string `gorm:"size:500" json:"-"`

	// OTP
	OtpCode   *string    `gorm:"size:10" json:"-"`
	OtpExpiry *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

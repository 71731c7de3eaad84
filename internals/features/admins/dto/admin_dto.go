package dto

import (
	"time"

	"gorm.io/datatypes"

	"ardu_backend/internals/features/admins/model"
)

type AdminCreateRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobile_number" validate:"required,min=8,max=20"`
	Password     string `json:"password" validate:"required,min=8"`

	// Optional fields
	DlNumber       *string `json:"dl_number"`
	FatherName     *string `json:"father_name"`
	DateOfBirth    *string `json:"date_of_birth"`
	BadgeNumber    *string `json:"badge_number"`
	Address        *string `json:"address"`
	BloodGroup     *string `json:"blood_group"`
	WhatsappNumber *string `json:"whatsapp_number"`

	// Nominee info
	NomineeName          *string `json:"nominee_name"`
	NomineeRelationship  *string `json:"nominee_relationship"`
	NomineeContactNumber *string `json:"nominee_contact_number"`
}

// AdminPatchRequest: patch bertipe (satu slot opsional per atribut) —
// pengganti map key/value bebas. Key JSON yang tidak dikenal otomatis
// diabaikan oleh decoder.
type AdminPatchRequest struct {
	Name           *string `json:"name"`
	DlNumber       *string `json:"dl_number"`
	FatherName     *string `json:"father_name"`
	DateOfBirth    *string `json:"date_of_birth"`
	BadgeNumber    *string `json:"badge_number"`
	Address        *string `json:"address"`
	BloodGroup     *string `json:"blood_group"`
	WhatsappNumber *string `json:"whatsapp_number"`
	Password       *string `json:"password"`
}

// Apply menerapkan patch ke model (kecuali password — di-hash pemanggil).
// date_of_birth yang tidak bisa diparse ISO (YYYY-MM-DD) dilewati diam-diam;
// field valid lain di request yang sama tetap diterapkan.
func (p *AdminPatchRequest) Apply(a *model.AdminModel) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.DlNumber != nil {
		a.DlNumber = p.DlNumber
	}
	if p.FatherName != nil {
		a.FatherName = p.FatherName
	}
	if p.DateOfBirth != nil {
		if t, err := time.Parse("2006-01-02", *p.DateOfBirth); err == nil {
			d := datatypes.Date(t)
			a.DateOfBirth = &d
		}
	}
	if p.BadgeNumber != nil {
		a.BadgeNumber = p.BadgeNumber
	}
	if p.Address != nil {
		a.Address = p.Address
	}
	if p.BloodGroup != nil {
		a.BloodGroup = p.BloodGroup
	}
	if p.WhatsappNumber != nil {
		a.WhatsappNumber = p.WhatsappNumber
	}
}

// ParseDateOfBirth: helper untuk create (format sama dengan patch).
func ParseDateOfBirth(s *string) *datatypes.Date {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

package dto

import (
	"time"

	"gorm.io/datatypes"

	"ardu_backend/internals/features/users/user/model"
)

// UserPatchRequest: partial update profil member. Field yang nil tidak
// disentuh; role, approval, dan window keanggotaan tidak bisa diubah
// lewat endpoint ini.
type UserPatchRequest struct {
	Name           *string `json:"name"`
	FatherName     *string `json:"father_name"`
	DateOfBirth    *string `json:"date_of_birth"`
	DlNumber       *string `json:"dl_number"`
	BadgeNumber    *string `json:"badge_number"`
	Address        *string `json:"address"`
	BloodGroup     *string `json:"blood_group"`
	WhatsappNumber *string `json:"whatsapp_number"`

	NomineeName          *string `json:"nominee_name"`
	NomineeRelationship  *string `json:"nominee_relationship"`
	NomineeContactNumber *string `json:"nominee_contact_number"`
}

// Apply menyalin field non-nil ke model. Tanggal lahir yang formatnya
// salah di-skip diam-diam; field lain tetap diterapkan.
func (r *UserPatchRequest) Apply(u *model.UserModel) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.FatherName != nil {
		u.FatherName = r.FatherName
	}
	if r.DateOfBirth != nil {
		if t, err := time.Parse("2006-01-02", *r.DateOfBirth); err == nil {
			d := datatypes.Date(t)
			u.DateOfBirth = &d
		}
	}
	if r.DlNumber != nil {
		u.DlNumber = r.DlNumber
	}
	if r.BadgeNumber != nil {
		u.BadgeNumber = r.BadgeNumber
	}
	if r.Address != nil {
		u.Address = r.Address
	}
	if r.BloodGroup != nil {
		u.BloodGroup = r.BloodGroup
	}
	if r.WhatsappNumber != nil {
		u.WhatsappNumber = r.WhatsappNumber
	}
	if r.NomineeName != nil {
		u.NomineeName = r.NomineeName
	}
	if r.NomineeRelationship != nil {
		u.NomineeRelationship = r.NomineeRelationship
	}
	if r.NomineeContactNumber != nil {
		u.NomineeContactNumber = r.NomineeContactNumber
	}
}

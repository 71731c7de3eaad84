package constants

import (
	"fmt"
	"strings"
)

const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleMainAdmin = "MAIN_ADMIN"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin atau main admin yang boleh mengakses fitur %s."
	ErrOnlyMainAdminCanAccess = "❌ Hanya main admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorMainAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyMainAdminCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleAdmin,
		RoleMainAdmin,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleMainAdmin,
	}
)

// IsAdminRole: perbandingan role case-insensitive (data lama tidak seragam).
func IsAdminRole(role string) bool {
	return strings.EqualFold(role, RoleAdmin) || strings.EqualFold(role, RoleMainAdmin)
}

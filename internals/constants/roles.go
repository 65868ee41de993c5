package constants

import "fmt"

// Role yang dikenal aplikasi. MASTER = pengurus pusat (lintas Rumah Quran),
// STAFF = pengurus yang terikat ke satu Rumah Quran.
const (
	RoleMaster = "MASTER"
	RoleStaff  = "STAFF"
)

// Template pesan error role
const (
	ErrOnlyMasterCanAccess = "❌ Hanya MASTER yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess  = "❌ Fitur %s hanya untuk pengurus terdaftar."
)

func RoleErrorMaster(feature string) string {
	return fmt.Sprintf(ErrOnlyMasterCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleMaster,
		RoleStaff,
	}

	MasterOnly = []string{
		RoleMaster,
	}
)

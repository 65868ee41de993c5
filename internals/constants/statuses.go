package constants

// Status pengajuan program kerja (sesuai ENUM di DB):
// submitted → revised/approved/rejected → completed
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusRevised   = "revised"
	SubmissionStatusApproved  = "approved"
	SubmissionStatusRejected  = "rejected"
	SubmissionStatusCompleted = "completed"
)

var SubmissionStatuses = []string{
	SubmissionStatusSubmitted,
	SubmissionStatusRevised,
	SubmissionStatusApproved,
	SubmissionStatusRejected,
	SubmissionStatusCompleted,
}

func IsValidSubmissionStatus(s string) bool {
	for _, v := range SubmissionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Status pendaftaran santri
const (
	EnrollmentActive    = "active"
	EnrollmentInactive  = "inactive"
	EnrollmentGraduated = "graduated"
	EnrollmentDropped   = "dropped"
)

var EnrollmentStatuses = []string{
	EnrollmentActive,
	EnrollmentInactive,
	EnrollmentGraduated,
	EnrollmentDropped,
}

func IsValidEnrollmentStatus(s string) bool {
	for _, v := range EnrollmentStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Status kelulusan santri
const (
	GraduationNotGraduated = "not_graduated"
	GraduationGraduated    = "graduated"
	GraduationDroppedOut   = "dropped_out"
)

var GraduationStatuses = []string{
	GraduationNotGraduated,
	GraduationGraduated,
	GraduationDroppedOut,
}

func IsValidGraduationStatus(s string) bool {
	for _, v := range GraduationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

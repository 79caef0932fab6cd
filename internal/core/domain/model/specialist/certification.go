package specialist

import (
	"fmt"

	"engage/internal/pkg/errs"
)

// CertificationStatus is the review state of a specialist's certification
// record for one category.
type CertificationStatus int

const (
	// CertificationNone means no certification record exists for the category.
	CertificationNone CertificationStatus = iota

	// CertificationPending means a record exists but has not been reviewed.
	CertificationPending

	// CertificationApproved means the record passed review. Only this status
	// enables the specialist for categories that require certification.
	CertificationApproved

	// CertificationRejected means the record failed review.
	CertificationRejected
)

// String returns the wire name of the certification status.
func (c CertificationStatus) String() string {
	switch c {
	case CertificationNone:
		return "NONE"
	case CertificationPending:
		return "PENDING"
	case CertificationApproved:
		return "APPROVED"
	case CertificationRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Validate checks if the certification status value is valid.
func (c CertificationStatus) Validate() error {
	switch c {
	case CertificationNone, CertificationPending, CertificationApproved, CertificationRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("certification status",
			fmt.Errorf("%d is not a valid certification status", c))
	}
}

// CategoryLink attaches a specialist to a service category together with
// their certification record for that exact category. An absent record is
// CertificationNone, which means "not enabled" for certification-gated
// categories, never an error.
type CategoryLink struct {
	CategoryID    int64
	Certification CertificationStatus
}

// Enabled reports whether the link qualifies the specialist for work in the
// category. Categories that do not require certification are always enabled;
// the rest require an approved record.
func (l CategoryLink) Enabled(requiresCertification bool) bool {
	if !requiresCertification {
		return true
	}
	return l.Certification == CertificationApproved
}

package models

// Role defines the user role type
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// Grade represents a letter grade on an enrollment
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
	// GradeInProgress is the placeholder grade before an instructor finalizes it
	GradeInProgress Grade = "IP"
)

// IsValid reports whether the grade is one of the known grades.
func (g Grade) IsValid() bool {
	switch g {
	case GradeA, GradeB, GradeC, GradeD, GradeF, GradeInProgress:
		return true
	}
	return false
}

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// IsValid reports whether the status is one of the known statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
// Only pending payments may still move to completed or failed.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

package models

// Course represents a course offered by the institution.
// InstructorID references the faculty or admin user who created the course.
type Course struct {
	ID           int64  `json:"id" db:"id"`
	Code         string `json:"code" db:"code"`
	Name         string `json:"name" db:"name"`
	Description  string `json:"description" db:"description"`
	InstructorID int64  `json:"instructorId" db:"instructor_id"`
	Credits      int    `json:"credits" db:"credits"`
}

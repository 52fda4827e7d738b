package models

import "time"

// Enrollment links one student to one course. Grade defaults to IP and
// attendance to 0 at creation; both are mutated only through the grade-update
// operation, which also refreshes LastUpdated.
type Enrollment struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Grade       Grade     `json:"grade" db:"grade" example:"IP"`
	Attendance  int       `json:"attendance" db:"attendance" example:"0"` // percentage, 0-100
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated"`
}

package dto

// CreateEnrollmentRequest is the payload for a student enrolling in a
// course. The studentId is always the authenticated caller.
type CreateEnrollmentRequest struct {
	CourseID int64 `json:"courseId" binding:"required,gt=0" example:"7"`
}

// UpdateEnrollmentRequest is the payload for the grade-update operation.
// Attendance is a pointer so an explicit 0 survives validation.
type UpdateEnrollmentRequest struct {
	Grade      string `json:"grade" binding:"required,oneof=A B C D F IP" example:"A"`
	Attendance *int   `json:"attendance" binding:"required,gte=0,lte=100" example:"95"`
}

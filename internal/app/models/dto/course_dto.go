package dto

// CreateCourseRequest is the payload for course creation. Any
// instructorId supplied by the client is ignored; the server always
// records the authenticated caller as the instructor.
type CreateCourseRequest struct {
	Code         string `json:"code" binding:"required" example:"CS101"`
	Name         string `json:"name" binding:"required" example:"Introduction to Computer Science"`
	Description  string `json:"description" binding:"required" example:"Fundamentals of programming"`
	Credits      int    `json:"credits" binding:"required,gt=0" example:"3"`
	InstructorID int64  `json:"instructorId,omitempty" swaggerignore:"true"`
}

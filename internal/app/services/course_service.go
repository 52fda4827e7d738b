package services

import (
	"context"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
)

// CourseService handles the course catalog.
type CourseService struct {
	store repositories.Store
}

// NewCourseService creates a new course service instance
func NewCourseService(store repositories.Store) *CourseService {
	return &CourseService{
		store: store,
	}
}

// ListCourses returns the full course catalog.
func (s *CourseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.store.GetAllCourses(ctx)
}

// ListByInstructor returns only the caller's own courses.
func (s *CourseService) ListByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	return s.store.GetCoursesByInstructor(ctx, instructorID)
}

// CreateCourse creates a course owned by the caller. Whatever
// instructorId the client sent is discarded: the authenticated caller
// always becomes the instructor.
func (s *CourseService) CreateCourse(ctx context.Context, callerID int64, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		InstructorID: callerID,
		Credits:      req.Credits,
	}

	if err := s.store.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

package services

import (
	"context"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// EnrollmentService handles enrollment creation, listing and grading.
type EnrollmentService struct {
	store repositories.Store
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(store repositories.Store) *EnrollmentService {
	return &EnrollmentService{
		store: store,
	}
}

// ListOwn returns the caller's own enrollments, never another user's.
func (s *EnrollmentService) ListOwn(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return s.store.GetEnrollmentsByUser(ctx, studentID)
}

// ListByCourse returns the enrollments of one course. Faculty callers
// must be the course's instructor; admins may inspect any course.
func (s *EnrollmentService) ListByCourse(ctx context.Context, callerID int64, callerRole models.Role, courseID int64) ([]*models.Enrollment, error) {
	course, err := s.store.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if callerRole != models.RoleAdmin && course.InstructorID != callerID {
		return nil, apperrors.NewForbiddenError("only the course's instructor may view its enrollments")
	}

	return s.store.GetEnrollmentsByCourse(ctx, courseID)
}

// Enroll creates an enrollment for the caller in the given course. The
// studentId is always the authenticated caller; the store applies the
// creation defaults (grade IP, attendance 0).
func (s *EnrollmentService) Enroll(ctx context.Context, callerID int64, courseID int64) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{
		StudentID: callerID,
		CourseID:  courseID,
	}

	if err := s.store.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// UpdateGrade overwrites an enrollment's grade and attendance. Faculty
// callers must instruct the enrollment's course; admins may grade any
// enrollment.
func (s *EnrollmentService) UpdateGrade(ctx context.Context, callerID int64, callerRole models.Role, enrollmentID int64, grade models.Grade, attendance int) (*models.Enrollment, error) {
	if !grade.IsValid() {
		return nil, apperrors.NewBadRequestError("unknown grade")
	}
	if attendance < 0 || attendance > 100 {
		return nil, apperrors.NewBadRequestError("attendance must be between 0 and 100")
	}

	enrollment, err := s.store.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	if callerRole != models.RoleAdmin {
		course, err := s.store.GetCourseByID(ctx, enrollment.CourseID)
		if err != nil {
			return nil, err
		}
		if course.InstructorID != callerID {
			return nil, apperrors.NewForbiddenError("only the course's instructor may update this enrollment")
		}
	}

	return s.store.UpdateEnrollment(ctx, enrollmentID, grade, attendance)
}

package repositories

import (
	"context"

	"github.com/campushub/campushub/internal/app/models"
)

// Store is the persistence contract for the whole application. Two
// engines implement it: the volatile MemoryStore and the durable
// PostgresStore. Every operation must behave identically across the
// two; callers never know which engine they are talking to.
//
// Not-found and uniqueness failures surface as the sentinel errors in
// internal/pkg/apperrors, so callers can branch with errors.Is
// regardless of the engine.
type Store interface {
	// Users
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// Courses
	GetAllCourses(ctx context.Context) ([]*models.Course, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	GetCoursesByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error

	// Enrollments
	GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetEnrollmentsByUser(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	GetEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	UpdateEnrollment(ctx context.Context, id int64, grade models.Grade, attendance int) (*models.Enrollment, error)

	// Payments
	GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error)
	GetPaymentsByUser(ctx context.Context, studentID int64) ([]*models.Payment, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) (*models.Payment, error)
}

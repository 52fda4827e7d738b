package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// MemoryStore is the volatile Store engine. All state lives in
// in-process maps guarded by one RWMutex and is lost on restart. The
// id counter is owned by the store instance; there is no process-wide
// shared state.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[int64]*models.User
	courses     map[int64]*models.Course
	enrollments map[int64]*models.Enrollment
	payments    map[int64]*models.Payment
	nextID      int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int64]*models.User),
		courses:     make(map[int64]*models.Course),
		enrollments: make(map[int64]*models.Enrollment),
		payments:    make(map[int64]*models.Payment),
		nextID:      1,
	}
}

// allocID hands out the next surrogate key. Callers must hold the
// write lock.
func (s *MemoryStore) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// GetUser retrieves a user by ID.
func (s *MemoryStore) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// GetUserByUsername retrieves a user by username.
func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// CreateUser persists a new user and assigns its ID. Usernames are
// unique across the store.
func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return apperrors.ErrUsernameAlreadyExists
		}
	}

	user.ID = s.allocID()
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// GetAllCourses retrieves every course, ordered by ID.
func (s *MemoryStore) GetAllCourses(_ context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]*models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		c := *course
		courses = append(courses, &c)
	}
	sortCoursesByID(courses)
	return courses, nil
}

// GetCourseByID retrieves a course by ID.
func (s *MemoryStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	c := *course
	return &c, nil
}

// GetCoursesByInstructor retrieves the courses taught by one instructor.
func (s *MemoryStore) GetCoursesByInstructor(_ context.Context, instructorID int64) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var courses []*models.Course
	for _, course := range s.courses {
		if course.InstructorID == instructorID {
			c := *course
			courses = append(courses, &c)
		}
	}
	sortCoursesByID(courses)
	return courses, nil
}

// CreateCourse persists a new course and assigns its ID. Course codes
// are unique and the instructor must exist.
func (s *MemoryStore) CreateCourse(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.courses {
		if existing.Code == course.Code {
			return apperrors.ErrCourseAlreadyExists
		}
	}
	if _, ok := s.users[course.InstructorID]; !ok {
		return apperrors.ErrUserNotFound
	}

	course.ID = s.allocID()
	stored := *course
	s.courses[course.ID] = &stored
	return nil
}

// GetEnrollmentByID retrieves an enrollment by ID.
func (s *MemoryStore) GetEnrollmentByID(_ context.Context, id int64) (*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	enrollment, ok := s.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	e := *enrollment
	return &e, nil
}

// GetEnrollmentsByUser retrieves the enrollments of one student.
func (s *MemoryStore) GetEnrollmentsByUser(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var enrollments []*models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID {
			e := *enrollment
			enrollments = append(enrollments, &e)
		}
	}
	sortEnrollmentsByID(enrollments)
	return enrollments, nil
}

// GetEnrollmentsByCourse retrieves the enrollments of one course.
func (s *MemoryStore) GetEnrollmentsByCourse(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var enrollments []*models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.CourseID == courseID {
			e := *enrollment
			enrollments = append(enrollments, &e)
		}
	}
	sortEnrollmentsByID(enrollments)
	return enrollments, nil
}

// CreateEnrollment persists a new enrollment with the creation
// defaults: grade IP, attendance 0, lastUpdated now. The referenced
// student and course must exist and the (student, course) pair must
// not already be enrolled.
func (s *MemoryStore) CreateEnrollment(_ context.Context, enrollment *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[enrollment.StudentID]; !ok {
		return apperrors.ErrUserNotFound
	}
	if _, ok := s.courses[enrollment.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for _, existing := range s.enrollments {
		if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID {
			return apperrors.ErrAlreadyEnrolled
		}
	}

	enrollment.ID = s.allocID()
	enrollment.Grade = models.GradeInProgress
	enrollment.Attendance = 0
	enrollment.LastUpdated = time.Now()
	stored := *enrollment
	s.enrollments[enrollment.ID] = &stored
	return nil
}

// UpdateEnrollment overwrites grade and attendance and refreshes
// lastUpdated. Returns the updated record, or not-found if the id does
// not exist.
func (s *MemoryStore) UpdateEnrollment(_ context.Context, id int64, grade models.Grade, attendance int) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enrollment, ok := s.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	enrollment.Grade = grade
	enrollment.Attendance = attendance
	enrollment.LastUpdated = time.Now()

	e := *enrollment
	return &e, nil
}

// GetPaymentByID retrieves a payment by ID.
func (s *MemoryStore) GetPaymentByID(_ context.Context, id int64) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	p := *payment
	return &p, nil
}

// GetPaymentsByUser retrieves the payments of one student.
func (s *MemoryStore) GetPaymentsByUser(_ context.Context, studentID int64) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payments []*models.Payment
	for _, payment := range s.payments {
		if payment.StudentID == studentID {
			p := *payment
			payments = append(payments, &p)
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}

// CreatePayment persists a new payment, assigns its ID and stamps
// createdAt. The referenced student must exist.
func (s *MemoryStore) CreatePayment(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[payment.StudentID]; !ok {
		return apperrors.ErrUserNotFound
	}

	payment.ID = s.allocID()
	payment.CreatedAt = time.Now()
	stored := *payment
	s.payments[payment.ID] = &stored
	return nil
}

// UpdatePaymentStatus moves a payment to a new status and returns the
// updated record.
func (s *MemoryStore) UpdatePaymentStatus(_ context.Context, id int64, status models.PaymentStatus) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment, ok := s.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}

	payment.Status = status
	p := *payment
	return &p, nil
}

func sortCoursesByID(courses []*models.Course) {
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
}

func sortEnrollmentsByID(enrollments []*models.Enrollment) {
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].ID < enrollments[j].ID })
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/dberrors"
)

// Constraint names from migrations/001_init.sql, used to translate
// database errors into the engine-independent sentinels.
const (
	constraintUsernameUnique   = "users_username_key"
	constraintCourseCodeUnique = "courses_code_key"
	constraintEnrollmentUnique = "enrollments_student_course_key"

	constraintCourseInstructorFK  = "courses_instructor_id_fkey"
	constraintEnrollmentStudentFK = "enrollments_student_id_fkey"
	constraintEnrollmentCourseFK  = "enrollments_course_id_fkey"
	constraintPaymentStudentFK    = "payments_student_id_fkey"
)

// PostgresStore is the durable Store engine backed by a pgx connection
// pool. Uniqueness and referential integrity are enforced by the
// schema; this layer translates constraint violations into the same
// sentinel errors the memory engine returns.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// GetUser retrieves a user by ID.
func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, password, role, full_name, email
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.FullName,
		&user.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password, role, full_name, email
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := s.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Role,
		&user.FullName,
		&user.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by username: %w", err)
	}

	return &user, nil
}

// CreateUser persists a new user and assigns its ID.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password, role, full_name, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query,
		user.Username, user.Password, user.Role, user.FullName, user.Email,
	).Scan(&user.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintUsernameUnique) {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetAllCourses retrieves every course, ordered by ID.
func (s *PostgresStore) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT id, code, name, description, instructor_id, credits
		FROM courses
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

// GetCourseByID retrieves a course by ID.
func (s *PostgresStore) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, code, name, description, instructor_id, credits
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := s.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Code,
		&course.Name,
		&course.Description,
		&course.InstructorID,
		&course.Credits,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetCoursesByInstructor retrieves the courses taught by one instructor.
func (s *PostgresStore) GetCoursesByInstructor(ctx context.Context, instructorID int64) ([]*models.Course, error) {
	query := `
		SELECT id, code, name, description, instructor_id, credits
		FROM courses
		WHERE instructor_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, instructorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCourses(rows)
}

// CreateCourse persists a new course and assigns its ID.
func (s *PostgresStore) CreateCourse(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (code, name, description, instructor_id, credits)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query,
		course.Code, course.Name, course.Description, course.InstructorID, course.Credits,
	).Scan(&course.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintCourseCodeUnique) {
			return apperrors.ErrCourseAlreadyExists
		}
		if dberrors.IsForeignKeyConstraint(err, constraintCourseInstructorFK) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetEnrollmentByID retrieves an enrollment by ID.
func (s *PostgresStore) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, grade, attendance, last_updated
		FROM enrollments
		WHERE id = $1
	`

	var enrollment models.Enrollment
	err := s.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.Grade,
		&enrollment.Attendance,
		&enrollment.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// GetEnrollmentsByUser retrieves the enrollments of one student.
func (s *PostgresStore) GetEnrollmentsByUser(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return s.getEnrollmentsBy(ctx, "student_id", studentID)
}

// GetEnrollmentsByCourse retrieves the enrollments of one course.
func (s *PostgresStore) GetEnrollmentsByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	return s.getEnrollmentsBy(ctx, "course_id", courseID)
}

func (s *PostgresStore) getEnrollmentsBy(ctx context.Context, column string, value int64) ([]*models.Enrollment, error) {
	query := fmt.Sprintf(`
		SELECT id, student_id, course_id, grade, attendance, last_updated
		FROM enrollments
		WHERE %s = $1
		ORDER BY id
	`, column)

	rows, err := s.db.Query(ctx, query, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.Grade,
			&enrollment.Attendance,
			&enrollment.LastUpdated,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// CreateEnrollment persists a new enrollment with the creation
// defaults: grade IP, attendance 0, lastUpdated now.
func (s *PostgresStore) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.Grade = models.GradeInProgress
	enrollment.Attendance = 0
	enrollment.LastUpdated = time.Now()

	query := `
		INSERT INTO enrollments (student_id, course_id, grade, attendance, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query,
		enrollment.StudentID, enrollment.CourseID, enrollment.Grade, enrollment.Attendance, enrollment.LastUpdated,
	).Scan(&enrollment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, constraintEnrollmentUnique) {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyConstraint(err, constraintEnrollmentCourseFK) {
			return apperrors.ErrCourseNotFound
		}
		if dberrors.IsForeignKeyConstraint(err, constraintEnrollmentStudentFK) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// UpdateEnrollment overwrites grade and attendance, refreshes
// last_updated and returns the updated record.
func (s *PostgresStore) UpdateEnrollment(ctx context.Context, id int64, grade models.Grade, attendance int) (*models.Enrollment, error) {
	query := `
		UPDATE enrollments
		SET grade = $1, attendance = $2, last_updated = $3
		WHERE id = $4
		RETURNING id, student_id, course_id, grade, attendance, last_updated
	`

	var enrollment models.Enrollment
	err := s.db.QueryRow(ctx, query, grade, attendance, time.Now(), id).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.Grade,
		&enrollment.Attendance,
		&enrollment.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error updating enrollment: %w", err)
	}

	return &enrollment, nil
}

// GetPaymentByID retrieves a payment by ID.
func (s *PostgresStore) GetPaymentByID(ctx context.Context, id int64) (*models.Payment, error) {
	query := `
		SELECT id, student_id, amount, description, status, created_at
		FROM payments
		WHERE id = $1
	`

	var payment models.Payment
	err := s.db.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.StudentID,
		&payment.Amount,
		&payment.Description,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving payment: %w", err)
	}

	return &payment, nil
}

// GetPaymentsByUser retrieves the payments of one student.
func (s *PostgresStore) GetPaymentsByUser(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	query := `
		SELECT id, student_id, amount, description, status, created_at
		FROM payments
		WHERE student_id = $1
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.StudentID,
			&payment.Amount,
			&payment.Description,
			&payment.Status,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}

// CreatePayment persists a new payment, assigns its ID and stamps
// created_at.
func (s *PostgresStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	payment.CreatedAt = time.Now()

	query := `
		INSERT INTO payments (student_id, amount, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query,
		payment.StudentID, payment.Amount, payment.Description, payment.Status, payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		if dberrors.IsForeignKeyConstraint(err, constraintPaymentStudentFK) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating payment: %w", err)
	}

	return nil
}

// UpdatePaymentStatus moves a payment to a new status and returns the
// updated record.
func (s *PostgresStore) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET status = $1
		WHERE id = $2
		RETURNING id, student_id, amount, description, status, created_at
	`

	var payment models.Payment
	err := s.db.QueryRow(ctx, query, status, id).Scan(
		&payment.ID,
		&payment.StudentID,
		&payment.Amount,
		&payment.Description,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error updating payment status: %w", err)
	}

	return &payment, nil
}

func scanCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Name,
			&course.Description,
			&course.InstructorID,
			&course.Credits,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

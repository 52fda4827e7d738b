package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

type enrollmentFixture struct {
	store      repositories.Store
	svc        *EnrollmentService
	student    *models.User
	instructor *models.User
	outsider   *models.User
	admin      *models.User
	course     *models.Course
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()
	ctx := context.Background()
	store := repositories.NewMemoryStore()
	courses := NewCourseService(store)

	f := &enrollmentFixture{
		store:      store,
		svc:        NewEnrollmentService(store),
		student:    seedUser(t, store, "alice", models.RoleStudent),
		instructor: seedUser(t, store, "prof", models.RoleFaculty),
		outsider:   seedUser(t, store, "other-prof", models.RoleFaculty),
		admin:      seedUser(t, store, "admin", models.RoleAdmin),
	}

	course, err := courses.CreateCourse(ctx, f.instructor.ID, &dto.CreateCourseRequest{
		Code:        "CS101",
		Name:        "Intro to CS",
		Description: "Fundamentals",
		Credits:     3,
	})
	require.NoError(t, err)
	f.course = course
	return f
}

func TestEnrollDefaultsAndOwnership(t *testing.T) {
	ctx := context.Background()
	f := newEnrollmentFixture(t)

	enrollment, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, enrollment.StudentID)
	assert.Equal(t, models.GradeInProgress, enrollment.Grade)
	assert.Equal(t, 0, enrollment.Attendance)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	f := newEnrollmentFixture(t)

	_, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)

	_, err = f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnrollUnknownCourse(t *testing.T) {
	ctx := context.Background()
	f := newEnrollmentFixture(t)

	_, err := f.svc.Enroll(ctx, f.student.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestListOwnReturnsOnlyCallerEnrollments(t *testing.T) {
	ctx := context.Background()
	f := newEnrollmentFixture(t)

	bob := seedUser(t, f.store, "bob", models.RoleStudent)
	_, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)
	_, err = f.svc.Enroll(ctx, bob.ID, f.course.ID)
	require.NoError(t, err)

	own, err := f.svc.ListOwn(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.student.ID, own[0].StudentID)
}

func TestListByCourseRequiresInstructorship(t *testing.T) {
	ctx := context.Background()
	f := newEnrollmentFixture(t)

	_, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)

	// The course's own instructor may list
	got, err := f.svc.ListByCourse(ctx, f.instructor.ID, models.RoleFaculty, f.course.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Other faculty may not
	_, err = f.svc.ListByCourse(ctx, f.outsider.ID, models.RoleFaculty, f.course.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Admins may inspect any course
	got, err = f.svc.ListByCourse(ctx, f.admin.ID, models.RoleAdmin, f.course.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpdateGradeRequiresInstructorship(t *testing.T) {
	ctx := context.Background()
	f := newEnrollmentFixture(t)

	enrollment, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateGrade(ctx, f.outsider.ID, models.RoleFaculty, enrollment.ID, models.GradeA, 90)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := f.svc.UpdateGrade(ctx, f.instructor.ID, models.RoleFaculty, enrollment.ID, models.GradeB, 85)
	require.NoError(t, err)
	assert.Equal(t, models.GradeB, updated.Grade)
	assert.Equal(t, 85, updated.Attendance)

	// Admin override
	updated, err = f.svc.UpdateGrade(ctx, f.admin.ID, models.RoleAdmin, enrollment.ID, models.GradeA, 95)
	require.NoError(t, err)
	assert.Equal(t, models.GradeA, updated.Grade)
}

func TestUpdateGradeValidation(t *testing.T) {
	ctx := context.Background()
	f := newEnrollmentFixture(t)

	enrollment, err := f.svc.Enroll(ctx, f.student.ID, f.course.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateGrade(ctx, f.instructor.ID, models.RoleFaculty, enrollment.ID, models.Grade("Z"), 50)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.UpdateGrade(ctx, f.instructor.ID, models.RoleFaculty, enrollment.ID, models.GradeA, 101)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.UpdateGrade(ctx, f.instructor.ID, models.RoleFaculty, enrollment.ID, models.GradeA, -1)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.svc.UpdateGrade(ctx, f.instructor.ID, models.RoleFaculty, 999, models.GradeA, 50)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

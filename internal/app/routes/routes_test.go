package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/app/controllers"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/auth"
)

type apiFixture struct {
	router *gin.Engine
	store  repositories.Store
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repositories.NewMemoryStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExpiry: time.Hour,
		TokenIssuer: "campushub-test",
	})

	authService := services.NewAuthService(store, jwtService, zerolog.Nop())
	courseService := services.NewCourseService(store)
	enrollmentService := services.NewEnrollmentService(store)
	paymentService := services.NewPaymentService(store)

	router := gin.New()
	SetupRouter(router,
		controllers.NewAuthController(authService),
		controllers.NewCourseController(courseService),
		controllers.NewEnrollmentController(enrollmentService),
		controllers.NewPaymentController(paymentService),
		middleware.NewAuthMiddleware(jwtService),
	)

	return &apiFixture{router: router, store: store}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" field of the response envelope.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data, "response has no data field: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func (f *apiFixture) register(t *testing.T, username, role string) {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/register", "", gin.H{
		"username": username,
		"password": "s3cret-pass",
		"role":     role,
		"fullName": "Test User",
		"email":    username + "@campus.edu",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (f *apiFixture) login(t *testing.T, username string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/login", "", gin.H{
		"username": username,
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeData(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (f *apiFixture) signup(t *testing.T, username, role string) string {
	t.Helper()
	f.register(t, username, role)
	return f.login(t, username)
}

func (f *apiFixture) createCourse(t *testing.T, token, code string) int64 {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/courses", token, gin.H{
		"code":        code,
		"name":        "Course " + code,
		"description": "A test course",
		"credits":     3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var course models.Course
	decodeData(t, rec, &course)
	return course.ID
}

func TestHealthEndpoint(t *testing.T) {
	f := setupAPI(t)

	rec := f.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	f := setupAPI(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user"},
		{http.MethodGet, "/api/courses"},
		{http.MethodGet, "/api/courses/instructor"},
		{http.MethodGet, "/api/courses/1/enrollments"},
		{http.MethodPost, "/api/courses"},
		{http.MethodGet, "/api/enrollments"},
		{http.MethodPost, "/api/enrollments"},
		{http.MethodPatch, "/api/enrollments/1"},
		{http.MethodGet, "/api/payments"},
		{http.MethodPost, "/api/payments"},
		{http.MethodPatch, "/api/payments/1/status"},
	}

	for _, p := range paths {
		rec := f.do(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}

	rec := f.do(t, http.MethodGet, "/api/courses", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	f := setupAPI(t)

	token := f.signup(t, "alice", "student")

	rec := f.do(t, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	decodeData(t, rec, &user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleStudent, user.Role)

	// The password hash must never appear in responses
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := setupAPI(t)

	f.register(t, "alice", "student")

	rec := f.do(t, http.MethodPost, "/api/register", "", gin.H{
		"username": "alice",
		"password": "other-pass",
		"role":     "faculty",
		"fullName": "Another Alice",
		"email":    "alice2@campus.edu",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginBadPassword(t *testing.T) {
	f := setupAPI(t)

	f.register(t, "alice", "student")

	rec := f.do(t, http.MethodPost, "/api/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStudentCannotCreateCourse(t *testing.T) {
	f := setupAPI(t)

	token := f.signup(t, "alice", "student")

	rec := f.do(t, http.MethodPost, "/api/courses", token, gin.H{
		"code":        "CS101",
		"name":        "Intro",
		"description": "d",
		"credits":     3,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Nothing was persisted
	listRec := f.do(t, http.MethodGet, "/api/courses", token, nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var courses []models.Course
	decodeData(t, listRec, &courses)
	assert.Empty(t, courses)
}

func TestInstructorCourseListingIsScoped(t *testing.T) {
	f := setupAPI(t)

	profA := f.signup(t, "prof-a", "faculty")
	profB := f.signup(t, "prof-b", "faculty")

	f.createCourse(t, profA, "CS101")
	f.createCourse(t, profB, "MA201")

	rec := f.do(t, http.MethodGet, "/api/courses/instructor", profA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var own []models.Course
	decodeData(t, rec, &own)
	require.Len(t, own, 1)
	assert.Equal(t, "CS101", own[0].Code)

	// The shared catalog still shows both
	rec = f.do(t, http.MethodGet, "/api/courses", profA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Course
	decodeData(t, rec, &all)
	assert.Len(t, all, 2)

	// Students have no instructor listing
	student := f.signup(t, "alice", "student")
	rec = f.do(t, http.MethodGet, "/api/courses/instructor", student, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEnrollmentLifecycle(t *testing.T) {
	f := setupAPI(t)

	prof := f.signup(t, "prof", "faculty")
	student := f.signup(t, "alice", "student")
	courseID := f.createCourse(t, prof, "CS101")

	rec := f.do(t, http.MethodPost, "/api/enrollments", student, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var enrollment models.Enrollment
	decodeData(t, rec, &enrollment)
	assert.Equal(t, models.GradeInProgress, enrollment.Grade)
	assert.Equal(t, 0, enrollment.Attendance)

	// The caller sees exactly their enrollment
	rec = f.do(t, http.MethodGet, "/api/enrollments", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var own []models.Enrollment
	decodeData(t, rec, &own)
	require.Len(t, own, 1)
	assert.Equal(t, enrollment.ID, own[0].ID)

	// Enrolling twice in the same course conflicts
	rec = f.do(t, http.MethodPost, "/api/enrollments", student, gin.H{"courseId": courseID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unknown course
	rec = f.do(t, http.MethodPost, "/api/enrollments", student, gin.H{"courseId": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Faculty cannot enroll
	rec = f.do(t, http.MethodPost, "/api/enrollments", prof, gin.H{"courseId": courseID})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGradeUpdateAuthorization(t *testing.T) {
	f := setupAPI(t)

	prof := f.signup(t, "prof", "faculty")
	outsider := f.signup(t, "other-prof", "faculty")
	student := f.signup(t, "alice", "student")
	courseID := f.createCourse(t, prof, "CS101")

	rec := f.do(t, http.MethodPost, "/api/enrollments", student, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var enrollment models.Enrollment
	decodeData(t, rec, &enrollment)

	path := fmt.Sprintf("/api/enrollments/%d", enrollment.ID)

	// Students cannot grade at all
	rec = f.do(t, http.MethodPatch, path, student, gin.H{"grade": "A", "attendance": 95})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Faculty who do not instruct the course are rejected
	rec = f.do(t, http.MethodPatch, path, outsider, gin.H{"grade": "A", "attendance": 95})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The course's instructor may grade
	rec = f.do(t, http.MethodPatch, path, prof, gin.H{"grade": "A", "attendance": 95})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated models.Enrollment
	decodeData(t, rec, &updated)
	assert.Equal(t, models.GradeA, updated.Grade)
	assert.Equal(t, 95, updated.Attendance)

	// Invalid payloads are rejected by binding
	rec = f.do(t, http.MethodPatch, path, prof, gin.H{"grade": "Z", "attendance": 95})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPatch, path, prof, gin.H{"grade": "A", "attendance": 101})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/enrollments/999", prof, gin.H{"grade": "A", "attendance": 95})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCourseRosterVisibility(t *testing.T) {
	f := setupAPI(t)

	prof := f.signup(t, "prof", "faculty")
	outsider := f.signup(t, "other-prof", "faculty")
	admin := f.signup(t, "boss", "admin")
	student := f.signup(t, "alice", "student")
	courseID := f.createCourse(t, prof, "CS101")

	rec := f.do(t, http.MethodPost, "/api/enrollments", student, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code)

	path := fmt.Sprintf("/api/courses/%d/enrollments", courseID)

	rec = f.do(t, http.MethodGet, path, prof, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var roster []models.Enrollment
	decodeData(t, rec, &roster)
	assert.Len(t, roster, 1)

	rec = f.do(t, http.MethodGet, path, outsider, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, path, student, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPaymentLifecycle(t *testing.T) {
	f := setupAPI(t)

	student := f.signup(t, "alice", "student")
	admin := f.signup(t, "boss", "admin")

	rec := f.do(t, http.MethodPost, "/api/payments", student, gin.H{
		"amount":      1250.50,
		"description": "Fall semester tuition",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var payment models.Payment
	decodeData(t, rec, &payment)
	assert.Equal(t, models.PaymentPending, payment.Status)

	// Only the owner sees it
	rec = f.do(t, http.MethodGet, "/api/payments", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var own []models.Payment
	decodeData(t, rec, &own)
	require.Len(t, own, 1)

	statusPath := fmt.Sprintf("/api/payments/%d/status", payment.ID)

	// Students cannot resolve payments
	rec = f.do(t, http.MethodPatch, statusPath, student, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin resolves the payment
	rec = f.do(t, http.MethodPatch, statusPath, admin, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resolved models.Payment
	decodeData(t, rec, &resolved)
	assert.Equal(t, models.PaymentCompleted, resolved.Status)

	// Terminal payments never change again
	rec = f.do(t, http.MethodPatch, statusPath, admin, gin.H{"status": "failed"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Only terminal target states are accepted
	rec = f.do(t, http.MethodPatch, statusPath, admin, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Admins cannot submit payments
	rec = f.do(t, http.MethodPost, "/api/payments", admin, gin.H{"amount": 50, "description": "Fee"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestValidationFailures(t *testing.T) {
	f := setupAPI(t)

	// Registration payloads are validated
	rec := f.do(t, http.MethodPost, "/api/register", "", gin.H{
		"username": "al",
		"password": "x",
		"role":     "wizard",
		"fullName": "",
		"email":    "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	student := f.signup(t, "alice", "student")

	// Enrollment requires a course id
	rec = f.do(t, http.MethodPost, "/api/enrollments", student, gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Payments require a positive amount
	rec = f.do(t, http.MethodPost, "/api/payments", student, gin.H{"amount": -5, "description": "Fee"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

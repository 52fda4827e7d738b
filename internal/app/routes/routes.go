package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/controllers"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	paymentController *controllers.PaymentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public routes ---
	api.POST("/register", authController.Register)
	api.POST("/login", authController.Login)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/user", authController.GetProfile)

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)

			coursesFaculty := courses.Group("")
			coursesFaculty.Use(authMiddleware.RoleRequired(models.RoleFaculty))
			{
				coursesFaculty.GET("/instructor", courseController.ListInstructorCourses)
			}

			// Faculty and admin may view a course's roster; the service
			// still checks that faculty callers instruct that course
			coursesGrading := courses.Group("")
			coursesGrading.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				coursesGrading.GET("/:id/enrollments", enrollmentController.ListCourseEnrollments)
			}

			coursesCreate := courses.Group("")
			coursesCreate.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				coursesCreate.POST("", courseController.CreateCourse)
			}
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.ListOwnEnrollments)

			enrollmentsStudent := enrollments.Group("")
			enrollmentsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				enrollmentsStudent.POST("", enrollmentController.CreateEnrollment)
			}

			enrollmentsGrading := enrollments.Group("")
			enrollmentsGrading.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleAdmin))
			{
				enrollmentsGrading.PATCH("/:id", enrollmentController.UpdateEnrollment)
			}
		}

		payments := authenticated.Group("/payments")
		{
			payments.GET("", paymentController.ListOwnPayments)

			paymentsStudent := payments.Group("")
			paymentsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				paymentsStudent.POST("", paymentController.CreatePayment)
			}

			paymentsAdmin := payments.Group("")
			paymentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				paymentsAdmin.PATCH("/:id/status", paymentController.UpdatePaymentStatus)
			}
		}
	}
}

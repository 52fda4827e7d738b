// Package services holds the business policy layer:
//   - AuthService: registration, login and profile lookup
//   - CourseService: course catalog and course creation
//   - EnrollmentService: enrollment creation, listing and grading
//   - PaymentService: tuition payment submission and resolution
//
// Coarse role gates live in the route middleware; the services enforce
// the finer policy rules: server-side forcing of ownership fields and
// per-course instructor checks.
package services

package models

import "time"

// Payment records a tuition payment submitted by a student.
type Payment struct {
	ID          int64         `json:"id" db:"id"`
	StudentID   int64         `json:"studentId" db:"student_id"`
	Amount      float64       `json:"amount" db:"amount" example:"1250.50"`
	Description string        `json:"description" db:"description"`
	Status      PaymentStatus `json:"status" db:"status" example:"pending"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
}

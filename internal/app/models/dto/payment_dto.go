package dto

// CreatePaymentRequest is the payload for a student submitting a tuition
// payment. The studentId is always the authenticated caller and the
// status always starts out pending.
type CreatePaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"1250.50"`
	Description string  `json:"description" binding:"required" example:"Fall semester tuition"`
}

// UpdatePaymentStatusRequest is the payload for resolving a pending
// payment. Only the two terminal states are accepted.
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed failed" example:"completed"`
}

package services

import (
	"context"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// PaymentService handles tuition payment submission and resolution.
type PaymentService struct {
	store repositories.Store
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(store repositories.Store) *PaymentService {
	return &PaymentService{
		store: store,
	}
}

// ListOwn returns the caller's own payments, never another user's.
func (s *PaymentService) ListOwn(ctx context.Context, studentID int64) ([]*models.Payment, error) {
	return s.store.GetPaymentsByUser(ctx, studentID)
}

// Create records a payment submitted by the caller. The studentId is
// always the authenticated caller and every payment starts out pending.
func (s *PaymentService) Create(ctx context.Context, callerID int64, req *dto.CreatePaymentRequest) (*models.Payment, error) {
	payment := &models.Payment{
		StudentID:   callerID,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      models.PaymentPending,
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// Resolve moves a pending payment to completed or failed. Terminal
// states never change again.
func (s *PaymentService) Resolve(ctx context.Context, paymentID int64, status models.PaymentStatus) (*models.Payment, error) {
	if !status.IsValid() || !status.IsTerminal() {
		return nil, apperrors.NewBadRequestError("status must be completed or failed")
	}

	payment, err := s.store.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.Status.IsTerminal() {
		return nil, apperrors.ErrPaymentFinalized
	}

	return s.store.UpdatePaymentStatus(ctx, paymentID, status)
}

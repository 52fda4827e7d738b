package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
)

// PaymentController handles tuition payment operations
type PaymentController struct {
	paymentService *services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// ListOwnPayments retrieves the caller's own payments
// @Summary List the caller's payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Payment} "Payments"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /payments [get]
func (c *PaymentController) ListOwnPayments(ctx *gin.Context) {
	payments, err := c.paymentService.ListOwn(ctx, middleware.CallerID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(payments))
}

// CreatePayment handles a student submitting a payment
// @Summary Submit a tuition payment
// @Description Students only; the caller becomes the payment's student and the status starts pending
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentRequest true "Payment information"
// @Success 201 {object} dto.APIResponse{data=models.Payment} "Payment created"
// @Failure 400 {object} dto.ValidationErrors "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /payments [post]
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	payment, err := c.paymentService.Create(ctx, middleware.CallerID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(payment))
}

// UpdatePaymentStatus resolves a pending payment
// @Summary Resolve a pending payment
// @Description Admin only; moves a pending payment to completed or failed
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param request body dto.UpdatePaymentStatusRequest true "Terminal status"
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Payment updated"
// @Failure 400 {object} dto.ValidationErrors "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Payment already finalized"
// @Router /payments/{id}/status [patch]
func (c *PaymentController) UpdatePaymentStatus(ctx *gin.Context) {
	paymentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid payment ID")
		errorDetail = errorDetail.WithDetails("Payment ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.HandleValidationError(err))
		return
	}

	payment, err := c.paymentService.Resolve(ctx, paymentID, models.PaymentStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(payment))
}

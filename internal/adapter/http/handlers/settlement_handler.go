package handlers

import (
	"errors"
	"log"
	"net/http"

	request "labclin/internal/adapter/http/dto/request"
	response "labclin/internal/adapter/http/dto/response"
	"labclin/internal/usecase"
	"labclin/internal/usecase/interfaces"
	"labclin/pkg"

	"github.com/gin-gonic/gin"
)

// SettlementHandler handles HTTP requests for payment settlement.

type SettlementHandler struct {
	usecase usecase.ISettlementUseCase
}

func NewSettlementHandler(uc usecase.ISettlementUseCase) *SettlementHandler {
	return &SettlementHandler{usecase: uc}
}

// StartPayment opens a gateway transaction for a quotation.
//
// @Summary      Start a payment attempt
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body body request.StartPaymentRequest true "quotation and gateway selection"
// @Success      200 {object} response.StartPaymentResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      409 {object} pkg.HTTPError
// @Failure      502 {object} pkg.HTTPError
// @Router       /payments/start [post]
func (h *SettlementHandler) StartPayment(c *gin.Context) {
	var req request.StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[settlement][handler] start-payment invalid body err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[settlement][handler] start-payment begin quotation_id=%s method=%s", req.QuotationID, req.Method)

	result, err := h.usecase.StartPayment(c.Request.Context(), req.QuotationID, req.Method)
	if err != nil {
		log.Printf("[settlement][handler] start-payment failed quotation_id=%s err=%v", req.QuotationID, err)
		appErr := mapSettlementError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[settlement][handler] start-payment success quotation_id=%s payment_id=%s", req.QuotationID, result.Payment.ID)

	c.JSON(http.StatusOK, response.StartPaymentResponse{
		PaymentID:     result.Payment.ID,
		PaymentNumber: result.Payment.Numero,
		CorrelationID: result.Payment.CorrelationID,
		RedirectURL:   result.RedirectURL,
	})
}

// ConfirmPayment applies the synchronous-gateway outcome inline.
//
// @Summary      Confirm a payment after returning from the hosted UI
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body body request.ConfirmPaymentRequest true "correlation id and gateway confirmation token"
// @Success      200 {object} response.ConfirmPaymentResponse
// @Failure      400 {object} pkg.HTTPError
// @Failure      404 {object} pkg.HTTPError
// @Failure      502 {object} pkg.HTTPError
// @Router       /payments/confirm [post]
func (h *SettlementHandler) ConfirmPayment(c *gin.Context) {
	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[settlement][handler] confirm invalid body err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[settlement][handler] confirm begin correlation_id=%s", req.CorrelationID)

	result, err := h.usecase.ConfirmPayment(c.Request.Context(), req.CorrelationID, req.GatewayToken)
	if err != nil {
		log.Printf("[settlement][handler] confirm failed correlation_id=%s err=%v", req.CorrelationID, err)
		appErr := mapSettlementError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[settlement][handler] confirm success correlation_id=%s payment_status=%s", req.CorrelationID, result.Payment.Status)

	c.JSON(http.StatusOK, response.ConfirmPaymentResponse{
		Payment:   response.FromPaymentRecord(result.Payment),
		Quotation: response.FromQuotation(result.Quotation),
	})
}

// GetPaymentStatus returns the payment record for client polling.
//
// @Summary      Poll a payment attempt's status
// @Tags         payments
// @Produce      json
// @Param        correlation_id query string true "correlation id"
// @Success      200 {object} response.PaymentRecordResponse
// @Failure      404 {object} pkg.HTTPError
// @Router       /payments/status [get]
func (h *SettlementHandler) GetPaymentStatus(c *gin.Context) {
	correlationID := c.Query("correlation_id")

	p, err := h.usecase.GetByCorrelationID(c.Request.Context(), correlationID)
	if err != nil {
		log.Printf("[settlement][handler] status failed correlation_id=%s err=%v", correlationID, err)
		appErr := mapSettlementError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentRecord(p))
}

func mapSettlementError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuotationID), errors.Is(err, usecase.ErrUnknownPaymentMethod):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCorrelation):
		return pkg.NewDomainErrorSimple("INVALID_CORRELATION", "Malformed correlation id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidState):
		return pkg.NewDomainErrorSimple("QUOTATION_NOT_PAYABLE", "Quotation is not payable in its current state", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuotationExpired):
		return pkg.NewDomainErrorSimple("QUOTATION_EXPIRED", "Quotation expired", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrGatewayRejectedRequest):
		return pkg.NewDomainErrorSimple("GATEWAY_REJECTED_REQUEST", "Payment gateway rejected the request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuotationNotFound):
		return pkg.NewDomainErrorSimple("QUOTATION_NOT_FOUND", "Quotation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentAlreadyInProgress), errors.Is(err, usecase.ErrDuplicateCorrelation):
		return pkg.NewDomainErrorSimple("PAYMENT_IN_PROGRESS", "A payment is already in progress for this quotation", http.StatusConflict)
	case errors.Is(err, interfaces.ErrGatewayUnavailable):
		return pkg.NewDomainErrorSimple("GATEWAY_UNAVAILABLE", "Payment gateway unavailable, try again", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

package interfaces

import (
	"context"
	"errors"
	"time"

	"labclin/internal/domain/entities"
)

// Unit-of-work conflicts. Each names the row whose compare-and-swap
// condition failed inside the transaction.
var (
	ErrQuotationConflict   = errors.New("quotation status changed concurrently")
	ErrPaymentConflict     = errors.New("payment record already terminal")
	ErrCorrelationConflict = errors.New("correlation id already registered")
)

// ISettlementUnitOfWork executes the two-store writes of the settlement
// coordinator as single atomic units (DynamoDB transactions).
//
// OpenPayment persists a PENDING record (with its correlation-uniqueness
// guard) and moves the quotation into PAGO_EN_PROCESO in one transaction.
//
// CompleteAndSettle marks the record COMPLETED and the quotation PAGADA in
// one transaction; ErrQuotationConflict means the quotation left
// PAGO_EN_PROCESO concurrently and nothing was written.
//
// RejectAndRelease marks the record REJECTED and returns the quotation to
// PENDIENTE (clearing the selected method) in one transaction.

type ISettlementUnitOfWork interface {
	OpenPayment(ctx context.Context, p entities.PaymentRecord, from entities.QuotationStatus, fields QuotationUpdateFields) error
	CompleteAndSettle(ctx context.Context, paymentID, externalTransactionID, observations, quotationID string, confirmedAt time.Time) error
	RejectAndRelease(ctx context.Context, paymentID, observations, quotationID string) error
}

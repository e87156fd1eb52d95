package interfaces

import (
	"context"

	"labclin/internal/domain/entities"
)

// IPaymentRecordRepository abstracts DynamoDB persistence for PaymentRecord.
//
// Create enforces (gateway, correlation_id) uniqueness and returns a
// zero-value record (no error) on a duplicate, so the use case can surface a
// typed duplicate-correlation error.
//
// MarkCompleted/MarkRejected are compare-and-swap from PENDING only. When the
// record is already terminal they re-read and return it unchanged rather
// than failing: gateways redeliver outcomes and the second application must
// be a no-op.

type IPaymentRecordRepository interface {
	Create(ctx context.Context, p entities.PaymentRecord) (entities.PaymentRecord, error)
	GetByID(ctx context.Context, id string) (entities.PaymentRecord, error)
	GetByCorrelationID(ctx context.Context, correlationID string) (entities.PaymentRecord, error)
	FindPendingByQuotationID(ctx context.Context, quotationID string) (entities.PaymentRecord, error)
	MarkCompleted(ctx context.Context, id, externalTransactionID, observations string) (entities.PaymentRecord, error)
	MarkRejected(ctx context.Context, id, observations string) (entities.PaymentRecord, error)
	UpdateObservations(ctx context.Context, id, observations string) (entities.PaymentRecord, error)
}

package interfaces

import (
	"context"
	"time"

	"labclin/internal/domain/entities"
)

// QuotationUpdateFields carries the optional fields written alongside a
// status transition. Nil pointers leave the persisted value untouched; an
// empty-string PaymentMethodSelected clears it (declined-payment retry).
type QuotationUpdateFields struct {
	PaymentMethodSelected *string
	FechaSeleccionPago    *time.Time
	FechaConfirmacionPago *time.Time
}

// IQuotationRepository abstracts DynamoDB persistence for Quotation.
//
// Transition is a compare-and-swap update keyed on the previous status: it
// returns a zero-value Quotation (no error) when the persisted status no
// longer equals from, so callers can distinguish a lost race from a storage
// failure.

type IQuotationRepository interface {
	Create(ctx context.Context, q entities.Quotation) (entities.Quotation, error)
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
	Transition(ctx context.Context, id string, from, to entities.QuotationStatus, fields QuotationUpdateFields) (entities.Quotation, error)
	ListExpirable(ctx context.Context, now time.Time) ([]entities.Quotation, error)
}

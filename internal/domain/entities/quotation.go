package entities

import "time"

// QuotationStatus represents the lifecycle of a quotation (cotización).
//
// Domain notes:
//   - The settlement service is the source of truth for quotation/payment state.
//   - Only the settlement coordinator and the expiration checker mutate status.
//   - PAGADA and EXPIRADA are terminal; no further transitions are accepted.

type QuotationStatus string

const (
	QuotationStatusPendiente     QuotationStatus = "PENDIENTE"
	QuotationStatusAceptada      QuotationStatus = "ACEPTADA"
	QuotationStatusPagoEnProceso QuotationStatus = "PAGO_EN_PROCESO"
	QuotationStatusPagada        QuotationStatus = "PAGADA"
	QuotationStatusExpirada      QuotationStatus = "EXPIRADA"
)

// Terminal reports whether no further transitions are accepted from s.
func (s QuotationStatus) Terminal() bool {
	return s == QuotationStatusPagada || s == QuotationStatusExpirada
}

// CanTransitionTo encodes the quotation state machine:
//
//	PENDIENTE -> ACEPTADA -> PAGO_EN_PROCESO -> PAGADA
//	PAGO_EN_PROCESO -> PENDIENTE            (declined/cancelled, retry allowed)
//	PENDIENTE|ACEPTADA -> EXPIRADA          (expiration checker)
//	PAGO_EN_PROCESO -> PAGO_EN_PROCESO      (retry with a new gateway attempt)
func (s QuotationStatus) CanTransitionTo(to QuotationStatus) bool {
	switch s {
	case QuotationStatusPendiente:
		return to == QuotationStatusAceptada || to == QuotationStatusPagoEnProceso || to == QuotationStatusExpirada
	case QuotationStatusAceptada:
		return to == QuotationStatusPagoEnProceso || to == QuotationStatusExpirada
	case QuotationStatusPagoEnProceso:
		return to == QuotationStatusPagada || to == QuotationStatusPendiente || to == QuotationStatusPagoEnProceso
	default:
		return false
	}
}

// QuotationItem is one priced exam line. Items are immutable once the
// quotation leaves PENDIENTE.
type QuotationItem struct {
	ExamID    string  `json:"exam_id"`
	ExamName  string  `json:"exam_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Quotation is a priced, line-itemized offer for lab services awaiting
// payment.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Monetary invariant: Total == Subtotal - Discount and Total >= 0.
type Quotation struct {
	ID        string          `json:"id"`
	Numero    string          `json:"numero"`
	PatientID string          `json:"patient_id"`
	Items     []QuotationItem `json:"items"`
	Subtotal  float64         `json:"subtotal"`
	Discount  float64         `json:"discount"`
	Total     float64         `json:"total"`
	Status    QuotationStatus `json:"status"`

	PaymentMethodSelected string `json:"payment_method_selected,omitempty"`

	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	FechaExpiracion       time.Time `json:"fecha_expiracion"`
	FechaSeleccionPago    time.Time `json:"fecha_seleccion_pago"`
	FechaConfirmacionPago time.Time `json:"fecha_confirmacion_pago"`
}

// TotalsConsistent verifies the monetary invariant against the line items.
func (q Quotation) TotalsConsistent() bool {
	if q.Total < 0 || q.Discount < 0 {
		return false
	}
	return equalCents(q.Total, q.Subtotal-q.Discount)
}

// ExpiredAt reports whether the quotation deadline has passed at now.
func (q Quotation) ExpiredAt(now time.Time) bool {
	return !q.FechaExpiracion.IsZero() && now.After(q.FechaExpiracion)
}

// Amounts are decimal currency values; compare at cent precision to avoid
// float drift on summed lines.
func equalCents(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.005
}

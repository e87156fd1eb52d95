package response

import (
	"time"

	"labclin/internal/domain/entities"
)

type PaymentRecordResponse struct {
	PaymentID     string  `json:"payment_id"`
	Numero        string  `json:"numero"`
	QuotationID   string  `json:"quotation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Gateway       string  `json:"gateway"`
	CorrelationID string  `json:"correlation_id"`
	Status        string  `json:"status"`

	ExternalTransactionID string `json:"external_transaction_id,omitempty"`
	Observations          string `json:"observations,omitempty"`

	CreatedAt         time.Time  `json:"created_at"`
	FechaConfirmacion *time.Time `json:"fecha_confirmacion,omitempty"`
}

func FromPaymentRecord(p entities.PaymentRecord) PaymentRecordResponse {
	resp := PaymentRecordResponse{
		PaymentID:             p.ID,
		Numero:                p.Numero,
		QuotationID:           p.QuotationID,
		Amount:                p.Amount,
		Method:                p.Method,
		Gateway:               p.Gateway,
		CorrelationID:         p.CorrelationID,
		Status:                string(p.Status),
		ExternalTransactionID: p.ExternalTransactionID,
		Observations:          p.Observations,
		CreatedAt:             p.CreatedAt,
	}
	if !p.FechaConfirmacion.IsZero() {
		t := p.FechaConfirmacion
		resp.FechaConfirmacion = &t
	}
	return resp
}

// StartPaymentResponse is the body of a successful payment start.
type StartPaymentResponse struct {
	PaymentID     string `json:"payment_id"`
	PaymentNumber string `json:"payment_number"`
	CorrelationID string `json:"correlation_id"`
	RedirectURL   string `json:"redirect_url"`
}

// ConfirmPaymentResponse carries the payment record plus the resulting
// quotation snapshot.
type ConfirmPaymentResponse struct {
	Payment   PaymentRecordResponse `json:"payment"`
	Quotation QuotationResponse     `json:"quotation"`
}

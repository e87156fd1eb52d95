package entities

import "time"

// PaymentRecordStatus represents one payment attempt's outcome.
//
// A record is created PENDING when a gateway transaction is opened and
// reaches COMPLETED or REJECTED exactly once; terminal records are never
// mutated afterward (gateways may redeliver outcomes).

type PaymentRecordStatus string

const (
	PaymentStatusPending   PaymentRecordStatus = "PENDING"
	PaymentStatusCompleted PaymentRecordStatus = "COMPLETED"
	PaymentStatusRejected  PaymentRecordStatus = "REJECTED"
)

func (s PaymentRecordStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusRejected
}

// PaymentRecord is one attempt to settle a quotation through a specific
// gateway.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (correlation-index): correlation_id
//   - GSI2 (quotation_id-index): quotation_id
//
// At most one record per quotation may be PENDING or COMPLETED at a time;
// a quotation has at most one COMPLETED record ever.
type PaymentRecord struct {
	ID            string              `json:"id"`
	Numero        string              `json:"numero"`
	QuotationID   string              `json:"quotation_id"`
	PatientID     string              `json:"patient_id"`
	Amount        float64             `json:"amount"`
	Method        string              `json:"method"`
	Gateway       string              `json:"gateway"`
	CorrelationID string              `json:"correlation_id"`
	Status        PaymentRecordStatus `json:"status"`

	ExternalTransactionID string `json:"external_transaction_id,omitempty"`
	Observations          string `json:"observations,omitempty"`

	CreatedAt         time.Time `json:"created_at"`
	FechaConfirmacion time.Time `json:"fecha_confirmacion"`
}

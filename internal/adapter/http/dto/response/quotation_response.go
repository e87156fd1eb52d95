package response

import (
	"time"

	"labclin/internal/domain/entities"
)

type QuotationItemResponse struct {
	ExamID    string  `json:"exam_id"`
	ExamName  string  `json:"exam_name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

type QuotationResponse struct {
	QuotationID string                  `json:"quotation_id"`
	Numero      string                  `json:"numero"`
	PatientID   string                  `json:"patient_id"`
	Items       []QuotationItemResponse `json:"items"`
	Subtotal    float64                 `json:"subtotal"`
	Discount    float64                 `json:"discount"`
	Total       float64                 `json:"total"`
	Status      string                  `json:"status"`

	PaymentMethodSelected string `json:"payment_method_selected,omitempty"`

	CreatedAt             time.Time  `json:"created_at"`
	FechaExpiracion       time.Time  `json:"fecha_expiracion"`
	FechaSeleccionPago    *time.Time `json:"fecha_seleccion_pago,omitempty"`
	FechaConfirmacionPago *time.Time `json:"fecha_confirmacion_pago,omitempty"`
}

func FromQuotation(q entities.Quotation) QuotationResponse {
	items := make([]QuotationItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, QuotationItemResponse{
			ExamID:    it.ExamID,
			ExamName:  it.ExamName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}

	resp := QuotationResponse{
		QuotationID:           q.ID,
		Numero:                q.Numero,
		PatientID:             q.PatientID,
		Items:                 items,
		Subtotal:              q.Subtotal,
		Discount:              q.Discount,
		Total:                 q.Total,
		Status:                string(q.Status),
		PaymentMethodSelected: q.PaymentMethodSelected,
		CreatedAt:             q.CreatedAt,
		FechaExpiracion:       q.FechaExpiracion,
	}
	if !q.FechaSeleccionPago.IsZero() {
		t := q.FechaSeleccionPago
		resp.FechaSeleccionPago = &t
	}
	if !q.FechaConfirmacionPago.IsZero() {
		t := q.FechaConfirmacionPago
		resp.FechaConfirmacionPago = &t
	}
	return resp
}

package request

import (
	"errors"
	"time"

	"labclin/internal/usecase"
)

var ErrInvalidValidity = errors.New("invalid validity horizon")

type QuotationItemRequest struct {
	ExamID    string  `json:"exam_id" binding:"required"`
	ExamName  string  `json:"exam_name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"required"`
}

// QuotationCreateRequest is the payload accepted from the quotation-building
// flow. `valid_for_hours` sets the expiration horizon; it defaults to 72
// hours when omitted.
type QuotationCreateRequest struct {
	PatientID     string                 `json:"patient_id" binding:"required"`
	Items         []QuotationItemRequest `json:"items" binding:"required"`
	Discount      float64                `json:"discount"`
	ValidForHours int                    `json:"valid_for_hours"`
}

const defaultValidityHours = 72

func (r QuotationCreateRequest) ToInput() (usecase.CreateQuotationInput, error) {
	hours := r.ValidForHours
	if hours == 0 {
		hours = defaultValidityHours
	}
	if hours < 0 {
		return usecase.CreateQuotationInput{}, ErrInvalidValidity
	}

	items := make([]usecase.CreateQuotationItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, usecase.CreateQuotationItemInput{
			ExamID:    it.ExamID,
			ExamName:  it.ExamName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	return usecase.CreateQuotationInput{
		PatientID: r.PatientID,
		Items:     items,
		Discount:  r.Discount,
		ValidFor:  time.Duration(hours) * time.Hour,
	}, nil
}

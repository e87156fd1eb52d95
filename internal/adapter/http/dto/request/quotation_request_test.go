package request

import (
	"errors"
	"testing"
	"time"
)

func TestQuotationCreateRequest_ToInput(t *testing.T) {
	base := QuotationCreateRequest{
		PatientID: "patient-1",
		Items: []QuotationItemRequest{
			{ExamID: "exam-hem", ExamName: "Hemograma", Quantity: 2, UnitPrice: 15.5},
		},
		Discount: 5,
	}

	t.Run("defaults to 72 hours", func(t *testing.T) {
		in, err := base.ToInput()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.ValidFor != 72*time.Hour {
			t.Fatalf("expected 72h default, got %v", in.ValidFor)
		}
		if in.PatientID != "patient-1" || in.Discount != 5 {
			t.Fatalf("unexpected input %+v", in)
		}
		if len(in.Items) != 1 || in.Items[0].ExamID != "exam-hem" || in.Items[0].Quantity != 2 {
			t.Fatalf("unexpected items %+v", in.Items)
		}
	})

	t.Run("explicit validity", func(t *testing.T) {
		req := base
		req.ValidForHours = 24
		in, err := req.ToInput()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if in.ValidFor != 24*time.Hour {
			t.Fatalf("expected 24h, got %v", in.ValidFor)
		}
	})

	t.Run("negative validity", func(t *testing.T) {
		req := base
		req.ValidForHours = -1
		if _, err := req.ToInput(); !errors.Is(err, ErrInvalidValidity) {
			t.Fatalf("expected ErrInvalidValidity, got %v", err)
		}
	})
}

package entities

import (
	"testing"
	"time"
)

func TestQuotationStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to QuotationStatus
		want     bool
	}{
		{QuotationStatusPendiente, QuotationStatusAceptada, true},
		{QuotationStatusPendiente, QuotationStatusPagoEnProceso, true},
		{QuotationStatusPendiente, QuotationStatusExpirada, true},
		{QuotationStatusPendiente, QuotationStatusPagada, false},
		{QuotationStatusAceptada, QuotationStatusPagoEnProceso, true},
		{QuotationStatusAceptada, QuotationStatusExpirada, true},
		{QuotationStatusAceptada, QuotationStatusPendiente, false},
		{QuotationStatusPagoEnProceso, QuotationStatusPagada, true},
		{QuotationStatusPagoEnProceso, QuotationStatusPendiente, true},
		{QuotationStatusPagoEnProceso, QuotationStatusPagoEnProceso, true},
		{QuotationStatusPagoEnProceso, QuotationStatusExpirada, false},
		{QuotationStatusPagada, QuotationStatusPendiente, false},
		{QuotationStatusExpirada, QuotationStatusPendiente, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.want, got)
		}
	}
}

func TestQuotationStatus_Terminal(t *testing.T) {
	if !QuotationStatusPagada.Terminal() || !QuotationStatusExpirada.Terminal() {
		t.Fatalf("PAGADA and EXPIRADA must be terminal")
	}
	for _, s := range []QuotationStatus{QuotationStatusPendiente, QuotationStatusAceptada, QuotationStatusPagoEnProceso} {
		if s.Terminal() {
			t.Fatalf("%s must not be terminal", s)
		}
	}
}

func TestQuotation_TotalsConsistent(t *testing.T) {
	q := Quotation{Subtotal: 100, Discount: 15, Total: 85}
	if !q.TotalsConsistent() {
		t.Fatalf("expected consistent totals")
	}

	q.Total = 90
	if q.TotalsConsistent() {
		t.Fatalf("expected inconsistent totals")
	}

	q = Quotation{Subtotal: 10, Discount: -1, Total: 11}
	if q.TotalsConsistent() {
		t.Fatalf("negative discount must be inconsistent")
	}

	// Summed float lines drift below cent precision.
	q = Quotation{Subtotal: 0.1 + 0.2, Discount: 0, Total: 0.3}
	if !q.TotalsConsistent() {
		t.Fatalf("cent-precision comparison must absorb float drift")
	}
}

func TestQuotation_ExpiredAt(t *testing.T) {
	now := time.Now().UTC()

	q := Quotation{FechaExpiracion: now.Add(time.Minute)}
	if q.ExpiredAt(now) {
		t.Fatalf("future deadline must not be expired")
	}

	q.FechaExpiracion = now.Add(-time.Minute)
	if !q.ExpiredAt(now) {
		t.Fatalf("past deadline must be expired")
	}

	q.FechaExpiracion = time.Time{}
	if q.ExpiredAt(now) {
		t.Fatalf("zero deadline means no expiration")
	}
}

package response

import (
	"testing"
	"time"

	"labclin/internal/domain/entities"
)

func TestFromPaymentRecord(t *testing.T) {
	now := time.Now().UTC()

	t.Run("pending record", func(t *testing.T) {
		p := entities.PaymentRecord{
			ID: "pay-1", Numero: "PAG-202608-0001", QuotationID: "q-1",
			Amount: 26, Method: "hosted_checkout", Gateway: "hosted_checkout",
			CorrelationID: "cs_1", Status: entities.PaymentStatusPending,
			CreatedAt: now,
		}

		resp := FromPaymentRecord(p)
		if resp.PaymentID != "pay-1" || resp.Status != "PENDING" || resp.CorrelationID != "cs_1" {
			t.Fatalf("unexpected response %+v", resp)
		}
		if resp.FechaConfirmacion != nil {
			t.Fatalf("expected nil confirmation timestamp for a pending record")
		}
	})

	t.Run("completed record", func(t *testing.T) {
		p := entities.PaymentRecord{
			ID: "pay-1", Status: entities.PaymentStatusCompleted,
			ExternalTransactionID: "pi_9",
			FechaConfirmacion:     now,
		}

		resp := FromPaymentRecord(p)
		if resp.ExternalTransactionID != "pi_9" {
			t.Fatalf("expected external transaction id, got %q", resp.ExternalTransactionID)
		}
		if resp.FechaConfirmacion == nil || !resp.FechaConfirmacion.Equal(now) {
			t.Fatalf("unexpected confirmation timestamp %v", resp.FechaConfirmacion)
		}
	})
}

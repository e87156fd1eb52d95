package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"labclin/internal/domain/entities"
	"labclin/internal/usecase/interfaces"
	mock_interfaces "labclin/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestExpirationUseCase_Sweep(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)

	t.Run("listing error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuotationRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		uc := NewExpirationUseCase(repo, audit)

		repo.EXPECT().ListExpirable(gomock.Any(), gomock.Any()).Return(nil, errors.New("scan failed"))

		if _, err := uc.Sweep(context.Background()); err == nil {
			t.Fatalf("expected listing error to propagate")
		}
	})

	t.Run("expires pending and accepted, skips the rest", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuotationRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		uc := NewExpirationUseCase(repo, audit)

		candidates := []entities.Quotation{
			{ID: "q-1", Status: entities.QuotationStatusPendiente, FechaExpiracion: past},
			{ID: "q-2", Status: entities.QuotationStatusAceptada, FechaExpiracion: past},
			{ID: "q-3", Status: entities.QuotationStatusPagoEnProceso, FechaExpiracion: past},
		}
		repo.EXPECT().ListExpirable(gomock.Any(), gomock.Any()).Return(candidates, nil)
		repo.EXPECT().
			Transition(gomock.Any(), "q-1", entities.QuotationStatusPendiente, entities.QuotationStatusExpirada, interfaces.QuotationUpdateFields{}).
			Return(entities.Quotation{ID: "q-1", Status: entities.QuotationStatusExpirada}, nil)
		repo.EXPECT().
			Transition(gomock.Any(), "q-2", entities.QuotationStatusAceptada, entities.QuotationStatusExpirada, interfaces.QuotationUpdateFields{}).
			Return(entities.Quotation{ID: "q-2", Status: entities.QuotationStatusExpirada}, nil)
		audit.EXPECT().Record(gomock.Any(), "quotation_expired", "q-1", "", gomock.Any())
		audit.EXPECT().Record(gomock.Any(), "quotation_expired", "q-2", "", gomock.Any())

		n, err := uc.Sweep(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 2 {
			t.Fatalf("expected 2 expired, got %d", n)
		}
	})

	t.Run("lost compare-and-swap is skipped silently", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuotationRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		uc := NewExpirationUseCase(repo, audit)

		candidates := []entities.Quotation{
			{ID: "q-1", Status: entities.QuotationStatusPendiente, FechaExpiracion: past},
		}
		repo.EXPECT().ListExpirable(gomock.Any(), gomock.Any()).Return(candidates, nil)
		repo.EXPECT().
			Transition(gomock.Any(), "q-1", entities.QuotationStatusPendiente, entities.QuotationStatusExpirada, interfaces.QuotationUpdateFields{}).
			Return(entities.Quotation{}, nil)

		n, err := uc.Sweep(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 {
			t.Fatalf("expected 0 expired, got %d", n)
		}
	})

	t.Run("transition error does not abort the pass", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuotationRepository(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		uc := NewExpirationUseCase(repo, audit)

		candidates := []entities.Quotation{
			{ID: "q-1", Status: entities.QuotationStatusPendiente, FechaExpiracion: past},
			{ID: "q-2", Status: entities.QuotationStatusPendiente, FechaExpiracion: past},
		}
		repo.EXPECT().ListExpirable(gomock.Any(), gomock.Any()).Return(candidates, nil)
		repo.EXPECT().
			Transition(gomock.Any(), "q-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.Quotation{}, errors.New("throttled"))
		repo.EXPECT().
			Transition(gomock.Any(), "q-2", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.Quotation{ID: "q-2", Status: entities.QuotationStatusExpirada}, nil)
		audit.EXPECT().Record(gomock.Any(), "quotation_expired", "q-2", "", gomock.Any())

		n, err := uc.Sweep(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 1 {
			t.Fatalf("expected 1 expired, got %d", n)
		}
	})
}

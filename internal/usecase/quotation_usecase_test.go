package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"labclin/internal/domain/entities"
	mock_interfaces "labclin/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func validCreateInput() CreateQuotationInput {
	return CreateQuotationInput{
		PatientID: "patient-1",
		Items: []CreateQuotationItemInput{
			{ExamID: "exam-hem", ExamName: "Hemograma", Quantity: 2, UnitPrice: 15.5},
			{ExamID: "exam-glu", ExamName: "Glucosa", Quantity: 1, UnitPrice: 9},
		},
		Discount: 5,
		ValidFor: 72 * time.Hour,
	}
}

func TestQuotationUseCase_Create_Validations(t *testing.T) {
	uc := NewQuotationUseCase(nil, nil)

	t.Run("empty patient id", func(t *testing.T) {
		in := validCreateInput()
		in.PatientID = "  "
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidPatientID) {
			t.Fatalf("expected ErrInvalidPatientID, got %v", err)
		}
	})

	t.Run("no items", func(t *testing.T) {
		in := validCreateInput()
		in.Items = nil
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidQuotationItem) {
			t.Fatalf("expected ErrInvalidQuotationItem, got %v", err)
		}
	})

	t.Run("zero quantity item", func(t *testing.T) {
		in := validCreateInput()
		in.Items[0].Quantity = 0
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidQuotationItem) {
			t.Fatalf("expected ErrInvalidQuotationItem, got %v", err)
		}
	})

	t.Run("non positive unit price", func(t *testing.T) {
		in := validCreateInput()
		in.Items[1].UnitPrice = 0
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidQuotationItem) {
			t.Fatalf("expected ErrInvalidQuotationItem, got %v", err)
		}
	})

	t.Run("discount bigger than subtotal", func(t *testing.T) {
		in := validCreateInput()
		in.Discount = 1000
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidTotals) {
			t.Fatalf("expected ErrInvalidTotals, got %v", err)
		}
	})

	t.Run("negative discount", func(t *testing.T) {
		in := validCreateInput()
		in.Discount = -1
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidTotals) {
			t.Fatalf("expected ErrInvalidTotals, got %v", err)
		}
	})

	t.Run("non positive validity", func(t *testing.T) {
		in := validCreateInput()
		in.ValidFor = 0
		if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidExpiration) {
			t.Fatalf("expected ErrInvalidExpiration, got %v", err)
		}
	})
}

func TestQuotationUseCase_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIQuotationRepository(ctrl)
	sequences := mock_interfaces.NewMockISequenceRepository(ctrl)
	uc := NewQuotationUseCase(repo, sequences)

	sequences.EXPECT().Next(gomock.Any(), "COT", gomock.Any()).Return("COT-202608-0042", nil)

	var created entities.Quotation
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q entities.Quotation) (entities.Quotation, error) {
			created = q
			return q, nil
		})

	got, err := uc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if got.Numero != "COT-202608-0042" {
		t.Fatalf("unexpected numero %q", got.Numero)
	}
	if got.Status != entities.QuotationStatusPendiente {
		t.Fatalf("expected PENDIENTE, got %s", got.Status)
	}
	if created.Subtotal != 40 || created.Total != 35 {
		t.Fatalf("unexpected totals subtotal=%v total=%v", created.Subtotal, created.Total)
	}
	if !created.TotalsConsistent() {
		t.Fatalf("persisted quotation breaks the monetary invariant: %+v", created)
	}
	if len(created.Items) != 2 || created.Items[0].LineTotal != 31 {
		t.Fatalf("unexpected items %+v", created.Items)
	}
	if created.FechaExpiracion.IsZero() || !created.FechaExpiracion.After(created.CreatedAt) {
		t.Fatalf("expected expiration after creation, got %v", created.FechaExpiracion)
	}
}

func TestQuotationUseCase_Create_SequenceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIQuotationRepository(ctrl)
	sequences := mock_interfaces.NewMockISequenceRepository(ctrl)
	uc := NewQuotationUseCase(repo, sequences)

	sequences.EXPECT().Next(gomock.Any(), "COT", gomock.Any()).Return("", errors.New("counter unavailable"))

	if _, err := uc.Create(context.Background(), validCreateInput()); err == nil {
		t.Fatalf("expected sequence error to propagate")
	}
}

func TestQuotationUseCase_GetByID(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		uc := NewQuotationUseCase(nil, nil)
		if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidQuotationID) {
			t.Fatalf("expected ErrInvalidQuotationID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuotationRepository(ctrl)
		uc := NewQuotationUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quotation{}, nil)

		if _, err := uc.GetByID(context.Background(), "q-1"); !errors.Is(err, ErrQuotationNotFound) {
			t.Fatalf("expected ErrQuotationNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuotationRepository(ctrl)
		uc := NewQuotationUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quotation{ID: "q-1"}, nil)

		q, err := uc.GetByID(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.ID != "q-1" {
			t.Fatalf("unexpected quotation %+v", q)
		}
	})
}

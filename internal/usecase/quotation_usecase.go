package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"labclin/internal/domain/entities"
	"labclin/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidPatientID     = errors.New("invalid patient id")
	ErrInvalidQuotationItem = errors.New("invalid quotation item")
	ErrInvalidTotals        = errors.New("quotation totals inconsistent")
	ErrInvalidExpiration    = errors.New("invalid expiration horizon")
)

const quotationNumberPrefix = "COT"

// IQuotationUseCase exposes the quotation read model plus creation with an
// expiration horizon. Status mutation is reserved to the settlement
// coordinator and the expiration checker.

type IQuotationUseCase interface {
	Create(ctx context.Context, in CreateQuotationInput) (entities.Quotation, error)
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
}

type CreateQuotationItemInput struct {
	ExamID    string
	ExamName  string
	Quantity  int
	UnitPrice float64
}

type CreateQuotationInput struct {
	PatientID string
	Items     []CreateQuotationItemInput
	Discount  float64
	ValidFor  time.Duration
}

type QuotationUseCase struct {
	repo      interfaces.IQuotationRepository
	sequences interfaces.ISequenceRepository
}

var _ IQuotationUseCase = (*QuotationUseCase)(nil)

func NewQuotationUseCase(repo interfaces.IQuotationRepository, sequences interfaces.ISequenceRepository) *QuotationUseCase {
	return &QuotationUseCase{repo: repo, sequences: sequences}
}

func (u *QuotationUseCase) Create(ctx context.Context, in CreateQuotationInput) (entities.Quotation, error) {
	patientID := strings.TrimSpace(in.PatientID)
	if patientID == "" {
		return entities.Quotation{}, ErrInvalidPatientID
	}
	if len(in.Items) == 0 {
		return entities.Quotation{}, ErrInvalidQuotationItem
	}
	if in.ValidFor <= 0 {
		return entities.Quotation{}, ErrInvalidExpiration
	}

	items := make([]entities.QuotationItem, 0, len(in.Items))
	subtotal := 0.0
	for _, it := range in.Items {
		if strings.TrimSpace(it.ExamID) == "" || it.Quantity <= 0 || it.UnitPrice <= 0 {
			return entities.Quotation{}, ErrInvalidQuotationItem
		}
		lineTotal := it.UnitPrice * float64(it.Quantity)
		items = append(items, entities.QuotationItem{
			ExamID:    strings.TrimSpace(it.ExamID),
			ExamName:  strings.TrimSpace(it.ExamName),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: lineTotal,
		})
		subtotal += lineTotal
	}

	total := subtotal - in.Discount
	if in.Discount < 0 || total < 0 {
		return entities.Quotation{}, ErrInvalidTotals
	}

	now := time.Now().UTC()
	numero, err := u.sequences.Next(ctx, quotationNumberPrefix, now)
	if err != nil {
		return entities.Quotation{}, err
	}

	q := entities.Quotation{
		ID:              uuid.NewString(),
		Numero:          numero,
		PatientID:       patientID,
		Items:           items,
		Subtotal:        subtotal,
		Discount:        in.Discount,
		Total:           total,
		Status:          entities.QuotationStatusPendiente,
		CreatedAt:       now,
		UpdatedAt:       now,
		FechaExpiracion: now.Add(in.ValidFor),
	}
	return u.repo.Create(ctx, q)
}

func (u *QuotationUseCase) GetByID(ctx context.Context, id string) (entities.Quotation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quotation{}, ErrInvalidQuotationID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	if q.ID == "" {
		return entities.Quotation{}, ErrQuotationNotFound
	}
	return q, nil
}

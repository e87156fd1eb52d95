package usecase

import (
	"context"
	"log"
	"time"

	"labclin/internal/domain/entities"
	"labclin/internal/usecase/interfaces"
)

// IExpirationUseCase sweeps quotations whose deadline has passed into
// EXPIRADA. The transition is a compare-and-swap, so a sweep racing the
// settlement coordinator (or another sweep) simply skips the loser.

type IExpirationUseCase interface {
	Sweep(ctx context.Context) (int, error)
}

type ExpirationUseCase struct {
	repo  interfaces.IQuotationRepository
	audit interfaces.IAuditSink
}

var _ IExpirationUseCase = (*ExpirationUseCase)(nil)

func NewExpirationUseCase(repo interfaces.IQuotationRepository, audit interfaces.IAuditSink) *ExpirationUseCase {
	return &ExpirationUseCase{repo: repo, audit: audit}
}

// Sweep returns the number of quotations transitioned in this pass.
func (u *ExpirationUseCase) Sweep(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	candidates, err := u.repo.ListExpirable(ctx, now)
	if err != nil {
		log.Printf("[expiration][usecase] sweep listing failed err=%v", err)
		return 0, err
	}

	expired := 0
	for _, q := range candidates {
		switch q.Status {
		case entities.QuotationStatusPendiente, entities.QuotationStatusAceptada:
		default:
			continue
		}
		updated, terr := u.repo.Transition(ctx, q.ID, q.Status, entities.QuotationStatusExpirada, interfaces.QuotationUpdateFields{})
		if terr != nil {
			log.Printf("[expiration][usecase] transition failed quotation_id=%s err=%v", q.ID, terr)
			continue
		}
		if updated.ID == "" {
			// Status changed since the scan; skip.
			continue
		}
		expired++
		u.audit.Record(ctx, "quotation_expired", q.ID, "", "expired by sweep")
	}

	log.Printf("[expiration][usecase] sweep done candidates=%d expired=%d", len(candidates), expired)
	return expired, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"labclin/internal/domain/entities"
	"labclin/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrQuotationNotFound        = errors.New("quotation not found")
	ErrInvalidQuotationID       = errors.New("invalid quotation id")
	ErrInvalidState             = errors.New("quotation not payable in its current state")
	ErrQuotationExpired         = errors.New("quotation expired")
	ErrPaymentAlreadyInProgress = errors.New("payment already in progress for this quotation")
	ErrPaymentNotFound          = errors.New("payment record not found")
	ErrInvalidCorrelation       = errors.New("invalid correlation id")
	ErrDuplicateCorrelation     = errors.New("duplicate correlation id")
	ErrUnknownPaymentMethod     = errors.New("unknown payment method")
)

const correlationPrefix = "COT"

const paymentNumberPrefix = "PAG"

// ISettlementUseCase is the settlement coordinator: the only writer of
// quotation and payment-record status fields.
//
// StartPayment opens a gateway transaction and persists a PENDING record;
// the outcome later arrives either inline (ConfirmPayment, synchronous
// gateway) or out of band (ApplyOutcome via the webhook handler) and is
// applied exactly once.

type ISettlementUseCase interface {
	StartPayment(ctx context.Context, quotationID, method string) (StartPaymentResult, error)
	ConfirmPayment(ctx context.Context, correlationID string, gatewayToken json.RawMessage) (ConfirmPaymentResult, error)
	ApplyOutcome(ctx context.Context, correlationID string, res interfaces.ConfirmResult) (entities.PaymentRecord, error)
	GetByCorrelationID(ctx context.Context, correlationID string) (entities.PaymentRecord, error)
}

type StartPaymentResult struct {
	Payment     entities.PaymentRecord
	RedirectURL string
}

type ConfirmPaymentResult struct {
	Payment   entities.PaymentRecord
	Quotation entities.Quotation
}

type SettlementUseCase struct {
	quotationRepo interfaces.IQuotationRepository
	paymentRepo   interfaces.IPaymentRecordRepository
	uow           interfaces.ISettlementUnitOfWork
	sequences     interfaces.ISequenceRepository
	gateways      map[string]interfaces.IPaymentGateway
	audit         interfaces.IAuditSink
}

var _ ISettlementUseCase = (*SettlementUseCase)(nil)

func NewSettlementUseCase(
	quotationRepo interfaces.IQuotationRepository,
	paymentRepo interfaces.IPaymentRecordRepository,
	uow interfaces.ISettlementUnitOfWork,
	sequences interfaces.ISequenceRepository,
	gateways map[string]interfaces.IPaymentGateway,
	audit interfaces.IAuditSink,
) *SettlementUseCase {
	return &SettlementUseCase{
		quotationRepo: quotationRepo,
		paymentRepo:   paymentRepo,
		uow:           uow,
		sequences:     sequences,
		gateways:      gateways,
		audit:         audit,
	}
}

// NewCorrelationID builds the client-supplied correlation id embedded at
// prepare time for the synchronous gateway: COT-<quotationId>-<unixMillis>.
func NewCorrelationID(quotationID string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d", correlationPrefix, quotationID, at.UnixMilli())
}

// ParseCorrelationID re-extracts the quotation id from a synchronous-gateway
// correlation id. The quotation id itself contains dashes (uuid), so the
// timestamp is split off the tail.
func ParseCorrelationID(correlationID string) (quotationID string, err error) {
	s := strings.TrimSpace(correlationID)
	if !strings.HasPrefix(s, correlationPrefix+"-") {
		return "", ErrInvalidCorrelation
	}
	s = strings.TrimPrefix(s, correlationPrefix+"-")
	idx := strings.LastIndex(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return "", ErrInvalidCorrelation
	}
	if _, perr := strconv.ParseInt(s[idx+1:], 10, 64); perr != nil {
		return "", ErrInvalidCorrelation
	}
	return s[:idx], nil
}

func (u *SettlementUseCase) StartPayment(ctx context.Context, quotationID, method string) (StartPaymentResult, error) {
	quotationID = strings.TrimSpace(quotationID)
	log.Printf("[settlement][usecase] start-payment begin quotation_id=%s method=%s", quotationID, method)
	if quotationID == "" {
		return StartPaymentResult{}, ErrInvalidQuotationID
	}
	gateway, ok := u.gateways[strings.TrimSpace(method)]
	if !ok {
		log.Printf("[settlement][usecase] unknown payment method quotation_id=%s method=%s", quotationID, method)
		return StartPaymentResult{}, ErrUnknownPaymentMethod
	}

	q, err := u.quotationRepo.GetByID(ctx, quotationID)
	if err != nil {
		log.Printf("[settlement][usecase] quotation load failed quotation_id=%s err=%v", quotationID, err)
		return StartPaymentResult{}, err
	}
	if q.ID == "" {
		return StartPaymentResult{}, ErrQuotationNotFound
	}

	switch q.Status {
	case entities.QuotationStatusPendiente, entities.QuotationStatusAceptada, entities.QuotationStatusPagoEnProceso:
	default:
		log.Printf("[settlement][usecase] quotation not payable quotation_id=%s status=%s", quotationID, q.Status)
		return StartPaymentResult{}, ErrInvalidState
	}

	now := time.Now().UTC()
	if q.ExpiredAt(now) {
		// Lazy expiration: mark before returning. EXPIRADA is only reachable
		// from PENDIENTE/ACEPTADA, so an in-process quotation past its
		// deadline is still reported expired without the transition.
		if q.Status == entities.QuotationStatusPendiente || q.Status == entities.QuotationStatusAceptada {
			if _, terr := u.quotationRepo.Transition(ctx, q.ID, q.Status, entities.QuotationStatusExpirada, interfaces.QuotationUpdateFields{}); terr != nil {
				log.Printf("[settlement][usecase] lazy expiration failed quotation_id=%s err=%v", quotationID, terr)
			} else {
				u.audit.Record(ctx, "quotation_expired", q.ID, "", "expired lazily on payment attempt")
			}
		}
		return StartPaymentResult{}, ErrQuotationExpired
	}

	// One open gateway transaction per quotation. A retry is only allowed
	// after the previous attempt reached a terminal state.
	if pending, perr := u.paymentRepo.FindPendingByQuotationID(ctx, quotationID); perr != nil {
		return StartPaymentResult{}, perr
	} else if pending.ID != "" {
		log.Printf("[settlement][usecase] payment already in progress quotation_id=%s payment_id=%s", quotationID, pending.ID)
		return StartPaymentResult{}, ErrPaymentAlreadyInProgress
	}

	correlationID := NewCorrelationID(q.ID, now)
	prep, err := gateway.Prepare(ctx, q, correlationID)
	if err != nil {
		log.Printf("[settlement][usecase] gateway prepare failed quotation_id=%s gateway=%s err=%v", quotationID, gateway.Name(), err)
		return StartPaymentResult{}, err
	}
	if prep.CorrelationID != "" {
		correlationID = prep.CorrelationID
	}

	numero, err := u.sequences.Next(ctx, paymentNumberPrefix, now)
	if err != nil {
		return StartPaymentResult{}, err
	}

	p := entities.PaymentRecord{
		ID:            uuid.NewString(),
		Numero:        numero,
		QuotationID:   q.ID,
		PatientID:     q.PatientID,
		Amount:        q.Total,
		Method:        method,
		Gateway:       gateway.Name(),
		CorrelationID: correlationID,
		Status:        entities.PaymentStatusPending,
		CreatedAt:     now,
	}

	fields := interfaces.QuotationUpdateFields{
		PaymentMethodSelected: &method,
		FechaSeleccionPago:    &now,
	}
	if err := u.uow.OpenPayment(ctx, p, q.Status, fields); err != nil {
		if errors.Is(err, interfaces.ErrCorrelationConflict) {
			return StartPaymentResult{}, ErrDuplicateCorrelation
		}
		if errors.Is(err, interfaces.ErrQuotationConflict) {
			// Lost a race with a concurrent StartPayment; the gateway
			// transaction we opened is abandoned, not charged.
			return StartPaymentResult{}, ErrPaymentAlreadyInProgress
		}
		log.Printf("[settlement][usecase] open-payment transaction failed quotation_id=%s err=%v", quotationID, err)
		return StartPaymentResult{}, err
	}

	u.audit.Record(ctx, "payment_started", q.ID, p.ID, fmt.Sprintf("gateway=%s correlation_id=%s amount=%.2f", gateway.Name(), correlationID, p.Amount))
	log.Printf("[settlement][usecase] start-payment success quotation_id=%s payment_id=%s correlation_id=%s", quotationID, p.ID, correlationID)
	return StartPaymentResult{Payment: p, RedirectURL: prep.RedirectURL}, nil
}

func (u *SettlementUseCase) ConfirmPayment(ctx context.Context, correlationID string, gatewayToken json.RawMessage) (ConfirmPaymentResult, error) {
	correlationID = strings.TrimSpace(correlationID)
	log.Printf("[settlement][usecase] confirm begin correlation_id=%s", correlationID)

	quotationID, err := ParseCorrelationID(correlationID)
	if err != nil {
		return ConfirmPaymentResult{}, err
	}

	p, err := u.paymentRepo.GetByCorrelationID(ctx, correlationID)
	if err != nil {
		return ConfirmPaymentResult{}, err
	}
	if p.ID == "" {
		return ConfirmPaymentResult{}, ErrPaymentNotFound
	}
	if p.QuotationID != quotationID {
		log.Printf("[settlement][usecase] correlation/quotation mismatch correlation_id=%s record_quotation=%s parsed=%s", correlationID, p.QuotationID, quotationID)
		return ConfirmPaymentResult{}, ErrInvalidCorrelation
	}

	// Duplicate client confirmations are a no-op on an already-terminal
	// record; skip the gateway round-trip entirely.
	if !p.Status.Terminal() {
		gateway, ok := u.gateways[p.Method]
		if !ok {
			return ConfirmPaymentResult{}, ErrUnknownPaymentMethod
		}
		res, cerr := gateway.Confirm(ctx, correlationID, gatewayToken)
		if cerr != nil {
			log.Printf("[settlement][usecase] gateway confirm failed correlation_id=%s err=%v", correlationID, cerr)
			return ConfirmPaymentResult{}, cerr
		}
		if p, err = u.ApplyOutcome(ctx, correlationID, res); err != nil {
			return ConfirmPaymentResult{}, err
		}
	}

	q, err := u.quotationRepo.GetByID(ctx, p.QuotationID)
	if err != nil {
		return ConfirmPaymentResult{}, err
	}
	log.Printf("[settlement][usecase] confirm success correlation_id=%s payment_status=%s quotation_status=%s", correlationID, p.Status, q.Status)
	return ConfirmPaymentResult{Payment: p, Quotation: q}, nil
}

// ApplyOutcome is the one authoritative transition point for a payment
// attempt. It is safe under concurrent invocation: every write is a
// compare-and-swap, and the loser of any race observes a no-op.
func (u *SettlementUseCase) ApplyOutcome(ctx context.Context, correlationID string, res interfaces.ConfirmResult) (entities.PaymentRecord, error) {
	correlationID = strings.TrimSpace(correlationID)
	log.Printf("[settlement][usecase] apply-outcome begin correlation_id=%s outcome=%s", correlationID, res.Outcome)
	if correlationID == "" {
		return entities.PaymentRecord{}, ErrInvalidCorrelation
	}

	p, err := u.paymentRepo.GetByCorrelationID(ctx, correlationID)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if p.ID == "" {
		// An outcome for an unknown transaction is misconfiguration or
		// replay; it must be rejected, never fabricated.
		log.Printf("[settlement][usecase] outcome for unknown correlation correlation_id=%s", correlationID)
		return entities.PaymentRecord{}, ErrPaymentNotFound
	}
	if p.Status.Terminal() {
		log.Printf("[settlement][usecase] outcome redelivery ignored correlation_id=%s payment_id=%s status=%s", correlationID, p.ID, p.Status)
		return p, nil
	}

	now := time.Now().UTC()
	switch res.Outcome {
	case interfaces.OutcomeApproved:
		return u.applyApproved(ctx, p, res, now)
	case interfaces.OutcomeDeclined, interfaces.OutcomeCancelled, interfaces.OutcomeError:
		return u.applyRejected(ctx, p, res)
	case interfaces.OutcomePending:
		updated, uerr := u.paymentRepo.UpdateObservations(ctx, p.ID, "awaiting confirmation: "+res.Message)
		if uerr != nil {
			return entities.PaymentRecord{}, uerr
		}
		if updated.ID == "" {
			// Lost a race with a terminal transition; re-read and return it.
			return u.paymentRepo.GetByID(ctx, p.ID)
		}
		log.Printf("[settlement][usecase] outcome pending correlation_id=%s payment_id=%s", correlationID, p.ID)
		return updated, nil
	default:
		return entities.PaymentRecord{}, fmt.Errorf("unsupported outcome %q", res.Outcome)
	}
}

func (u *SettlementUseCase) applyApproved(ctx context.Context, p entities.PaymentRecord, res interfaces.ConfirmResult, now time.Time) (entities.PaymentRecord, error) {
	err := u.uow.CompleteAndSettle(ctx, p.ID, res.ExternalTransactionID, res.Message, p.QuotationID, now)
	switch {
	case err == nil:
		u.audit.Record(ctx, "payment_completed", p.QuotationID, p.ID, fmt.Sprintf("external_transaction_id=%s", res.ExternalTransactionID))
	case errors.Is(err, interfaces.ErrQuotationConflict):
		// Money was received for a quotation that moved on (expired or paid
		// by a concurrent attempt). The record is still completed; the
		// mismatch is a reconciliation item, not a silent condition.
		completed, merr := u.paymentRepo.MarkCompleted(ctx, p.ID, res.ExternalTransactionID, res.Message)
		if merr != nil {
			return entities.PaymentRecord{}, merr
		}
		u.audit.Record(ctx, "settlement_inconsistency", p.QuotationID, p.ID,
			fmt.Sprintf("payment approved but quotation no longer awaiting payment; external_transaction_id=%s", res.ExternalTransactionID))
		log.Printf("[settlement][usecase] settlement inconsistency recorded quotation_id=%s payment_id=%s", p.QuotationID, p.ID)
		return completed, nil
	case errors.Is(err, interfaces.ErrPaymentConflict):
		// Concurrent outcome application won; return the terminal record.
		return u.paymentRepo.GetByID(ctx, p.ID)
	default:
		return entities.PaymentRecord{}, err
	}

	log.Printf("[settlement][usecase] payment completed quotation_id=%s payment_id=%s", p.QuotationID, p.ID)
	return u.paymentRepo.GetByID(ctx, p.ID)
}

func (u *SettlementUseCase) applyRejected(ctx context.Context, p entities.PaymentRecord, res interfaces.ConfirmResult) (entities.PaymentRecord, error) {
	observations := rejectionReason(res)
	err := u.uow.RejectAndRelease(ctx, p.ID, observations, p.QuotationID)
	switch {
	case err == nil:
		u.audit.Record(ctx, "payment_rejected", p.QuotationID, p.ID, observations)
	case errors.Is(err, interfaces.ErrQuotationConflict):
		// Quotation left PAGO_EN_PROCESO concurrently; reject the record
		// alone so the attempt still reaches a terminal, inspectable state.
		rejected, merr := u.paymentRepo.MarkRejected(ctx, p.ID, observations)
		if merr != nil {
			return entities.PaymentRecord{}, merr
		}
		u.audit.Record(ctx, "payment_rejected", p.QuotationID, p.ID, observations+" (quotation transition skipped)")
		return rejected, nil
	case errors.Is(err, interfaces.ErrPaymentConflict):
		return u.paymentRepo.GetByID(ctx, p.ID)
	default:
		return entities.PaymentRecord{}, err
	}

	log.Printf("[settlement][usecase] payment rejected quotation_id=%s payment_id=%s reason=%q", p.QuotationID, p.ID, observations)
	return u.paymentRepo.GetByID(ctx, p.ID)
}

func rejectionReason(res interfaces.ConfirmResult) string {
	var reason string
	switch res.Outcome {
	case interfaces.OutcomeDeclined:
		reason = "payment declined by gateway"
	case interfaces.OutcomeCancelled:
		reason = "payment cancelled by patient"
	default:
		reason = "gateway reported an error"
	}
	if res.Message != "" {
		reason += ": " + res.Message
	}
	return reason
}

func (u *SettlementUseCase) GetByCorrelationID(ctx context.Context, correlationID string) (entities.PaymentRecord, error) {
	correlationID = strings.TrimSpace(correlationID)
	if correlationID == "" {
		return entities.PaymentRecord{}, ErrInvalidCorrelation
	}

	p, err := u.paymentRepo.GetByCorrelationID(ctx, correlationID)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if p.ID == "" {
		return entities.PaymentRecord{}, ErrPaymentNotFound
	}
	return p, nil
}

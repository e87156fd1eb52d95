package interfaces

import (
	"context"
	"encoding/json"
	"errors"

	"labclin/internal/domain/entities"
)

// Gateway transport/contract errors. Adapters map vendor responses onto
// these so the coordinator never branches on vendor specifics.
var (
	ErrGatewayUnavailable     = errors.New("payment gateway unavailable")
	ErrGatewayRejectedRequest = errors.New("payment gateway rejected request")
	ErrInvalidSignature       = errors.New("invalid callback signature")
)

// PaymentOutcome is the gateway-neutral result of a confirmation.
type PaymentOutcome string

const (
	OutcomeApproved  PaymentOutcome = "APPROVED"
	OutcomeDeclined  PaymentOutcome = "DECLINED"
	OutcomeCancelled PaymentOutcome = "CANCELLED"
	OutcomeError     PaymentOutcome = "ERROR"
	OutcomePending   PaymentOutcome = "PENDING"
)

// PrepareResult is the outcome of opening a gateway transaction. RedirectURL
// points the patient at the hosted payment UI; CorrelationID is the id the
// gateway will echo back (adapters either embed the caller-supplied id or
// return the vendor session id).
type PrepareResult struct {
	RedirectURL   string
	CorrelationID string
}

// ConfirmResult is the fixed shape every adapter maps its vendor payload
// into. The coordinator branches only on Outcome.
type ConfirmResult struct {
	Outcome               PaymentOutcome
	ExternalTransactionID string
	Message               string
}

// IPaymentGateway abstracts an external payment provider.
//
// Prepare and Confirm are blocking HTTP calls; adapters enforce a timeout
// and report it as ErrGatewayUnavailable. VerifyCallback must be called with
// the exact raw webhook bytes before any trust is placed in their content.

type IPaymentGateway interface {
	Name() string
	Prepare(ctx context.Context, q entities.Quotation, correlationID string) (PrepareResult, error)
	Confirm(ctx context.Context, correlationID string, payload json.RawMessage) (ConfirmResult, error)
	VerifyCallback(rawPayload []byte, signatureHeader string) error
}

package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"labclin/internal/domain/entities"
	"labclin/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const GatewayMercadoPago = "mercadopago"

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

// MercadoPagoConfig is injected at construction so the adapter never reads
// process-wide state at call time.
type MercadoPagoConfig struct {
	AccessToken string
	SuccessURL  string
	FailureURL  string
	PendingURL  string
	CurrencyID  string
	TaxRate     float64
}

// MercadoPagoGateway is the synchronous prepare/confirm variant: Prepare
// creates a Checkout Pro preference carrying the caller-supplied correlation
// id as external reference; Confirm is called inline after the patient
// returns from the hosted UI, resolving the gateway payment by id.

type MercadoPagoGateway struct {
	cfg         MercadoPagoConfig
	payments    payment.Client
	preferences preference.Client
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg MercadoPagoConfig) (*MercadoPagoGateway, error) {
	if cfg.AccessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(cfg.AccessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		cfg:         cfg,
		payments:    payment.NewClient(sdkCfg),
		preferences: preference.NewClient(sdkCfg),
	}, nil
}

func (g *MercadoPagoGateway) Name() string {
	return GatewayMercadoPago
}

func (g *MercadoPagoGateway) Prepare(ctx context.Context, q entities.Quotation, correlationID string) (interfaces.PrepareResult, error) {
	log.Printf("[payment][gateway] prepare start quotation_id=%s correlation_id=%s total=%.2f", q.ID, correlationID, q.Total)
	if q.Total <= 0 {
		return interfaces.PrepareResult{}, fmt.Errorf("%w: non-positive amount %.2f", interfaces.ErrGatewayRejectedRequest, q.Total)
	}

	items := make([]preference.ItemRequest, 0, len(q.Items)+1)
	for _, it := range q.Items {
		items = append(items, preference.ItemRequest{
			ID:         it.ExamID,
			Title:      it.ExamName,
			Quantity:   it.Quantity,
			CurrencyID: g.cfg.CurrencyID,
			UnitPrice:  withTax(it.UnitPrice, g.cfg.TaxRate),
		})
	}
	if q.Discount > 0 {
		// Checkout Pro has no discount field; the discount rides as a
		// negative-priced line so the preference total matches the quotation.
		items = append(items, preference.ItemRequest{
			ID:         "descuento",
			Title:      "Descuento",
			Quantity:   1,
			CurrencyID: g.cfg.CurrencyID,
			UnitPrice:  -withTax(q.Discount, g.cfg.TaxRate),
		})
	}

	req := preference.Request{
		Items:             items,
		ExternalReference: correlationID,
		BackURLs: &preference.BackURLsRequest{
			Success: g.cfg.SuccessURL,
			Failure: g.cfg.FailureURL,
			Pending: g.cfg.PendingURL,
		},
	}

	resp, err := g.preferences.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway] preference create failed quotation_id=%s err=%v", q.ID, err)
		return interfaces.PrepareResult{}, mapSDKError(err)
	}

	log.Printf("[payment][gateway] prepare success quotation_id=%s preference_id=%s", q.ID, resp.ID)
	return interfaces.PrepareResult{
		RedirectURL:   resp.InitPoint,
		CorrelationID: correlationID,
	}, nil
}

// mercadoPagoToken is the confirmation payload the client posts after
// returning from the hosted UI; payment_id comes from the back-URL query.
type mercadoPagoToken struct {
	PaymentID string `json:"payment_id"`
}

func (g *MercadoPagoGateway) Confirm(ctx context.Context, correlationID string, payload json.RawMessage) (interfaces.ConfirmResult, error) {
	log.Printf("[payment][gateway] confirm start correlation_id=%s", correlationID)

	var token mercadoPagoToken
	if err := json.Unmarshal(payload, &token); err != nil {
		return interfaces.ConfirmResult{}, fmt.Errorf("%w: malformed confirmation token", interfaces.ErrGatewayRejectedRequest)
	}
	paymentID, err := strconv.Atoi(strings.TrimSpace(token.PaymentID))
	if err != nil || paymentID <= 0 {
		return interfaces.ConfirmResult{}, fmt.Errorf("%w: missing payment_id", interfaces.ErrGatewayRejectedRequest)
	}

	resp, err := g.payments.Get(ctx, paymentID)
	if err != nil {
		log.Printf("[payment][gateway] payment get failed payment_id=%d err=%v", paymentID, err)
		return interfaces.ConfirmResult{}, mapSDKError(err)
	}
	if resp.ExternalReference != correlationID {
		log.Printf("[payment][gateway] external reference mismatch payment_id=%d expected=%s got=%s", paymentID, correlationID, resp.ExternalReference)
		return interfaces.ConfirmResult{}, fmt.Errorf("%w: payment does not belong to this correlation id", interfaces.ErrGatewayRejectedRequest)
	}

	result := interfaces.ConfirmResult{
		Outcome:               mapMercadoPagoStatus(resp.Status),
		ExternalTransactionID: strconv.Itoa(resp.ID),
		Message:               resp.StatusDetail,
	}
	log.Printf("[payment][gateway] confirm success payment_id=%d status=%s outcome=%s", resp.ID, resp.Status, result.Outcome)
	return result, nil
}

// VerifyCallback exists to satisfy the adapter contract; the synchronous
// flow confirms inline and never receives signed callbacks.
func (g *MercadoPagoGateway) VerifyCallback(_ []byte, _ string) error {
	return fmt.Errorf("%w: synchronous gateway receives no callbacks", interfaces.ErrInvalidSignature)
}

func mapMercadoPagoStatus(status string) interfaces.PaymentOutcome {
	switch strings.ToLower(status) {
	case "approved":
		return interfaces.OutcomeApproved
	case "rejected":
		return interfaces.OutcomeDeclined
	case "cancelled":
		return interfaces.OutcomeCancelled
	case "pending", "in_process", "authorized":
		return interfaces.OutcomePending
	default:
		return interfaces.OutcomeError
	}
}

// mapSDKError folds SDK failures into the gateway error taxonomy. A 4xx body
// means the request itself was rejected; anything else (timeout, 5xx,
// unreachable) is the gateway being unavailable.
func mapSDKError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "\"status\":400") || strings.Contains(msg, "bad_request") || strings.Contains(msg, "invalid") {
		return fmt.Errorf("%w: %v", interfaces.ErrGatewayRejectedRequest, err)
	}
	return fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
}

func withTax(amount, taxRate float64) float64 {
	if taxRate <= 0 {
		return amount
	}
	return amount * (1 + taxRate)
}

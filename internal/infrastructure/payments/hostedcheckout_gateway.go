package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"labclin/internal/domain/entities"
	"labclin/internal/usecase/interfaces"
)

const GatewayHostedCheckout = "hosted_checkout"

const signaturePrefix = "sha256="

var ErrMissingHostedCheckoutConfig = errors.New("missing hosted checkout configuration")

// HostedCheckoutConfig is injected at construction; WebhookSecret is the
// shared secret the vendor signs callback payloads with.
type HostedCheckoutConfig struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
	TaxRate       float64
	Timeout       time.Duration
}

// HostedCheckoutGateway is the hosted-session variant: Prepare opens a
// checkout session on the vendor API and returns its payment URL; the
// outcome arrives later through an HMAC-SHA256-signed webhook, whose event
// data is handed to Confirm by the webhook handler.

type HostedCheckoutGateway struct {
	cfg    HostedCheckoutConfig
	client *http.Client
}

var _ interfaces.IPaymentGateway = (*HostedCheckoutGateway)(nil)

func NewHostedCheckoutGateway(cfg HostedCheckoutConfig) (*HostedCheckoutGateway, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" || cfg.WebhookSecret == "" {
		log.Printf("[payment][gateway] hosted checkout not configured")
		return nil, ErrMissingHostedCheckoutConfig
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	log.Printf("[payment][gateway] hosted checkout client initialized base_url=%s", cfg.BaseURL)
	return &HostedCheckoutGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (g *HostedCheckoutGateway) Name() string {
	return GatewayHostedCheckout
}

type checkoutSessionRequest struct {
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference"`
	Description string            `json:"description"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type checkoutSessionResponse struct {
	ID         string `json:"id"`
	PaymentURL string `json:"payment_url"`
}

func (g *HostedCheckoutGateway) Prepare(ctx context.Context, q entities.Quotation, correlationID string) (interfaces.PrepareResult, error) {
	log.Printf("[payment][gateway] session create start quotation_id=%s total=%.2f", q.ID, q.Total)
	amountCents := toMinorUnits(withTax(q.Total, g.cfg.TaxRate))
	if amountCents <= 0 {
		return interfaces.PrepareResult{}, fmt.Errorf("%w: non-positive amount", interfaces.ErrGatewayRejectedRequest)
	}

	body, err := json.Marshal(checkoutSessionRequest{
		AmountCents: amountCents,
		Currency:    g.cfg.Currency,
		Reference:   correlationID,
		Description: fmt.Sprintf("Cotización %s", q.Numero),
		SuccessURL:  g.cfg.SuccessURL,
		CancelURL:   g.cfg.CancelURL,
		Metadata:    map[string]string{"quotation_id": q.ID},
	})
	if err != nil {
		return interfaces.PrepareResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return interfaces.PrepareResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		// Timeouts and transport failures are never a silent PENDING.
		log.Printf("[payment][gateway] session create transport failure quotation_id=%s err=%v", q.ID, err)
		return interfaces.PrepareResult{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return interfaces.PrepareResult{}, fmt.Errorf("%w: %v", interfaces.ErrGatewayUnavailable, err)
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		log.Printf("[payment][gateway] session create rejected quotation_id=%s status=%d body=%s", q.ID, resp.StatusCode, respBody)
		return interfaces.PrepareResult{}, fmt.Errorf("%w: status %d", interfaces.ErrGatewayRejectedRequest, resp.StatusCode)
	default:
		return interfaces.PrepareResult{}, fmt.Errorf("%w: status %d", interfaces.ErrGatewayUnavailable, resp.StatusCode)
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return interfaces.PrepareResult{}, fmt.Errorf("%w: malformed session response", interfaces.ErrGatewayUnavailable)
	}
	if session.ID == "" || session.PaymentURL == "" {
		return interfaces.PrepareResult{}, fmt.Errorf("%w: incomplete session response", interfaces.ErrGatewayUnavailable)
	}

	log.Printf("[payment][gateway] session create success quotation_id=%s session_id=%s", q.ID, session.ID)
	// The session id is the correlation the vendor echoes in webhooks.
	return interfaces.PrepareResult{
		RedirectURL:   session.PaymentURL,
		CorrelationID: session.ID,
	}, nil
}

// checkoutEventData is the `data` object of a webhook event, passed here by
// the webhook handler after signature verification.
type checkoutEventData struct {
	SessionID string `json:"session_id"`
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

func (g *HostedCheckoutGateway) Confirm(_ context.Context, correlationID string, payload json.RawMessage) (interfaces.ConfirmResult, error) {
	var data checkoutEventData
	if err := json.Unmarshal(payload, &data); err != nil {
		return interfaces.ConfirmResult{}, fmt.Errorf("%w: malformed event data", interfaces.ErrGatewayRejectedRequest)
	}
	if data.SessionID != "" && data.SessionID != correlationID {
		return interfaces.ConfirmResult{}, fmt.Errorf("%w: event session does not match correlation id", interfaces.ErrGatewayRejectedRequest)
	}

	return interfaces.ConfirmResult{
		Outcome:               mapCheckoutStatus(data.Status),
		ExternalTransactionID: data.PaymentID,
		Message:               data.Message,
	}, nil
}

// VerifyCallback checks the HMAC-SHA256 signature of the exact raw webhook
// bytes. The header format is "sha256=<hex>"; comparison is constant time.
func (g *HostedCheckoutGateway) VerifyCallback(rawPayload []byte, signatureHeader string) error {
	signature := strings.TrimSpace(signatureHeader)
	if !strings.HasPrefix(signature, signaturePrefix) {
		return interfaces.ErrInvalidSignature
	}
	signature = strings.TrimPrefix(signature, signaturePrefix)

	mac := hmac.New(sha256.New, []byte(g.cfg.WebhookSecret))
	mac.Write(rawPayload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return interfaces.ErrInvalidSignature
	}
	return nil
}

// SignPayload computes the signature header value for a payload; used by
// tests and by local vendor simulators.
func SignPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

func mapCheckoutStatus(status string) interfaces.PaymentOutcome {
	switch strings.ToLower(status) {
	case "paid", "succeeded":
		return interfaces.OutcomeApproved
	case "failed", "declined":
		return interfaces.OutcomeDeclined
	case "cancelled", "canceled":
		return interfaces.OutcomeCancelled
	case "pending", "processing":
		return interfaces.OutcomePending
	default:
		return interfaces.OutcomeError
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"labclin/internal/usecase"
	"labclin/internal/usecase/interfaces"
	"labclin/pkg"

	"github.com/gin-gonic/gin"
)

const webhookSignatureHeader = "X-Webhook-Signature"

// Event kinds delivered by the hosted-session gateway.
const (
	eventCheckoutCompleted = "checkout.completed"
	eventPaymentFailed     = "payment.failed"
)

// webhookEvent is the envelope of a hosted-checkout callback. Data is kept
// raw; the gateway adapter owns the mapping of its vendor payload.
type webhookEvent struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// WebhookHandler receives out-of-band gateway notifications. It is
// stateless: it verifies authenticity against the raw body, then delegates
// the outcome to the settlement coordinator, which deduplicates.
//
// The gateway treats any non-retry response as handled, so everything past
// the signature check answers 200 even when nothing was applied.

type WebhookHandler struct {
	gateway interfaces.IPaymentGateway
	usecase usecase.ISettlementUseCase
	audit   interfaces.IAuditSink
}

func NewWebhookHandler(gateway interfaces.IPaymentGateway, uc usecase.ISettlementUseCase, audit interfaces.IAuditSink) *WebhookHandler {
	return &WebhookHandler{gateway: gateway, usecase: uc, audit: audit}
}

// HandleWebhook processes a signed hosted-checkout event.
//
// @Summary      Hosted-checkout webhook endpoint
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Signature header string true "HMAC-SHA256 payload signature"
// @Success      200 {object} map[string]string
// @Failure      400 {object} pkg.HTTPError
// @Router       /webhook [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	// Signature verification needs the exact bytes; never bind first.
	rawBody, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	signature := c.GetHeader(webhookSignatureHeader)
	if verr := h.gateway.VerifyCallback(rawBody, signature); verr != nil {
		// Security event: an unauthenticated caller is probing the endpoint.
		log.Printf("[webhook][handler] signature verification failed err=%v", verr)
		h.audit.Record(c.Request.Context(), "webhook_signature_rejected", "", "", "invalid signature on webhook delivery")
		appErr := pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid webhook signature", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		log.Printf("[webhook][handler] malformed event body err=%v", err)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	switch event.Type {
	case eventCheckoutCompleted, eventPaymentFailed:
	default:
		// Unrecognized kinds are acknowledged so the gateway stops
		// redelivering them.
		log.Printf("[webhook][handler] event ignored event_id=%s type=%s", event.ID, event.Type)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	res, err := h.gateway.Confirm(c.Request.Context(), correlationFromEvent(event.Data), event.Data)
	if err != nil {
		log.Printf("[webhook][handler] event mapping failed event_id=%s err=%v", event.ID, err)
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	applied, err := h.usecase.ApplyOutcome(c.Request.Context(), correlationFromEvent(event.Data), res)
	if err != nil {
		// Unknown correlation is misconfiguration or replay; record it for
		// review but acknowledge so the gateway does not retry forever.
		log.Printf("[webhook][handler] outcome not applied event_id=%s err=%v", event.ID, err)
		h.audit.Record(c.Request.Context(), "webhook_unapplied", "", "", "event "+event.ID+": "+err.Error())
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	log.Printf("[webhook][handler] event applied event_id=%s payment_id=%s status=%s", event.ID, applied.ID, applied.Status)
	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}

func correlationFromEvent(data json.RawMessage) string {
	var d struct {
		SessionID string `json:"session_id"`
	}
	_ = json.Unmarshal(data, &d)
	return d.SessionID
}

package request

import "encoding/json"

// StartPaymentRequest selects the gateway for a quotation payment attempt.
type StartPaymentRequest struct {
	QuotationID string `json:"quotation_id" binding:"required"`
	Method      string `json:"method" binding:"required"`
}

// ConfirmPaymentRequest closes the synchronous-gateway loop after the
// patient returns from the hosted payment UI.
//
// `gateway_token` is stored raw because each gateway defines its own
// confirmation payload shape.
type ConfirmPaymentRequest struct {
	CorrelationID string          `json:"correlation_id" binding:"required"`
	GatewayToken  json.RawMessage `json:"gateway_token"`
}

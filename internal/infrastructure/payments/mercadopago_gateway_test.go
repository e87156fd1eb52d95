package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"labclin/internal/usecase/interfaces"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("missing access token", func(t *testing.T) {
		if _, err := NewMercadoPagoGateway(MercadoPagoConfig{}); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
			t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
		}
	})

	t.Run("configured", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(MercadoPagoConfig{AccessToken: "TEST-token", CurrencyID: "CLP"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.Name() != GatewayMercadoPago {
			t.Fatalf("unexpected gateway name %q", g.Name())
		}
	})
}

func TestMercadoPagoGateway_Confirm_TokenValidation(t *testing.T) {
	g, err := NewMercadoPagoGateway(MercadoPagoConfig{AccessToken: "TEST-token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("malformed token", func(t *testing.T) {
		if _, err := g.Confirm(context.Background(), "c", json.RawMessage(`{`)); !errors.Is(err, interfaces.ErrGatewayRejectedRequest) {
			t.Fatalf("expected ErrGatewayRejectedRequest, got %v", err)
		}
	})

	t.Run("missing payment id", func(t *testing.T) {
		if _, err := g.Confirm(context.Background(), "c", json.RawMessage(`{}`)); !errors.Is(err, interfaces.ErrGatewayRejectedRequest) {
			t.Fatalf("expected ErrGatewayRejectedRequest, got %v", err)
		}
	})

	t.Run("non numeric payment id", func(t *testing.T) {
		if _, err := g.Confirm(context.Background(), "c", json.RawMessage(`{"payment_id":"abc"}`)); !errors.Is(err, interfaces.ErrGatewayRejectedRequest) {
			t.Fatalf("expected ErrGatewayRejectedRequest, got %v", err)
		}
	})
}

func TestMercadoPagoGateway_VerifyCallback(t *testing.T) {
	g, err := NewMercadoPagoGateway(MercadoPagoConfig{AccessToken: "TEST-token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verr := g.VerifyCallback([]byte(`{}`), "sha256=x"); !errors.Is(verr, interfaces.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", verr)
	}
}

func TestMapMercadoPagoStatus(t *testing.T) {
	cases := map[string]interfaces.PaymentOutcome{
		"approved":   interfaces.OutcomeApproved,
		"APPROVED":   interfaces.OutcomeApproved,
		"rejected":   interfaces.OutcomeDeclined,
		"cancelled":  interfaces.OutcomeCancelled,
		"pending":    interfaces.OutcomePending,
		"in_process": interfaces.OutcomePending,
		"authorized": interfaces.OutcomePending,
		"refunded":   interfaces.OutcomeError,
		"":           interfaces.OutcomeError,
	}
	for status, want := range cases {
		if got := mapMercadoPagoStatus(status); got != want {
			t.Fatalf("status %q: expected %s, got %s", status, want, got)
		}
	}
}

func TestMapSDKError(t *testing.T) {
	t.Run("4xx body is a rejection", func(t *testing.T) {
		err := mapSDKError(errors.New(`{"status":400,"error":"bad_request"}`))
		if !errors.Is(err, interfaces.ErrGatewayRejectedRequest) {
			t.Fatalf("expected ErrGatewayRejectedRequest, got %v", err)
		}
	})

	t.Run("invalid field is a rejection", func(t *testing.T) {
		err := mapSDKError(errors.New("invalid external_reference"))
		if !errors.Is(err, interfaces.ErrGatewayRejectedRequest) {
			t.Fatalf("expected ErrGatewayRejectedRequest, got %v", err)
		}
	})

	t.Run("everything else is unavailable", func(t *testing.T) {
		err := mapSDKError(errors.New("context deadline exceeded"))
		if !errors.Is(err, interfaces.ErrGatewayUnavailable) {
			t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
		}
	})
}

func TestWithTax(t *testing.T) {
	if got := withTax(100, 0); got != 100 {
		t.Fatalf("zero rate must be identity, got %v", got)
	}
	if got := withTax(100, 0.19); got != 119 {
		t.Fatalf("expected 119, got %v", got)
	}
	if got := withTax(100, -1); got != 100 {
		t.Fatalf("negative rate must be ignored, got %v", got)
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"labclin/internal/adapter/http/handlers/mocks"
	"labclin/internal/domain/entities"
	"labclin/internal/usecase"
	"labclin/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newSettlementRouter(h *SettlementHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/payments/start", h.StartPayment)
	r.POST("/v1/payments/confirm", h.ConfirmPayment)
	r.GET("/v1/payments/status", h.GetPaymentStatus)
	return r
}

func TestSettlementHandler_StartPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISettlementUseCase(ctrl)
		r := newSettlementRouter(NewSettlementHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/start", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISettlementUseCase(ctrl)
		r := newSettlementRouter(NewSettlementHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/start", bytes.NewBufferString(`{"quotation_id":"q-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			name string
			err  error
			want int
			code string
		}{
			{"unknown method", usecase.ErrUnknownPaymentMethod, http.StatusBadRequest, "INVALID_REQUEST"},
			{"not payable", usecase.ErrInvalidState, http.StatusBadRequest, "QUOTATION_NOT_PAYABLE"},
			{"expired", usecase.ErrQuotationExpired, http.StatusBadRequest, "QUOTATION_EXPIRED"},
			{"gateway rejected", interfaces.ErrGatewayRejectedRequest, http.StatusBadRequest, "GATEWAY_REJECTED_REQUEST"},
			{"not found", usecase.ErrQuotationNotFound, http.StatusNotFound, "QUOTATION_NOT_FOUND"},
			{"in progress", usecase.ErrPaymentAlreadyInProgress, http.StatusConflict, "PAYMENT_IN_PROGRESS"},
			{"duplicate correlation", usecase.ErrDuplicateCorrelation, http.StatusConflict, "PAYMENT_IN_PROGRESS"},
			{"gateway down", interfaces.ErrGatewayUnavailable, http.StatusBadGateway, "GATEWAY_UNAVAILABLE"},
			{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()
				uc := mocks.NewMockISettlementUseCase(ctrl)
				r := newSettlementRouter(NewSettlementHandler(uc))

				uc.EXPECT().StartPayment(gomock.Any(), "q-1", "mercadopago").Return(usecase.StartPaymentResult{}, c.err)

				req := httptest.NewRequest(http.MethodPost, "/v1/payments/start",
					bytes.NewBufferString(`{"quotation_id":"q-1","method":"mercadopago"}`))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)

				if w.Code != c.want {
					t.Fatalf("expected %d, got %d (body %s)", c.want, w.Code, w.Body.String())
				}
				var body struct {
					Code string `json:"code"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("unexpected body: %v", err)
				}
				if body.Code != c.code {
					t.Fatalf("expected code %s, got %s", c.code, body.Code)
				}
			})
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISettlementUseCase(ctrl)
		r := newSettlementRouter(NewSettlementHandler(uc))

		uc.EXPECT().StartPayment(gomock.Any(), "q-1", "hosted_checkout").Return(usecase.StartPaymentResult{
			Payment: entities.PaymentRecord{
				ID: "pay-1", Numero: "PAG-202608-0001", CorrelationID: "cs_1",
				Status: entities.PaymentStatusPending,
			},
			RedirectURL: "https://pay.example/s/cs_1",
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/start",
			bytes.NewBufferString(`{"quotation_id":"q-1","method":"hosted_checkout"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
		}
		var body struct {
			PaymentID     string `json:"payment_id"`
			CorrelationID string `json:"correlation_id"`
			RedirectURL   string `json:"redirect_url"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body.PaymentID != "pay-1" || body.CorrelationID != "cs_1" || body.RedirectURL != "https://pay.example/s/cs_1" {
			t.Fatalf("unexpected response %+v", body)
		}
	})
}

func TestSettlementHandler_ConfirmPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing correlation id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISettlementUseCase(ctrl)
		r := newSettlementRouter(NewSettlementHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/confirm", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("malformed correlation id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISettlementUseCase(ctrl)
		r := newSettlementRouter(NewSettlementHandler(uc))

		uc.EXPECT().ConfirmPayment(gomock.Any(), "bogus", gomock.Any()).
			Return(usecase.ConfirmPaymentResult{}, usecase.ErrInvalidCorrelation)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/confirm",
			bytes.NewBufferString(`{"correlation_id":"bogus"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success includes payment and quotation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISettlementUseCase(ctrl)
		r := newSettlementRouter(NewSettlementHandler(uc))

		uc.EXPECT().ConfirmPayment(gomock.Any(), "COT-q-1-1756600000000", gomock.Any()).
			Return(usecase.ConfirmPaymentResult{
				Payment:   entities.PaymentRecord{ID: "pay-1", Status: entities.PaymentStatusCompleted},
				Quotation: entities.Quotation{ID: "q-1", Status: entities.QuotationStatusPagada},
			}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/confirm",
			bytes.NewBufferString(`{"correlation_id":"COT-q-1-1756600000000","gateway_token":{"payment_id":"5"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
		}
		var body struct {
			Payment struct {
				Status string `json:"status"`
			} `json:"payment"`
			Quotation struct {
				Status string `json:"status"`
			} `json:"quotation"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body.Payment.Status != "COMPLETED" || body.Quotation.Status != "PAGADA" {
			t.Fatalf("unexpected response %+v", body)
		}
	})
}

func TestSettlementHandler_GetPaymentStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISettlementUseCase(ctrl)
		r := newSettlementRouter(NewSettlementHandler(uc))

		uc.EXPECT().GetByCorrelationID(gomock.Any(), "cs_404").
			Return(entities.PaymentRecord{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/status?correlation_id=cs_404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockISettlementUseCase(ctrl)
		r := newSettlementRouter(NewSettlementHandler(uc))

		uc.EXPECT().GetByCorrelationID(gomock.Any(), "cs_1").
			Return(entities.PaymentRecord{ID: "pay-1", CorrelationID: "cs_1", Status: entities.PaymentStatusPending}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/status?correlation_id=cs_1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			PaymentID string `json:"payment_id"`
			Status    string `json:"status"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body.PaymentID != "pay-1" || body.Status != "PENDING" {
			t.Fatalf("unexpected response %+v", body)
		}
	})
}

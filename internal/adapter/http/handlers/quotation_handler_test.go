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

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newQuotationRouter(h *QuotationHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/quotations", h.CreateQuotation)
	r.GET("/v1/quotations/:id", h.GetQuotation)
	r.POST("/v1/quotations/expire-sweep", h.ExpireSweep)
	return r
}

func TestQuotationHandler_CreateQuotation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validBody := `{"patient_id":"patient-1","items":[{"exam_id":"exam-hem","exam_name":"Hemograma","quantity":2,"unit_price":15.5}],"discount":5}`

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := newQuotationRouter(NewQuotationHandler(uc, nil))

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations", bytes.NewBufferString(`{"items":[]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("negative validity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := newQuotationRouter(NewQuotationHandler(uc, nil))

		body := `{"patient_id":"patient-1","items":[{"exam_id":"e","exam_name":"n","quantity":1,"unit_price":1}],"valid_for_hours":-1}`
		req := httptest.NewRequest(http.MethodPost, "/v1/quotations", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := newQuotationRouter(NewQuotationHandler(uc, nil))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quotation{}, usecase.ErrInvalidTotals)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations", bytes.NewBufferString(validBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := newQuotationRouter(NewQuotationHandler(uc, nil))

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, in usecase.CreateQuotationInput) (entities.Quotation, error) {
				if in.PatientID != "patient-1" || len(in.Items) != 1 || in.Discount != 5 {
					t.Fatalf("unexpected input %+v", in)
				}
				return entities.Quotation{
					ID: "q-1", Numero: "COT-202608-0001", PatientID: in.PatientID,
					Subtotal: 31, Discount: 5, Total: 26,
					Status: entities.QuotationStatusPendiente,
				}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations", bytes.NewBufferString(validBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
		}
		var body struct {
			QuotationID string `json:"quotation_id"`
			Numero      string `json:"numero"`
			Status      string `json:"status"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body.QuotationID != "q-1" || body.Numero != "COT-202608-0001" || body.Status != "PENDIENTE" {
			t.Fatalf("unexpected response %+v", body)
		}
	})
}

func TestQuotationHandler_GetQuotation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := newQuotationRouter(NewQuotationHandler(uc, nil))

		uc.EXPECT().GetByID(gomock.Any(), "q-404").Return(entities.Quotation{}, usecase.ErrQuotationNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotations/q-404", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		r := newQuotationRouter(NewQuotationHandler(uc, nil))

		uc.EXPECT().GetByID(gomock.Any(), "q-1").
			Return(entities.Quotation{ID: "q-1", Status: entities.QuotationStatusAceptada}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotations/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuotationHandler_ExpireSweep(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("sweep error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		exp := mocks.NewMockIExpirationUseCase(ctrl)
		r := newQuotationRouter(NewQuotationHandler(nil, exp))

		exp.EXPECT().Sweep(gomock.Any()).Return(0, errors.New("scan failed"))

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/expire-sweep", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		exp := mocks.NewMockIExpirationUseCase(ctrl)
		r := newQuotationRouter(NewQuotationHandler(nil, exp))

		exp.EXPECT().Sweep(gomock.Any()).Return(3, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/quotations/expire-sweep", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]int
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unexpected body: %v", err)
		}
		if body["expired"] != 3 {
			t.Fatalf("expected 3 expired, got %d", body["expired"])
		}
	})
}

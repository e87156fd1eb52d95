package handlers

import (
	"errors"
	"log"
	"net/http"

	request "labclin/internal/adapter/http/dto/request"
	response "labclin/internal/adapter/http/dto/response"
	"labclin/internal/usecase"
	"labclin/pkg"

	"github.com/gin-gonic/gin"
)

// QuotationHandler handles HTTP requests for quotations and the expiration
// sweep.

type QuotationHandler struct {
	usecase    usecase.IQuotationUseCase
	expiration usecase.IExpirationUseCase
}

func NewQuotationHandler(uc usecase.IQuotationUseCase, expiration usecase.IExpirationUseCase) *QuotationHandler {
	return &QuotationHandler{usecase: uc, expiration: expiration}
}

// CreateQuotation persists a new quotation with an expiration horizon.
//
// @Summary      Create a quotation
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        body body request.QuotationCreateRequest true "quotation lines and discount"
// @Success      200 {object} response.QuotationResponse
// @Failure      400 {object} pkg.HTTPError
// @Router       /quotations [post]
func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	var req request.QuotationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[quotation][handler] create invalid body err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_QUOTATION_INPUT", "Invalid quotation payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	in, err := req.ToInput()
	if err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_QUOTATION_INPUT", "Invalid quotation payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	q, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		log.Printf("[quotation][handler] create failed patient_id=%s err=%v", req.PatientID, err)
		appErr := mapQuotationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[quotation][handler] create success quotation_id=%s numero=%s total=%.2f", q.ID, q.Numero, q.Total)

	c.JSON(http.StatusOK, response.FromQuotation(q))
}

// GetQuotation returns a quotation snapshot.
//
// @Summary      Get a quotation by id
// @Tags         quotations
// @Produce      json
// @Param        id path string true "quotation id"
// @Success      200 {object} response.QuotationResponse
// @Failure      404 {object} pkg.HTTPError
// @Router       /quotations/{id} [get]
func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	id := c.Param("id")

	q, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[quotation][handler] get failed quotation_id=%s err=%v", id, err)
		appErr := mapQuotationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuotation(q))
}

// ExpireSweep runs one expiration pass over overdue quotations.
//
// @Summary      Expire overdue quotations
// @Tags         quotations
// @Produce      json
// @Success      200 {object} map[string]int
// @Router       /quotations/expire-sweep [post]
func (h *QuotationHandler) ExpireSweep(c *gin.Context) {
	expired, err := h.expiration.Sweep(c.Request.Context())
	if err != nil {
		log.Printf("[quotation][handler] sweep failed err=%v", err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": expired})
}

func mapQuotationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPatientID),
		errors.Is(err, usecase.ErrInvalidQuotationItem),
		errors.Is(err, usecase.ErrInvalidTotals),
		errors.Is(err, usecase.ErrInvalidExpiration),
		errors.Is(err, usecase.ErrInvalidQuotationID):
		return pkg.NewDomainErrorSimple("INVALID_QUOTATION_INPUT", "Invalid quotation payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuotationNotFound):
		return pkg.NewDomainErrorSimple("QUOTATION_NOT_FOUND", "Quotation not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

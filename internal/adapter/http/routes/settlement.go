package routes

import (
	"labclin/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotations = "/quotations"
	PathPayments   = "/payments"
	PathWebhook    = "/webhook"
)

func addQuotationRoutes(rg *gin.RouterGroup, quotationHandler *handlers.QuotationHandler) {
	quotations := rg.Group(PathQuotations)
	{
		quotations.POST("", quotationHandler.CreateQuotation)
		quotations.GET("/:id", quotationHandler.GetQuotation)
		quotations.POST("/expire-sweep", quotationHandler.ExpireSweep)
	}
}

func addSettlementRoutes(rg *gin.RouterGroup, settlementHandler *handlers.SettlementHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/start", settlementHandler.StartPayment)
		payments.POST("/confirm", settlementHandler.ConfirmPayment)
		payments.GET("/status", settlementHandler.GetPaymentStatus)
	}
}

// The webhook route is public: authenticity comes from the payload
// signature, not from a bearer token.
func addWebhookRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler) {
	rg.POST(PathWebhook, webhookHandler.HandleWebhook)
}

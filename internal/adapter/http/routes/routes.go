package routes

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "labclin/docs" // swag-generated
	"labclin/internal/adapter/http/handlers"
	"labclin/internal/adapter/persistence/repository"
	"labclin/internal/infrastructure/database"
	"labclin/internal/infrastructure/payments"
	"labclin/internal/usecase"
	"labclin/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	quotationRepo := repository.NewQuotationDynamoRepository(ddb)
	paymentRepo := repository.NewPaymentRecordDynamoRepository(ddb)
	uow := repository.NewSettlementTxnDynamoRepository(ddb)
	sequences := repository.NewSequenceDynamoRepository(ddb)
	audit := repository.NewAuditDynamoRepository(ddb)

	gateways := map[string]interfaces.IPaymentGateway{}

	mpGateway, err := payments.NewMercadoPagoGateway(payments.MercadoPagoConfig{
		AccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		SuccessURL:  os.Getenv("MERCADOPAGO_SUCCESS_URL"),
		FailureURL:  os.Getenv("MERCADOPAGO_FAILURE_URL"),
		PendingURL:  os.Getenv("MERCADOPAGO_PENDING_URL"),
		CurrencyID:  getenvDefault("MERCADOPAGO_CURRENCY_ID", "CLP"),
		TaxRate:     getenvFloat("MERCADOPAGO_TAX_RATE", 0),
	})
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		gateways[payments.GatewayMercadoPago] = mpGateway
	}

	hostedGateway, err := payments.NewHostedCheckoutGateway(payments.HostedCheckoutConfig{
		BaseURL:       os.Getenv("HOSTED_CHECKOUT_BASE_URL"),
		APIKey:        os.Getenv("HOSTED_CHECKOUT_API_KEY"),
		WebhookSecret: os.Getenv("HOSTED_CHECKOUT_WEBHOOK_SECRET"),
		SuccessURL:    os.Getenv("HOSTED_CHECKOUT_SUCCESS_URL"),
		CancelURL:     os.Getenv("HOSTED_CHECKOUT_CANCEL_URL"),
		Currency:      getenvDefault("HOSTED_CHECKOUT_CURRENCY", "CLP"),
		TaxRate:       getenvFloat("HOSTED_CHECKOUT_TAX_RATE", 0),
	})
	if err != nil {
		log.Printf("Hosted checkout gateway not configured: %v", err)
	} else {
		gateways[payments.GatewayHostedCheckout] = hostedGateway
	}

	settlementUseCase := usecase.NewSettlementUseCase(quotationRepo, paymentRepo, uow, sequences, gateways, audit)
	quotationUseCase := usecase.NewQuotationUseCase(quotationRepo, sequences)
	expirationUseCase := usecase.NewExpirationUseCase(quotationRepo, audit)

	settlementHandler := handlers.NewSettlementHandler(settlementUseCase)
	quotationHandler := handlers.NewQuotationHandler(quotationUseCase, expirationUseCase)

	// Rutas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuotationRoutes(v1, quotationHandler)
	addSettlementRoutes(v1, settlementHandler)

	if hostedGateway != nil {
		webhookHandler := handlers.NewWebhookHandler(hostedGateway, settlementUseCase, audit)
		addWebhookRoutes(v1, webhookHandler)
	}

	startExpirationSweeper(expirationUseCase)
}

// startExpirationSweeper runs the periodic sweep when an interval is
// configured; lazy expiration inside StartPayment covers the rest.
func startExpirationSweeper(expiration usecase.IExpirationUseCase) {
	raw := os.Getenv("EXPIRATION_SWEEP_INTERVAL")
	if raw == "" {
		return
	}
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		log.Printf("invalid EXPIRATION_SWEEP_INTERVAL %q, sweeper disabled", raw)
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := expiration.Sweep(context.Background()); err != nil {
				log.Printf("[expiration][sweeper] pass failed err=%v", err)
			}
		}
	}()
	log.Printf("expiration sweeper started interval=%s", interval)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.2f", key, v, def)
		return def
	}
	return f
}

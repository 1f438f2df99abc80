package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	accountsvc "domainhost/internal/service/account"
	catalogsvc "domainhost/internal/service/catalog"
	checkoutsvc "domainhost/internal/service/checkout"
	domainssvc "domainhost/internal/service/domains"
	fulfillmentsvc "domainhost/internal/service/fulfillment"
	notifysvc "domainhost/internal/service/notify"
	vouchersvc "domainhost/internal/service/voucher"
)

// Deps carries the services the router wires handlers to.
type Deps struct {
	AccountSvc     *accountsvc.Service
	CatalogSvc     *catalogsvc.Service
	CheckoutSvc    *checkoutsvc.Service
	DomainsSvc     *domainssvc.Service
	FulfillmentSvc *fulfillmentsvc.Service
	NotifySvc      *notifysvc.Service
	VoucherSvc     *vouchersvc.Service
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, rdb *redis.Client, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, rdb))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.Use(sessionMiddleware(), identifyUser(deps.AccountSvc))

	api.POST("/domains/check", h.checkAvailability)
	api.GET("/catalog/products", h.listProducts)
	api.GET("/catalog/landing", h.landing)

	api.POST("/auth/register", h.register)
	api.POST("/auth/login", h.login)
	api.POST("/auth/logout", h.logout)

	api.POST("/cart/domain", h.cartSetDomain)
	api.POST("/cart/plan", h.cartSetPlan)
	api.PATCH("/cart/options", h.cartUpdateOptions)
	api.GET("/checkout", h.checkoutSummary)
	api.POST("/checkout/voucher", h.applyVoucher)

	auth := api.Group("")
	auth.Use(requireUser())
	auth.POST("/checkout/payment", h.createPaymentIntent)
	auth.POST("/checkout/finalize", h.finalizeOrder)
	auth.GET("/orders/:orderID", h.orderStatus)

	auth.GET("/me", h.me)
	auth.PUT("/me", h.updateProfile)
	auth.GET("/me/domains", h.listDomains)
	auth.GET("/me/domains/:id", h.showDomain)
	auth.POST("/me/domains/transfer", h.transferDomain)
	auth.POST("/me/domains/:id/verification/resend", h.resendVerification)
	auth.POST("/me/domains/:id/lock", h.setDomainLock)
	auth.GET("/me/domains/:id/dns", h.listDNSRecords)
	auth.POST("/me/domains/:id/dns", h.createDNSRecord)
	auth.DELETE("/me/domains/:id/dns", h.deleteDNSRecord)
	auth.GET("/me/notifications", h.notifications)
	auth.POST("/me/notifications/:id/read", h.markNotificationRead)

	admin := api.Group("/admin")
	admin.Use(requireUser(), requireAdmin())
	admin.GET("/vouchers", h.adminListVouchers)
	admin.POST("/vouchers", h.adminCreateVoucher)
	admin.PATCH("/vouchers/:id", h.adminSetVoucherActive)
	admin.DELETE("/vouchers/:id", h.adminDeleteVoucher)
	admin.GET("/promos", h.adminListPromos)
	admin.POST("/promos", h.adminCreatePromo)
	admin.DELETE("/promos/:id", h.adminDeletePromo)
	admin.POST("/products", h.adminCreateProduct)
	admin.PUT("/products/:id", h.adminUpdateProduct)
	admin.DELETE("/products/:id", h.adminDeleteProduct)
	admin.GET("/settings", h.adminListSettings)
	admin.PUT("/settings", h.adminSetPrice)
	admin.POST("/notifications/broadcast", h.adminBroadcast)
	admin.GET("/fulfillments/failed", h.adminFailedFulfillments)
	admin.POST("/domains/:id/suspend", h.adminSuspendDomain)
	admin.POST("/domains/:id/unsuspend", h.adminUnsuspendDomain)

	return router
}

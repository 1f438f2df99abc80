package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"domainhost/internal/cart"
	"domainhost/internal/config"
	"domainhost/internal/db"
	paymentgw "domainhost/internal/gateway/payment"
	registrargw "domainhost/internal/gateway/registrar"
	"domainhost/internal/httpserver"
	fulfillmentrepo "domainhost/internal/repository/fulfillment"
	notifrepo "domainhost/internal/repository/notification"
	productrepo "domainhost/internal/repository/product"
	promorepo "domainhost/internal/repository/promo"
	sessionrepo "domainhost/internal/repository/session"
	settingrepo "domainhost/internal/repository/setting"
	userrepo "domainhost/internal/repository/user"
	voucherrepo "domainhost/internal/repository/voucher"
	accountsvc "domainhost/internal/service/account"
	catalogsvc "domainhost/internal/service/catalog"
	checkoutsvc "domainhost/internal/service/checkout"
	domainssvc "domainhost/internal/service/domains"
	fulfillmentsvc "domainhost/internal/service/fulfillment"
	notifysvc "domainhost/internal/service/notify"
	vouchersvc "domainhost/internal/service/voucher"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}

	registrarClient := registrargw.NewClient(cfg.RegistrarBaseURL, cfg.RegistrarUsername, cfg.RegistrarPassword, logger)
	paymentClient := paymentgw.NewClient(cfg.PaymentBaseURL, cfg.PaymentServerKey, logger)

	cartStore := cart.NewRedisStore(rdb, cfg.CartTTL)
	userRepo := userrepo.NewPostgres(dbpool)
	sessionRepo := sessionrepo.NewPostgres(dbpool)
	voucherRepo := voucherrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	promoRepo := promorepo.NewPostgres(dbpool)
	settingRepo := settingrepo.NewPostgres(dbpool)
	notifRepo := notifrepo.NewPostgres(dbpool)
	fulfillmentRepo := fulfillmentrepo.NewPostgres(dbpool)

	voucherService := vouchersvc.New(voucherRepo)
	accountService := accountsvc.New(userRepo, sessionRepo, registrarClient, logger)
	checkoutService := checkoutsvc.New(cartStore, voucherService, settingRepo, productRepo, paymentClient)
	fulfillmentService := fulfillmentsvc.New(cartStore, fulfillmentRepo, registrarClient, cfg.Nameservers, logger)
	domainsService := domainssvc.New(registrarClient, nil)
	catalogService := catalogsvc.New(productRepo, promoRepo, settingRepo, voucherRepo)
	notifyService := notifysvc.New(notifRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, rdb, httpserver.Deps{
		AccountSvc:     accountService,
		CatalogSvc:     catalogService,
		CheckoutSvc:    checkoutService,
		DomainsSvc:     domainsService,
		FulfillmentSvc: fulfillmentService,
		NotifySvc:      notifyService,
		VoucherSvc:     voucherService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

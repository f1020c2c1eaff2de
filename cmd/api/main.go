package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/notifier"
	"app/internal/payment"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.env is optional outside dev
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connection failed: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.Merchant{},
		&model.Customer{},
		&model.Shop{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Notification{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	//repositories
	merchantRepo := infraRepo.NewMerchantGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	shopRepo := infraRepo.NewShopGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	notificationRepo := infraRepo.NewNotificationGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//notification channels
	smsChannel := notifier.NewSMSChannel(cfg.SMSAPIURL, cfg.SMSAPIKey, cfg.SMSSender)
	emailChannel := notifier.NewEmailChannel(cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.SenderEmail)
	orderNotifier := notifier.New(notificationRepo, customerRepo, smsChannel, emailChannel)

	//payment gateways
	gateways := map[model.PaymentMethod]payment.Gateway{
		model.PaymentMethodMobileMoney: payment.NewMobileMoneyGateway(cfg.MobileMoneyAPIURL, cfg.MobileMoneyAPIKey),
		model.PaymentMethodCard:        payment.NewCardGateway(cfg.CardAPIURL, cfg.CardAPIKey),
	}

	//usecases
	authUC := usecase.NewAuthUsecase(merchantRepo, customerRepo, cfg.JWTSecret)
	merchantUC := usecase.NewMerchantUsecase(merchantRepo)
	shopUC := usecase.NewShopUsecase(shopRepo, productRepo, cfg.QRDir, cfg.PublicBaseURL)
	productUC := usecase.NewProductUsecase(productRepo, shopRepo, inventoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo, shopRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, cartRepo, shopRepo)
	paymentUC := usecase.NewPaymentUsecase(paymentRepo, orderRepo, gateways, orderNotifier)
	merchantOrderUC := usecase.NewMerchantOrderUsecase(orderRepo, orderItemRepo, orderNotifier)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)

	//handlers
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(authUC),
		Product:       handler.NewProductHandler(productUC),
		Shop:          handler.NewShopHandler(shopUC),
		Cart:          handler.NewCartHandler(cartUC),
		Order:         handler.NewOrderHandler(orderUC),
		Payment:       handler.NewPaymentHandler(paymentUC),
		MerchantOrder: handler.NewMerchantOrderHandler(merchantOrderUC),
		Merchant:      handler.NewMerchantHandler(merchantUC),
		Notification:  handler.NewNotificationHandler(notificationUC),
	}

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, handlers); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

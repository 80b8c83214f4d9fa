package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-betting-api/internal/banking"
	"github.com/onerilhan/go-betting-api/internal/config"
	"github.com/onerilhan/go-betting-api/internal/db"
	"github.com/onerilhan/go-betting-api/internal/handlers"
	"github.com/onerilhan/go-betting-api/internal/logger"
	"github.com/onerilhan/go-betting-api/internal/middleware"
	"github.com/onerilhan/go-betting-api/internal/repository"
	"github.com/onerilhan/go-betting-api/internal/services"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		stdlog.Println(".env dosyası bulunamadı, ortam değişkenlerinden okunacak.")
	}

	// config yükle
	cfg := config.LoadConfig()

	// logger başlat
	logger.Init(cfg.AppEnv)

	log.Info().
		Str("environment", cfg.AppEnv).
		Str("port", cfg.Port).
		Msg("🚀 Bahis API Projesi başlatıldı")

	// Database bağlantısı
	database, err := db.Connect(cfg.GetDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Veritabanı bağlantısı başarısız")
	}
	defer database.Close()

	// Repository katmanı
	userRepo := repository.NewUserRepository(database)
	eventRepo := repository.NewEventRepository(database)
	betRepo := repository.NewBetRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)
	paymentRepo := repository.NewPaymentRepository(database)

	// Service katmanı
	userService := services.NewUserService(userRepo)
	balanceService := services.NewBalanceService(userRepo)
	betService := services.NewBetService(database, betRepo, eventRepo, transactionRepo, balanceService)
	eventService := services.NewEventService(database, eventRepo, betService, betService)

	// Mock banka: webhook'lar PaymentService'e teslim edilir.
	// paymentService henüz oluşmadığı için closure üzerinden geç bağlanır.
	var paymentService *services.PaymentService
	bankMock := banking.NewTinkoffMock(banking.MockConfig{
		WebhookDelay:       cfg.BankWebhookDelay,
		PayoutDelay:        cfg.BankPayoutDelay,
		PayoutFailRate:     cfg.BankPayoutFailRate,
		PaymentPageBaseURL: cfg.FrontendURL,
	}, func(webhook *banking.Webhook) error {
		return paymentService.HandleWebhook(webhook)
	})

	paymentService = services.NewPaymentService(
		database, paymentRepo, transactionRepo, userRepo, balanceService,
		bankMock, cfg.MinPaymentAmount,
	)

	// Handler katmanı
	userHandler := handlers.NewUserHandler(userService, balanceService, transactionRepo)
	eventHandler := handlers.NewEventHandler(eventService)
	betHandler := handlers.NewBetHandler(betService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	bankMockHandler := handlers.NewBankMockHandler(bankMock)

	// Gorilla Mux Router Setup
	router := setupRouter(cfg, userHandler, eventHandler, betHandler, paymentHandler, bankMockHandler)

	// HTTP Server configuration
	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown setup
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Server'ı goroutine'de başlat
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("addr", serverAddr).
			Msg("🌐 HTTP Server (Gorilla Mux) başlatıldı")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("❌ Server başlatma hatası")
		}
	}()

	// Shutdown signal'ını bekle
	<-shutdown
	log.Info().Msg("🛑 Shutdown signal alındı, server kapatılıyor...")

	// Graceful shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// 1. HTTP Server'ı kapat (aktif bağlantıları bekle)
	log.Info().Msg("📡 HTTP Server kapatılıyor...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP Server kapatma hatası")
	} else {
		log.Info().Msg("✅ HTTP Server başarıyla kapatıldı")
	}

	// 2. Zamanlanmış mock webhook'ların teslimini bekle
	log.Info().Msg("🏦 Bekleyen banka webhook'ları tamamlanıyor...")
	bankMock.Wait()

	// 3. Database bağlantısını kapat (defer ile zaten kapatılacak)
	log.Info().Msg("🗄️  Database bağlantısı kapatılıyor...")

	log.Info().Msg("👋 Bahis API başarıyla kapatıldı")
}

// setupRouter Gorilla Mux router'ını ayarlar
func setupRouter(
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	eventHandler *handlers.EventHandler,
	betHandler *handlers.BetHandler,
	paymentHandler *handlers.PaymentHandler,
	bankMockHandler *handlers.BankMockHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Global middleware zinciri
	router.Use(middleware.RequestLoggingMiddleware(nil))
	router.Use(middleware.CORSMiddleware(middleware.CORSConfigForOrigin(cfg.FrontendURL)))
	router.Use(middleware.NewRateLimitMiddleware(nil).Handler())

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// API v1 subrouter
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints (Authentication)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", userHandler.Register).Methods("POST")
	auth.HandleFunc("/login", userHandler.Login).Methods("POST")

	// Banka webhook'u public: banka JWT taşımaz
	api.HandleFunc("/payments/webhook", paymentHandler.Webhook).Methods("POST")

	// Mock ödeme sayfası onayı (sadece development akışı için)
	api.HandleFunc("/bank-mock/confirm", bankMockHandler.ConfirmPayment).Methods("POST")

	// Protected endpoints (Authentication required)
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware)

	// User endpoints
	users := protected.PathPrefix("/users").Subrouter()
	users.HandleFunc("/profile", userHandler.GetProfile).Methods("GET")
	users.HandleFunc("/balance", userHandler.GetBalance).Methods("GET")
	users.HandleFunc("/transactions", userHandler.GetTransactions).Methods("GET")
	users.HandleFunc("/participants", userHandler.GetParticipants).Methods("GET")

	// Event endpoints
	events := protected.PathPrefix("/events").Subrouter()
	events.HandleFunc("", eventHandler.GetAll).Methods("GET")
	events.HandleFunc("/{id:[0-9]+}", eventHandler.GetByID).Methods("GET")
	events.Handle("", middleware.RequirePermission(middleware.PermManageEvents)(
		http.HandlerFunc(eventHandler.Create))).Methods("POST")
	events.Handle("/{id:[0-9]+}", middleware.RequirePermission(middleware.PermManageEvents)(
		http.HandlerFunc(eventHandler.Update))).Methods("PUT")
	events.Handle("/{id:[0-9]+}/end", middleware.RequirePermission(middleware.PermResolveEvents)(
		http.HandlerFunc(eventHandler.End))).Methods("POST")
	events.Handle("/{id:[0-9]+}/cancel", middleware.RequirePermission(middleware.PermResolveEvents)(
		http.HandlerFunc(eventHandler.Cancel))).Methods("POST")

	// Participant istatistikleri (yarışmacının kendi görünümü)
	protected.Handle("/participants/me/stats", middleware.RequirePermission(middleware.PermViewOwnStats)(
		http.HandlerFunc(eventHandler.GetMyStats))).Methods("GET")

	// Bet endpoints
	bets := protected.PathPrefix("/bets").Subrouter()
	bets.Handle("", middleware.RequirePermission(middleware.PermPlaceBet)(
		http.HandlerFunc(betHandler.PlaceBet))).Methods("POST")
	bets.HandleFunc("", betHandler.GetMyBets).Methods("GET")
	bets.HandleFunc("/{id:[0-9]+}", betHandler.GetByID).Methods("GET")

	// Payment endpoints
	payments := protected.PathPrefix("/payments").Subrouter()
	payments.Handle("/deposit", middleware.RequirePermission(middleware.PermInitDeposit)(
		http.HandlerFunc(paymentHandler.InitDeposit))).Methods("POST")
	payments.Handle("/withdrawal", middleware.RequirePermission(middleware.PermInitWithdrawal)(
		http.HandlerFunc(paymentHandler.InitWithdrawal))).Methods("POST")
	payments.HandleFunc("", paymentHandler.GetMyPayments).Methods("GET")
	payments.HandleFunc("/{id:[0-9]+}", paymentHandler.GetStatus).Methods("GET")

	// Route listesini log'la (development için)
	router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			methods, _ := route.GetMethods()
			log.Debug().
				Str("path", pathTemplate).
				Strs("methods", methods).
				Msg("📍 Route registered")
		}
		return nil
	})

	return router
}

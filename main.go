package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"hotel-booking-backend/config"
	"hotel-booking-backend/controllers"
	"hotel-booking-backend/payments"
	"hotel-booking-backend/routes"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Required Stripe key (fatal if missing — no provider, no bookings)
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		log.Fatal("❌ ERROR: STRIPE_SECRET_KEY environment variable is not set. Cannot initialize payment provider.")
	}
	log.Println("✅ STRIPE_SECRET_KEY detected.")

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services
	provider := payments.NewStripeProvider(stripeKey, utils.EnvOrDefault("PAYMENT_CURRENCY", "usd"))
	hub := services.NewHub()

	inventoryService := services.NewInventoryService(db)
	pricingService := services.NewPricingService()
	paymentService := services.NewPaymentService(db, inventoryService, pricingService, provider)
	bookingService := services.NewBookingService(db, inventoryService, provider, hub)
	refundService := services.NewRefundService(db, inventoryService, provider, hub)
	sweeperService := services.NewSweeperService(db, bookingService, provider)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService, paymentService)
	refundController := controllers.NewRefundController(refundService)
	eventsController := controllers.NewEventsController(hub)

	// Lifecycle sweeper: explicit, injected schedule — nothing self-registers.
	schedule := utils.EnvOrDefault("SWEEP_CRON", "0 0 * * *")
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(schedule, func() {
		sweeperService.Run(context.Background())
	}); err != nil {
		log.Fatalf("❌ Invalid SWEEP_CRON %q: %v", schedule, err)
	}
	scheduler.Start()
	log.Printf("✅ Lifecycle sweeper scheduled (%s)", schedule)

	// Build router
	router := routes.SetupRouter(bookingController, refundController, eventsController)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	cronCtx := scheduler.Stop()
	<-cronCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/catalog"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/config"
	mpesaControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/mpesa"
	orderControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/order"
	paypalControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/paypal"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/models"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.Rating{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Load the product catalog once; read-only afterwards
	cat, err := catalog.Load(cfg.ProductsPath)
	if err != nil {
		log.Fatalf("❌ Failed to load product catalog: %v", err)
	}

	// Payment gateway clients; either may be absent in a given deployment
	var mpesaGateway orderControllers.MpesaGateway
	mpesaClient, err := mpesaControllers.NewClient(cfg)
	if err != nil {
		log.Printf("⚠️ M-Pesa disabled: %v", err)
	} else {
		mpesaGateway = mpesaClient
	}

	var paypalVerifier orderControllers.PayPalVerifier
	paypalClient, err := paypalControllers.NewClient(cfg)
	if err != nil {
		log.Printf("⚠️ PayPal disabled: %v", err)
	} else {
		paypalVerifier = paypalClient
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve product images and other static assets
	r.Static("/public", "public")

	// Setup routes
	routes.SetupRoutes(r, db, cat, cfg, mpesaGateway, paypalVerifier)

	// Settle M-Pesa orders whose callback never arrived: query the gateway
	// every 10 minutes for pushes still Pending after 5 minutes.
	if mpesaClient != nil {
		go mpesaControllers.StartReconciler(db, mpesaClient, 10*time.Minute, 5*time.Minute)
	}

	// Start server
	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.Config) *gorm.DB {
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

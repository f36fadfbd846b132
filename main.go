package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"heirloom/internal/handlers"
	"heirloom/internal/middleware"
	"heirloom/internal/models"
	"heirloom/internal/repositories"
	"heirloom/internal/services"
	"heirloom/internal/views"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("FAMILY_CODE", "2026")
	viper.SetDefault("DIARY_YEAR", 2026)
	viper.SetDefault("DATABASE_PATH", "heirloom.db")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SESSION_EXPIRATION", 24*time.Hour)
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_URL"), viper.GetString("DATABASE_PATH"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Entry{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	entryRepo := repositories.NewGORMEntryRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo)
	diaryService := services.NewDiaryService(entryRepo, userRepo, viper.GetInt("DIARY_YEAR"))

	// --- Session Store ---
	// Server-side sessions carry the cover-unlocked flag and the
	// authenticated user identity.
	store := session.New(session.Config{
		Expiration: viper.GetDuration("SESSION_EXPIRATION"),
	})

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService, store, viper.GetString("FAMILY_CODE"))
	diaryHandler := handlers.NewDiaryHandler(diaryService)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		Views: views.Engine(),
	})

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- Routes ---
	// Cover, unlock and the auth forms are public; everything behind the
	// diary requires an authenticated session.
	authHandler.RegisterRoutes(app)

	protected := app.Group("", middleware.AuthRequired(store))
	diaryHandler.RegisterRoutes(protected)
	authHandler.RegisterProtectedRoutes(protected)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// openDatabase connects to Postgres when a DATABASE_URL is configured and
// falls back to the local SQLite file otherwise.
func openDatabase(databaseURL, databasePath string) (*gorm.DB, error) {
	if databaseURL != "" {
		return gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
}

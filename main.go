package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"hrms/config"
	_ "hrms/docs"
	"hrms/pkg/paseto"
	"hrms/repository"
	"hrms/router"
	"hrms/seeder"

	_ "time/tzdata"
)

// @title HRMS API
// @version 1.0
// @description Human resource management API covering employees, attendance, leaves, payroll, performance and recruitment
//
// @contact.name API Support
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Employees
// @tag.description Employee master data endpoints
//
// @tag.name Attendance
// @tag.description Check-in/check-out and reporting endpoints
//
// @tag.name Leaves
// @tag.description Leave request and balance endpoints
//
// @tag.name Payroll
// @tag.description Payslip calculation and listing endpoints
//
// @tag.name Performance
// @tag.description Evaluation and analytics endpoints
//
// @tag.name Recruitment
// @tag.description Job posting and application endpoints
//
// @tag.name Calendar
// @tag.description Company workday calendar endpoints
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Disconnect(ctx); err != nil {
			log.Printf("Failed to disconnect from database: %v", err)
		}
	}()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	if err := db.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	tokenMaker, err := paseto.NewMaker(cfg.PasetoSecret)
	if err != nil {
		log.Fatalf("Failed to initialize token maker: %v", err)
	}

	if cfg.SeedAdmin {
		seeder.SeedAdmin(repository.NewUserRepository(db))
	}

	app := fiber.New()

	config.SetupCORS(app)
	app.Use(logger.New())

	router.SetupRoutes(app, db, cfg, tokenMaker)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}

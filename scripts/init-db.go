package main

import (
	"fmt"
	"log"

	"retail_pos/internal/config"
	"retail_pos/internal/database"
	"retail_pos/internal/migrations"
	"retail_pos/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Drop and recreate everything for a clean slate
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.User{},
		&models.Category{},
		&models.Company{},
		&models.Tag{},
		&models.Product{},
		&models.Bill{},
		&models.BillItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Vendor{},
		&models.IncomingOrder{},
		&models.IncomingOrderComment{},
		&models.Customer{},
		&models.Transaction{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Println("Database initialization completed successfully!")
}

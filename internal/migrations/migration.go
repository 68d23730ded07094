package migrations

import (
	"log"

	"retail_pos/internal/models"
	"retail_pos/internal/repository"
	"retail_pos/internal/services"

	"gorm.io/gorm"
)

// RunMigrations creates the schema and default data.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
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
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData seeds the admin account and a starter catalog.
func createDefaultData(db *gorm.DB) error {
	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	if existing, err := userRepo.GetByEmail("admin@example.com"); err == nil && existing != nil {
		log.Println("Admin user already exists")
		return nil
	}

	log.Println("Creating admin user...")
	admin := &models.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Role:     string(models.RoleAdmin),
		IsActive: true,
	}
	if err := userService.Register(admin, "admin123"); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created (admin@example.com / admin123)")
	}

	catalogRepo := repository.NewCatalogRepository(db)
	for _, name := range []string{"Shirts", "Trousers", "Footwear"} {
		catalogRepo.CreateCategory(&models.Category{Name: name})
	}
	for _, name := range []string{"Generic", "House Brand"} {
		catalogRepo.CreateCompany(&models.Company{Name: name})
	}

	log.Println("Default data created successfully!")
	return nil
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/solarspark/store/internal/models"
	pkgconfig "github.com/solarspark/store/pkg/config"
	pkgdb "github.com/solarspark/store/pkg/db"
	"github.com/solarspark/store/pkg/hash"
	"gorm.io/gorm"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var sampleProducts = []models.Product{
	{
		Name:        "Solar Panel 400W Monocrystalline",
		Description: "High-efficiency 400W monocrystalline solar panel with 21.5% efficiency. Perfect for residential and commercial installations.",
		Price:       price("299.99"),
		Stock:       50,
		Category:    "Solar Panels",
		ImageURL:    "/assets/solar-panel-400w.jpg",
	},
	{
		Name:        "MPPT Solar Charge Controller 60A",
		Description: "60A MPPT solar charge controller with LCD display, supporting 12V/24V/48V systems and up to 150V input.",
		Price:       price("89.99"),
		Stock:       30,
		Category:    "Charge Controllers",
		ImageURL:    "/assets/mppt-controller.jpg",
	},
	{
		Name:        "Solar Inverter 5kW Pure Sine Wave",
		Description: "5000W pure sine wave solar inverter with grid-tie capability and smart monitoring system.",
		Price:       price("899.99"),
		Stock:       20,
		Category:    "Inverters",
		ImageURL:    "/assets/solar-inverter-5kw.jpg",
	},
	{
		Name:        "Lithium Battery 100Ah 12V",
		Description: "100Ah 12V lithium iron phosphate battery with 4000+ cycles and built-in BMS protection.",
		Price:       price("599.99"),
		Stock:       25,
		Category:    "Batteries",
		ImageURL:    "/assets/lithium-battery-100ah.jpg",
	},
	{
		Name:        "Solar Panel Mounting Kit",
		Description: "Complete roof mounting kit for solar panels including rails, clamps, and hardware for residential installations.",
		Price:       price("149.99"),
		Stock:       40,
		Category:    "Mounting & Hardware",
		ImageURL:    "/assets/mounting-kit.jpg",
	},
	{
		Name:        "Solar Cable 10AWG 100ft",
		Description: "100ft of 10AWG solar cable with UV protection and weather-resistant insulation.",
		Price:       price("79.99"),
		Stock:       60,
		Category:    "Cables & Connectors",
		ImageURL:    "/assets/solar-cable.jpg",
	},
	{
		Name:        "Solar Water Pump 12V",
		Description: "12V DC solar water pump with 3.5L/min flow rate, perfect for irrigation and water features.",
		Price:       price("45.99"),
		Stock:       35,
		Category:    "Water Pumps",
		ImageURL:    "/assets/water-pump.jpg",
	},
	{
		Name:        "Solar LED Street Light",
		Description: "30W solar LED street light with motion sensor, 12-hour operation, and 5-year warranty.",
		Price:       price("199.99"),
		Stock:       15,
		Category:    "Lighting",
		ImageURL:    "/assets/street-light.jpg",
	},
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sampleProducts).Error; err != nil {
			return err
		}
		log.Printf("created %d products", len(sampleProducts))

		order := models.Order{
			CustomerName:  "Sample Customer",
			CustomerEmail: "sample@example.com",
			ShippingAddress: models.ShippingAddress{
				Street:  "123 Sample St",
				City:    "Sample City",
				State:   "Sample State",
				ZipCode: "12345",
				Country: "Sample Country",
			},
			Subtotal:      price("274.99"),
			Tax:           price("20.62"),
			Shipping:      price("25.00"),
			Total:         price("320.61"),
			Status:        models.OrderStatusPending,
			PaymentMethod: models.PaymentCreditCard,
			Items: []models.OrderItem{
				{
					ProductID: sampleProducts[0].ID,
					Quantity:  1,
					UnitPrice: sampleProducts[0].Price,
				},
			},
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		log.Printf("created sample order %d", order.ID)

		passwordHash, err := hash.HashPassword("admin123")
		if err != nil {
			return err
		}
		admin := models.User{
			Email:        "admin@solarspark.dev",
			PasswordHash: passwordHash,
			Role:         models.RoleAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("created admin user %s", admin.Email)

		now := time.Now()
		welcome := models.DiscountCode{
			Code:        "WELCOME10",
			Description: "10% off your first solar order",
			Type:        models.DiscountPercentage,
			Value:       price("10"),
			IsActive:    true,
			ValidFrom:   now,
			ValidUntil:  now.AddDate(1, 0, 0),
		}
		if err := tx.Create(&welcome).Error; err != nil {
			return err
		}
		log.Printf("created discount code %s", welcome.Code)

		return nil
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	pkgconfig.MustNonEmpty(dsn, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, dsn)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("seed: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("seeding completed")
}

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_booking_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures a default admin, a demo guest and one hotel with rooms
// exist so a fresh deployment is bookable immediately.
func SeedDatabase() {
	// ---------------- Admins ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_DEFAULT_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: "admin@hotel.local",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Users ----------------
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		guest := models.User{FullName: "Demo Guest", Email: "guest@example.com"}
		if err := DB.Create(&guest).Error; err != nil {
			log.Printf("warning: failed to create demo guest: %v", err)
		}
	}

	// ---------------- Hotel + Rooms ----------------
	var hotelCount int64
	DB.Model(&models.Hotel{}).Count(&hotelCount)
	if hotelCount > 0 {
		log.Println("Hotels already seeded")
		return
	}

	seasonal, _ := json.Marshal([]models.SeasonalRule{
		{StartDate: "2025-12-15", EndDate: "2026-01-05", Price: 40},
		{StartDate: "2026-07-01", EndDate: "2026-08-31", Price: 25},
	})
	amenities, _ := json.Marshal([]string{"wifi", "pool", "parking", "breakfast"})

	hotel := models.Hotel{
		Name:            "Grand Horizon Hotel",
		Description:     "City-centre hotel with pool and conference rooms",
		Location:        "Bangkok",
		BasePrice:       100,
		SeasonalPricing: datatypes.JSON(seasonal),
		Amenities:       datatypes.JSON(amenities),
	}
	if err := DB.Create(&hotel).Error; err != nil {
		log.Fatalf("Failed to seed hotel: %v", err)
	}

	rooms := []models.Room{
		{HotelID: hotel.ID, RoomNumber: "101", Type: "Standard", Price: 100, MaxGuests: 2, Status: models.RoomStatusAvailable},
		{HotelID: hotel.ID, RoomNumber: "102", Type: "Standard", Price: 100, MaxGuests: 2, Status: models.RoomStatusAvailable},
		{HotelID: hotel.ID, RoomNumber: "201", Type: "Superior", Price: 140, MaxGuests: 3, Status: models.RoomStatusAvailable},
		{HotelID: hotel.ID, RoomNumber: "202", Type: "Superior", Price: 140, MaxGuests: 3, Status: models.RoomStatusAvailable},
		{HotelID: hotel.ID, RoomNumber: "301", Type: "Deluxe", Price: 200, MaxGuests: 4, Status: models.RoomStatusAvailable},
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Fatalf("Failed to seed rooms: %v", err)
	}

	log.Println("Hotel and rooms seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
		&models.RoomHold{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
	"github.com/JeanDev-10/hotel-booking-backend/internal/config"
	"github.com/JeanDev-10/hotel-booking-backend/internal/db"
	"github.com/JeanDev-10/hotel-booking-backend/internal/seed"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	if err := seed.Schema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}
	log.Println("schema ready")

	if err := seed.Statuses(ctx, pool); err != nil {
		log.Fatalf("statuses: %v", err)
	}
	if err := seed.RoomTypes(ctx, pool); err != nil {
		log.Fatalf("room types: %v", err)
	}

	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@hotel.local")
	adminPassword := getEnv("SEED_ADMIN_PASSWORD", "")
	if adminPassword == "" {
		log.Println("SEED_ADMIN_PASSWORD not set, skipping admin user")
	} else {
		hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
		if err := seed.AdminUser(ctx, pool, hasher, adminEmail, adminPassword); err != nil {
			log.Fatalf("admin user: %v", err)
		}
		log.Printf("admin user %s ready", adminEmail)
	}

	log.Println("seeding completed")
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

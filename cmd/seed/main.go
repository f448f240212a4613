package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/lamnt/koctrack-backend/config"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	"github.com/lamnt/koctrack-backend/internal/db"
)

func main() {
	username := flag.String("username", "admin", "username for the initial admin account")
	password := flag.String("password", "", "password for the initial admin account (required)")
	store := flag.String("store", "", "optional name of a first store to create")
	flag.Parse()

	if *password == "" {
		log.Fatal("Usage: go run cmd/seed/main.go -password <password> [-username admin] [-store name]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	userService := service.NewUserService(userRepo)

	user, err := userService.CreateUser(*username, *password, model.RoleAdmin)
	if err != nil {
		if err == service.ErrUsernameExists {
			fmt.Printf("User %q already exists, skipping.\n", *username)
		} else {
			log.Fatal("Failed to create admin user:", err)
		}
	} else {
		fmt.Printf("Created admin user %q (%s)\n", user.Username, user.ID)
	}

	if *store != "" {
		storeRepo := repository.NewStoreRepository(db.GetDB())
		bookingRepo := repository.NewBookingRepository(db.GetDB())
		storeService := service.NewStoreService(db.GetDB(), storeRepo, bookingRepo)

		created, err := storeService.CreateStore(*store, "", "")
		if err != nil {
			log.Fatal("Failed to create store:", err)
		}
		fmt.Printf("Created store %q (%s)\n", created.Name, created.ID)
	}

	fmt.Println("Seed completed successfully!")
}

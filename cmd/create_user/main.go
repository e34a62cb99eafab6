package main

import (
	"context"
	"flag"
	"log"
	"os"

	"todolist_backend/internal/db"
	"todolist_backend/internal/repository"
	"todolist_backend/internal/service"
)

// Seeds a user and prints a token for manual API testing.
func main() {
	email := flag.String("email", "test@example.com", "user email")
	password := flag.String("password", "password123", "user password")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	service.InitJWT(secret)

	pool := db.Connect(dsn)
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	auth := service.NewAuthService(users)
	ctx := context.Background()

	u, err := users.GetByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("lookup user: %v", err)
	}
	if u != nil {
		log.Printf("user already exists id=%d", u.ID)
	} else {
		u, err = auth.Register(ctx, *email, *password)
		if err != nil {
			log.Fatalf("create user: %v", err)
		}
		log.Printf("user created id=%d", u.ID)
	}

	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	log.Printf("token=%s", token)
}

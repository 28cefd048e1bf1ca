package main

import (
	"context"
	"log"
	"os"
	"time"

	"todo_webapp/internal/db"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// Registers a test account and prints a valid token for it. Useful for
// poking the API with curl without going through /register and /login.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	auth := service.NewAuthService(repo, jwtSecret, "@gmail.com", 24*time.Hour, bcrypt.DefaultCost)
	ctx := context.Background()

	user, err := repo.GetByUsername(ctx, "testuser")
	if err != nil {
		user, err = auth.Register(ctx, "testuser", "testuser@gmail.com", "Test1234!")
		if err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%d", user.ID)
	} else {
		log.Printf("user already exists id=%d", user.ID)
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		log.Fatalf("generate token failed: %v", err)
	}

	log.Printf("token: %s", token)
}

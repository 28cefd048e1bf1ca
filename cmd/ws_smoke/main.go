package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"todo_webapp/internal/db"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"

	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"
)

// Connects to the running server's /ws endpoint as a smoke-test user and
// prints every task event received for one minute. Run cmd/app first.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	auth := service.NewAuthService(repo, jwtSecret, "@gmail.com", 24*time.Hour, bcrypt.DefaultCost)
	ctx := context.Background()

	user, err := repo.GetByUsername(ctx, "wssmoke")
	if err != nil {
		user, err = auth.Register(ctx, "wssmoke", "wssmoke@gmail.com", "Smoke123!")
		if err != nil {
			log.Fatalf("create smoke user: %v", err)
		}
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	url := fmt.Sprintf("ws://localhost:%s/ws?token=%s", port, token)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()

	log.Printf("connected as user id=%d; waiting for task events", user.ID)

	deadline := time.Now().Add(time.Minute)
	conn.SetReadDeadline(deadline)
	for time.Now().Before(deadline) {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Printf("read: %v", err)
			return
		}
		fmt.Println(string(msg))
	}
}

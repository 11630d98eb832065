package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/veritasai/veritas-backend/internal/adapter/repository"
	"github.com/veritasai/veritas-backend/internal/domain/entities"
	"github.com/veritasai/veritas-backend/internal/infrastructure/database"
	"github.com/veritasai/veritas-backend/pkg/config"
)

// Seeds the users table with monitored accounts so mock reports have recipients.
func main() {
	log.Println("🚀 Starting test users creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	users := repository.NewUserRepository(db)

	// Define test users
	testUsers := []struct {
		Email     string
		Name      string
		Monitored bool
	}{
		{Email: "alice@test.local", Name: "Alice Martin", Monitored: true},
		{Email: "bob@test.local", Name: "Bob Stone", Monitored: true},
		{Email: "charlie@test.local", Name: "Charlie Ng", Monitored: false},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("🔑 Creating test users...")
	created := 0
	for i, testUser := range testUsers {
		existing, err := users.FindByEmail(ctx, testUser.Email)
		if err != nil {
			log.Printf("❌ Failed to look up %s: %v", testUser.Email, err)
			continue
		}
		if existing != nil {
			log.Printf("↩️  %s already exists, skipping", testUser.Email)
			continue
		}

		user := &entities.User{
			ID:                uuid.New(),
			Email:             testUser.Email,
			FullName:          testUser.Name,
			MonitoringEnabled: testUser.Monitored,
		}
		if err := users.Create(ctx, user); err != nil {
			log.Printf("❌ Failed to create user %s: %v", testUser.Email, err)
			continue
		}
		created++

		fmt.Printf("🟢 User %d: %s\n", i+1, testUser.Name)
		fmt.Printf("Email:        %s\n", user.Email)
		fmt.Printf("User ID:      %s\n", user.ID)
		fmt.Printf("Monitored:    %t\n", user.MonitoringEnabled)
		fmt.Printf("───────────────────────────────────────────────────────────────\n")
	}

	log.Printf("✅ Created %d test user(s)", created)
	log.Println("🧹 To clean up test users, run: DELETE FROM users WHERE email LIKE '%@test.local'")
}

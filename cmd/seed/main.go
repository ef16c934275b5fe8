// Command seed creates a demo user with a small ledger of transactions,
// useful for exercising the analytics endpoints locally.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"fido/internal/config"
	"fido/internal/models"
	"fido/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD must be set in environment")
	}

	db, err := repositories.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	if _, err := users.GetByEmail(ctx, email); err == nil {
		log.Println("Seed user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		FullName: "Seed User",
		Email:    email,
		Password: string(hashed),
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create seed user: %v", err)
	}

	txRepo := repositories.NewTransactionRepository(db)
	now := time.Now().UTC()
	seedTxs := []models.Transaction{
		{Amount: 5000, Type: models.TransactionTypeDebit, TransactionDate: now.AddDate(0, 0, -2)},
		{Amount: 3000, Type: models.TransactionTypeCredit, TransactionDate: now.AddDate(0, 0, -2)},
		{Amount: 1500, Type: models.TransactionTypeDebit, TransactionDate: now.AddDate(0, 0, -1)},
		{Amount: 7500, Type: models.TransactionTypeCredit, TransactionDate: now},
	}
	for _, tx := range seedTxs {
		tx.ID = uuid.New()
		tx.UserID = user.ID
		if err := txRepo.Create(ctx, &tx); err != nil {
			log.Fatalf("Failed to create seed transaction: %v", err)
		}
	}

	log.Printf("Seed user %s created with %d transactions", user.ID, len(seedTxs))
}

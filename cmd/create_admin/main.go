package main

import (
	"context"
	"log"
	"os"

	"earnfast/internal/db"
	"earnfast/internal/repository"
	"earnfast/internal/service"
)

func main() {
	// expects DATABASE_URL, ADMIN_EMAIL and ADMIN_PASSWORD env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewAdminRepository(pool)
	ctx := context.Background()

	if existing, err := repo.GetByEmail(ctx, email); err == nil {
		log.Printf("admin already exists id=%d email=%s\n", existing.ID, existing.Email)
		return
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password failed: %v", err)
	}

	var id int64
	err = pool.QueryRow(ctx,
		`INSERT INTO admins (email, password_hash) VALUES ($1, $2) RETURNING id`,
		email, hash,
	).Scan(&id)
	if err != nil {
		log.Fatalf("create admin failed: %v", err)
	}

	log.Printf("admin created id=%d email=%s\n", id, email)
}

// cmd/migrate/main.go
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"thriven-backend/internal/config"
	"thriven-backend/internal/infrastructure/database"
)

func main() {
	printOnly := flag.Bool("print", false, "print the schema instead of applying it")
	flag.Parse()

	if *printOnly {
		fmt.Print(database.Schema())
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("[Migrate] Failed to load database config: %v", err)
	}

	db, err := sql.Open("postgres", dbConfig.DSN())
	if err != nil {
		log.Fatalf("[Migrate] Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("[Migrate] Database unreachable: %v", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("[Migrate] Failed: %v", err)
	}

	log.Println("[Migrate] Done")
}

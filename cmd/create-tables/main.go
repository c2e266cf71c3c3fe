package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"ecommerce-analytics/internal/config"
	"ecommerce-analytics/internal/database"
	"ecommerce-analytics/internal/services"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	timeout := flag.Duration("timeout", time.Minute, "maximum time to spend creating tables")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		exitCode = 1
		return
	}

	db, err := database.Open(cfg)
	if err != nil {
		exitCode = 1
		return
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	created, err := services.NewSchemaService(db).CreateTables(ctx)
	if err != nil {
		log.Printf("Error creating tables: %v", err)
		exitCode = 1
		return
	}
	log.Printf("Tables created successfully (%d new).", len(created))
}

package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"ecommerce-analytics/internal/config"
	"ecommerce-analytics/internal/database"
	"ecommerce-analytics/internal/services"
	"ecommerce-analytics/pkg/rabbitmq"
	"ecommerce-analytics/scripts"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	dir := flag.String("dir", "", "directory to read the .sql files from (default: embedded scripts, or SCRIPTS_DIR)")
	timeout := flag.Duration("timeout", 10*time.Minute, "maximum time for the whole load")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		exitCode = 1
		return
	}

	source := scriptSource(*dir, cfg.ScriptsDir)

	db, err := database.Open(cfg)
	if err != nil {
		exitCode = 1
		return
	}
	defer database.Close(db)

	runner := services.NewScriptRunner(db, source, services.SeedScripts)
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, data loaded event will not be sent: %v", err)
		} else {
			defer mqClient.Close()
			runner.WithPublisher(mqClient)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if _, err := runner.Run(ctx); err != nil {
		log.Printf("Data load failed: %v", err)
		exitCode = 1
		return
	}
	log.Println("All .sql files executed successfully.")
}

// scriptSource picks the flag directory, then SCRIPTS_DIR, then the embedded files.
func scriptSource(flagDir, envDir string) fs.FS {
	switch {
	case flagDir != "":
		log.Printf("Reading scripts from %s", flagDir)
		return os.DirFS(flagDir)
	case envDir != "":
		log.Printf("Reading scripts from %s", envDir)
		return os.DirFS(envDir)
	default:
		return scripts.FS
	}
}

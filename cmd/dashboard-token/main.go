package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ecommerce-analytics/internal/config"
	"ecommerce-analytics/internal/services"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	subject := flag.String("subject", "operator", "name recorded in the token's sub claim")
	ttl := flag.Duration("ttl", services.DefaultTokenTTL, "token lifetime")
	flag.Parse()

	// Only the signing secret is needed, so the DB settings are not validated.
	_ = godotenv.Load()
	v := viper.New()
	config.SetDefaults(v)
	v.AutomaticEnv()

	token, err := services.NewTokenService(v.GetString("DASHBOARD_JWT_SECRET"), *ttl).Issue(*subject)
	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		exitCode = 1
		return
	}
	fmt.Println(token)
}

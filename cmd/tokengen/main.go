// Command tokengen mints an access token for local development and
// operational tooling. Production tokens come from the identity
// service.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"drivehire-backend/internal/config"
	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/security"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	userID := flag.Int64("user", 0, "User ID to mint the token for")
	role := flag.String("role", domain.RoleCustomer, "Role claim: customer, driver or admin")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "usage: tokengen -user <id> [-role customer|driver|admin] [-config path]")
		os.Exit(1)
	}
	switch *role {
	case domain.RoleCustomer, domain.RoleDriver, domain.RoleAdmin:
	default:
		log.Fatalf("Unknown role %q", *role)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	token, err := tokens.GenerateAccessToken(*userID, *role)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}

// Command tokengen mints an operator bearer token for the write routes,
// signed with the same JWT_SECRET the server verifies with.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nekogravitycat/hearing-scheduler/internal/auth"
	"github.com/nekogravitycat/hearing-scheduler/internal/config"
)

func main() {
	operatorID := flag.String("operator", "", "operator id stored as the token subject (required)")
	name := flag.String("name", "", "operator display name")
	ttl := flag.Duration("ttl", 0, "token lifetime, overrides JWT_TOKEN_TTL")
	flag.Parse()

	if *operatorID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lifetime := cfg.JWTTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, lifetime).GenerateAccessToken(*operatorID, *name)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	fmt.Println(token)
}

//go:build ignore

// This script generates secure random keys for authentication and signs a
// development token with the new JWT secret.
// Run with: go run scripts/generate_keys.go [-subject till-1] [-roles counter] [-ttl 12h]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/guttosm/kitchen-receipt-service/internal/service"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

func main() {
	subject := flag.String("subject", "dev-till", "token subject")
	roles := flag.String("roles", service.RoleAdmin, "comma-separated roles")
	issuer := flag.String("issuer", "kitchen-receipt-service", "token issuer, must match JWT_ISSUER")
	ttl := flag.Duration("ttl", service.DefaultTokenTTL, "token lifetime")
	flag.Parse()

	fmt.Println("=== Kitchen Receipt Service Key Generator ===")
	fmt.Println()

	// 32 bytes = 256 bits, the HS256 key size
	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating JWT secret: %v\n", err)
		os.Exit(1)
	}

	apiKey, err := generateSecureKey(24)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating API key: %v\n", err)
		os.Exit(1)
	}

	tokens := service.NewTokenService(service.TokenConfig{SecretKey: jwtSecret, Issuer: *issuer})
	token, err := tokens.IssueToken(*subject, strings.Split(*roles, ","), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error issuing development token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# JWT Configuration")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Printf("JWT_ISSUER=%s\n", *issuer)
	fmt.Println()
	fmt.Println("# API Key (optional, for API key authentication)")
	fmt.Printf("API_KEYS=%s\n", apiKey)
	fmt.Println()
	fmt.Printf("# Development token for %q, expires %s\n", *subject, time.Now().Add(*ttl).Format(time.RFC3339))
	fmt.Printf("Authorization: Bearer %s\n", token)
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Use different keys for each environment (dev, staging, prod)")
	fmt.Println("- Store production keys in a secure secret manager")
}

// devtoken prints a signed JWT for local API testing.
package main

import (
	"fmt"
	"log"
	"os"

	"formdash/internal/config"
	"formdash/pkg/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	utils.SetSecret(cfg.JWTSecret)

	userID := "dev-admin-id"
	if len(os.Args) > 1 {
		userID = os.Args[1]
	}

	token, err := utils.GenerateToken(userID, []string{"admin"})
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}

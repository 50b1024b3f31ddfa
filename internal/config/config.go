// Package config reads configuration from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load pulls a .env file into the environment if one exists. Variables
// already set in the real environment win.
func Load() {
	_ = godotenv.Load()
}

func String(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func RequiredString(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

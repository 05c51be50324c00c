// Package config loads process-wide settings from the environment.
package config

import (
	"os"

	"invoicegen/models"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port     string
	Business models.BusinessProfile
}

// Load reads the configuration. Every value has a default, so a bare
// environment still yields a working process.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "3000"),
		Business: models.BusinessProfile{
			Name:    getEnv("BILL_NAME", "Your Business Name"),
			Address: getEnv("BILL_ADDRESS", "Your Business Address"),
			Phone:   getEnv("BILL_PHONE", "Your Phone Number"),
			City:    getEnv("BILL_CITY", "Your City"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

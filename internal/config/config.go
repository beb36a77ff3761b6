package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds all environment-sourced settings for the service.
type Config struct {
	AppPort string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string

	// RabbitMQURL enables product event publishing when non-empty.
	RabbitMQURL string

	// Azure blob storage settings are read but not used by any handler yet.
	// They are a reserved extension point for product image uploads.
	AzureStorageAccountName   string
	AzureStorageAccountKey    string
	AzureStorageContainerName string
	AzureSASTokenExpiryHours  int
}

// Load reads configuration from environment variables via Viper, applying
// defaults suitable for local development.
func Load() *Config {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "postgres")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("AZURE_STORAGE_ACCOUNT_NAME", "")
	v.SetDefault("AZURE_STORAGE_ACCOUNT_KEY", "")
	v.SetDefault("AZURE_STORAGE_CONTAINER_NAME", "product-images")
	v.SetDefault("AZURE_SAS_TOKEN_EXPIRY_HOURS", 24)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:                   v.GetString("APP_PORT"),
		PostgresUser:              v.GetString("POSTGRES_USER"),
		PostgresPassword:          v.GetString("POSTGRES_PASSWORD"),
		PostgresDB:                v.GetString("POSTGRES_DB"),
		PostgresHost:              v.GetString("POSTGRES_HOST"),
		PostgresPort:              v.GetString("POSTGRES_PORT"),
		RabbitMQURL:               v.GetString("RABBITMQ_URL"),
		AzureStorageAccountName:   v.GetString("AZURE_STORAGE_ACCOUNT_NAME"),
		AzureStorageAccountKey:    v.GetString("AZURE_STORAGE_ACCOUNT_KEY"),
		AzureStorageContainerName: v.GetString("AZURE_STORAGE_CONTAINER_NAME"),
		AzureSASTokenExpiryHours:  v.GetInt("AZURE_SAS_TOKEN_EXPIRY_HOURS"),
	}

	if cfg.AzureStorageAccountName != "" && cfg.AzureStorageAccountKey != "" {
		log.Println("Product Service: Azure storage credentials populated.")
	} else {
		log.Println("Product Service: Azure storage credentials NOT SET; image upload disabled.")
	}

	return cfg
}

// DatabaseDSN composes the PostgreSQL connection string from the individual
// POSTGRES_* settings.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort,
	)
}

package config

import (
	"os"
	"path/filepath"
)

// Config holds all configuration for the tracker service
type Config struct {
	// DataDir is where the local database and legacy vault live
	DataDir string

	// SQLitePath is the on-device database file
	SQLitePath string

	// LegacyVaultPath points at the encrypted profile blob the old
	// client left behind; empty disables the import
	LegacyVaultPath string

	// VaultPassphrase unlocks the legacy vault
	VaultPassphrase string

	// Firebase configuration; empty values run the service without a
	// cloud backend
	FirebaseAPIKey    string
	FirebaseProjectID string
	IdentityBaseURL   string

	// RabbitMQ configuration; empty disables wellbeing alerts
	RabbitMQURL    string
	AlertQueueName string

	// Server configuration
	Port string
}

// Load reads configuration from environment variables
func Load() *Config {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = filepath.Join(dataDir, "tracker.db")
	}

	vaultPath := os.Getenv("LEGACY_VAULT_PATH")
	if vaultPath == "" {
		// Only used when the file actually exists
		vaultPath = filepath.Join(dataDir, "profile.vault")
	}

	vaultPassphrase := os.Getenv("VAULT_PASSPHRASE")

	apiKey := os.Getenv("FIREBASE_API_KEY")
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	identityBaseURL := os.Getenv("IDENTITY_BASE_URL")

	rabbitMQURL := os.Getenv("RABBITMQ_URL")

	queueName := os.Getenv("ALERT_QUEUE_NAME")
	if queueName == "" {
		queueName = "wellbeing_alerts"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		DataDir:           dataDir,
		SQLitePath:        sqlitePath,
		LegacyVaultPath:   vaultPath,
		VaultPassphrase:   vaultPassphrase,
		FirebaseAPIKey:    apiKey,
		FirebaseProjectID: projectID,
		IdentityBaseURL:   identityBaseURL,
		RabbitMQURL:       rabbitMQURL,
		AlertQueueName:    queueName,
		Port:              port,
	}
}

// CloudEnabled reports whether a Firebase project is configured
func (c *Config) CloudEnabled() bool {
	return c.FirebaseAPIKey != "" && c.FirebaseProjectID != ""
}

// AlertsEnabled reports whether wellbeing alert publishing is configured
func (c *Config) AlertsEnabled() bool {
	return c.RabbitMQURL != ""
}

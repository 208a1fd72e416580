// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dukerupert/familytree/internal/gallery"
)

type Config struct {
	Port         string
	DBPath       string
	LogLevel     string
	LogFormat    string
	RegistryPath string

	FamilyKey     string
	FamilyKeyHash string

	FirebaseAPIKey string
	SecureCookies  bool

	S3 gallery.S3Config

	// BackupPrefix replaces S3.Prefix for database backups.
	BackupPrefix     string
	BackupPassphrase string
}

// Load reads the environment, filling in defaults for unset values.
func Load() (Config, error) {
	cfg := Config{
		Port:           getenv("FAMILYTREE_PORT", "8080"),
		DBPath:         getenv("FAMILYTREE_DB_PATH", "familytree.db"),
		LogLevel:       getenv("FAMILYTREE_LOG_LEVEL", "info"),
		LogFormat:      getenv("FAMILYTREE_LOG_FORMAT", "text"),
		RegistryPath:   os.Getenv("FAMILYTREE_REGISTRY_PATH"),
		FamilyKey:      os.Getenv("FAMILY_KEY"),
		FamilyKeyHash:  os.Getenv("FAMILY_KEY_HASH"),
		FirebaseAPIKey: os.Getenv("FIREBASE_API_KEY"),
		S3: gallery.S3Config{
			Endpoint:  os.Getenv("FAMILYTREE_S3_ENDPOINT"),
			Bucket:    os.Getenv("FAMILYTREE_S3_BUCKET"),
			Region:    getenv("FAMILYTREE_S3_REGION", "us-east-1"),
			AccessKey: os.Getenv("FAMILYTREE_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("FAMILYTREE_S3_SECRET_KEY"),
			Prefix:    getenv("FAMILYTREE_S3_PREFIX", "gallery"),
		},
		BackupPrefix:     getenv("FAMILYTREE_BACKUP_PREFIX", "backups"),
		BackupPassphrase: os.Getenv("FAMILYTREE_BACKUP_PASSPHRASE"),
	}

	if v := os.Getenv("FAMILYTREE_SECURE_COOKIES"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("FAMILYTREE_SECURE_COOKIES: %w", err)
		}
		cfg.SecureCookies = secure
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("FAMILYTREE_LOG_FORMAT: unknown format %q", cfg.LogFormat)
	}

	return cfg, nil
}

// BackupS3 returns the object storage settings for database backups.
func (c Config) BackupS3() gallery.S3Config {
	s3 := c.S3
	s3.Prefix = c.BackupPrefix
	return s3
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

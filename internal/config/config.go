package config

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Addr        string
	DatabaseURL string
	Storage     StorageConfig
}

type StorageConfig struct {
	// Driver is "local" or "minio".
	Driver    string
	LocalDir  string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func New() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "marketplace.db")
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_DIR", "./uploads")
	v.SetDefault("MINIO_BUCKET", "marketplace-media")
	v.SetDefault("MINIO_USE_SSL", false)

	cfg := &Config{
		Addr:        v.GetString("ADDR"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		Storage: StorageConfig{
			Driver:    v.GetString("STORAGE_DRIVER"),
			LocalDir:  v.GetString("STORAGE_LOCAL_DIR"),
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
	}

	log.WithFields(log.Fields{
		"addr":    cfg.Addr,
		"storage": cfg.Storage.Driver,
	}).Info("config parsed")

	return cfg, nil
}

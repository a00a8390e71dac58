package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	S3      S3Config
	Capture CaptureConfig
	Export  ExportConfig
	Debug   bool
}

type ServerConfig struct {
	Host string
	Port string
}

type StoreConfig struct {
	// Backend selects the persistence medium: file, s3, sqlite or
	// memory.
	Backend        string
	RetentionLimit int
	FilePath       string
	SQLitePath     string
	Key            string
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
}

type CaptureConfig struct {
	SourceWidth   int
	SourceHeight  int
	OutputSize    int
	JPEGQuality   int
	DevelopWindow time.Duration
}

type ExportConfig struct {
	Dir string
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "localhost")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("STORE_RETENTION_LIMIT", 50)
	viper.SetDefault("STORE_FILE_PATH", "./data/photos.json")
	viper.SetDefault("STORE_SQLITE_PATH", "./data/photos.db")
	viper.SetDefault("STORE_KEY", "polaroid-photos")
	viper.SetDefault("S3_ENDPOINT", "localhost:9000")
	viper.SetDefault("S3_ACCESS_KEY_ID", "minioadmin")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "minioadmin")
	viper.SetDefault("S3_USE_SSL", false)
	viper.SetDefault("S3_BUCKET_NAME", "polaroid")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("CAPTURE_SOURCE_WIDTH", 1280)
	viper.SetDefault("CAPTURE_SOURCE_HEIGHT", 720)
	viper.SetDefault("CAPTURE_OUTPUT_SIZE", 600)
	viper.SetDefault("CAPTURE_JPEG_QUALITY", 70)
	viper.SetDefault("CAPTURE_DEVELOP_WINDOW_MS", 1800)
	viper.SetDefault("EXPORT_DIR", "./exports")
	viper.SetDefault("DEBUG", false)

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		Store: StoreConfig{
			Backend:        viper.GetString("STORE_BACKEND"),
			RetentionLimit: viper.GetInt("STORE_RETENTION_LIMIT"),
			FilePath:       viper.GetString("STORE_FILE_PATH"),
			SQLitePath:     viper.GetString("STORE_SQLITE_PATH"),
			Key:            viper.GetString("STORE_KEY"),
		},
		S3: S3Config{
			Endpoint:        viper.GetString("S3_ENDPOINT"),
			AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),
			UseSSL:          viper.GetBool("S3_USE_SSL"),
			BucketName:      viper.GetString("S3_BUCKET_NAME"),
			Region:          viper.GetString("S3_REGION"),
		},
		Capture: CaptureConfig{
			SourceWidth:   viper.GetInt("CAPTURE_SOURCE_WIDTH"),
			SourceHeight:  viper.GetInt("CAPTURE_SOURCE_HEIGHT"),
			OutputSize:    viper.GetInt("CAPTURE_OUTPUT_SIZE"),
			JPEGQuality:   viper.GetInt("CAPTURE_JPEG_QUALITY"),
			DevelopWindow: time.Duration(viper.GetInt("CAPTURE_DEVELOP_WINDOW_MS")) * time.Millisecond,
		},
		Export: ExportConfig{
			Dir: viper.GetString("EXPORT_DIR"),
		},
		Debug: viper.GetBool("DEBUG"),
	}

	if err := createDirs(cfg); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return cfg, nil
}

func createDirs(cfg *Config) error {
	dirs := []string{
		cfg.Export.Dir,
	}
	switch cfg.Store.Backend {
	case "file":
		dirs = append(dirs, filepath.Dir(cfg.Store.FilePath))
	case "sqlite":
		dirs = append(dirs, filepath.Dir(cfg.Store.SQLitePath))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	defaultConfigPath = "config/config.yaml"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		// Comma separated in FRONTEND_URL.
		FrontendURLs []string `yaml:"frontend_urls"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql, sqlite
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Storage struct {
		Type            string `yaml:"type"`             // local, s3, cloudflare_r2, gcs
		BasePath        string `yaml:"base_path"`        // For local storage
		PublicPath      string `yaml:"public_path"`      // URL prefix for local files
		BaseURL         string `yaml:"base_url"`         // Public URL base for remote objects
		Folder          string `yaml:"folder"`           // Remote key prefix
		Bucket          string `yaml:"bucket"`           // For S3/R2/GCS
		Region          string `yaml:"region"`           // For S3
		AccessKey       string `yaml:"access_key"`       // For S3/R2
		SecretKey       string `yaml:"secret_key"`       // For S3/R2
		Endpoint        string `yaml:"endpoint"`         // For R2 or custom S3
		CredentialsFile string `yaml:"credentials_file"` // For GCS
		PublicRead      bool   `yaml:"public_read"`      // Make files public

		// Local only. Zero interval disables the sweep.
		OrphanSweepInterval time.Duration `yaml:"orphan_sweep_interval"`
		OrphanGrace         time.Duration `yaml:"orphan_grace"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize           int64    `yaml:"max_size"`           // Max file size in bytes
		MaxFiles          int      `yaml:"max_files"`          // Per request
		AllowedExtensions []string `yaml:"allowed_extensions"` // Without the dot
	} `yaml:"upload"`

	Metrics struct {
		Namespace string `yaml:"namespace"`
	} `yaml:"metrics"`
}

// Load reads .env, then the YAML file at CONFIG_PATH, then environment
// overrides. A missing YAML file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	if err := loadFile(configPath, &cfg); err != nil {
		return nil, err
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Admin.Email, "ADMIN_EMAIL")
	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")
	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.BasePath, "STORAGE_BASE_PATH")
	setString(&cfg.Storage.BaseURL, "STORAGE_BASE_URL")
	setString(&cfg.Storage.Folder, "STORAGE_FOLDER")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.Region, "STORAGE_REGION")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")

	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.Server.FrontendURLs = splitList(v)
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_TTL: %w", err)
		}
		cfg.JWT.TTL = ttl
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = EnvDevelopment
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 7 * 24 * time.Hour
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "uploads/portfolio"
	}
	if cfg.Storage.PublicPath == "" {
		cfg.Storage.PublicPath = "/uploads/portfolio"
	}
	if cfg.Storage.Folder == "" {
		cfg.Storage.Folder = "portfolio"
	}
	if cfg.Storage.OrphanGrace == 0 {
		cfg.Storage.OrphanGrace = time.Hour
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 25 * 1024 * 1024 // 25MB
	}
	if cfg.Upload.MaxFiles == 0 {
		cfg.Upload.MaxFiles = 10
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		cfg.Upload.AllowedExtensions = []string{"jpg", "jpeg", "png", "webp", "gif", "mp4", "mov", "webm", "mkv"}
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "studio"
	}
}

func (c *Config) validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Storage.Type {
	case "local", "s3", "cloudflare_r2", "gcs":
	default:
		return fmt.Errorf("unsupported storage type %q", c.Storage.Type)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// BodyLimit caps a whole upload request: every file at max size plus form overhead.
func (c *Config) BodyLimit() int64 {
	return c.Upload.MaxSize*int64(c.Upload.MaxFiles) + 1<<20
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	NATS       NATSConfig       `yaml:"nats"`
	MinIO      MinIOConfig      `yaml:"minio"`
	Cascades   CascadesConfig   `yaml:"cascades"`
	Detector   DetectorConfig   `yaml:"detector"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Dedupe     DedupeConfig     `yaml:"dedupe"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int    `yaml:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// CascadesConfig locates the Haar cascade XML files the registry (C10)
// loads and caches.
type CascadesConfig struct {
	Dir         string `yaml:"dir"`
	DefaultFace string `yaml:"default_face"`
	DefaultEye  string `yaml:"default_eye"`
	WorkerCount int    `yaml:"worker_count"`
}

// DetectorConfig mirrors the core detector's tuning parameters
// (spec.md §6), giving the service layer a default scan profile.
type DetectorConfig struct {
	InitialScale float64 `yaml:"initial_scale"`
	ScaleFactor  float64 `yaml:"scale_factor"`
	StepSize     float64 `yaml:"step_size"`
	EdgesDensity float64 `yaml:"edges_density"`
	Neighbors    int     `yaml:"neighbors"`
}

// NormalizerConfig mirrors the core normalizer's tuning parameters.
type NormalizerConfig struct {
	OffsetX  float64 `yaml:"offset_x"`
	OffsetY  float64 `yaml:"offset_y"`
	DestSize int     `yaml:"dest_size"`
}

// DedupeConfig tunes the job-local face deduplicator (C15).
type DedupeConfig struct {
	MaxAge  int `yaml:"max_age"`
	MinHits int `yaml:"min_hits"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from a YAML file, a .env in the working directory
// (if present), and
// environment variable overrides, in that precedence order (env wins).
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional; local dev convenience only

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 20
	}
	if cfg.Cascades.Dir == "" {
		cfg.Cascades.Dir = "./cascades"
	}
	if cfg.Cascades.DefaultFace == "" {
		cfg.Cascades.DefaultFace = "haarcascade_frontalface_default"
	}
	if cfg.Cascades.DefaultEye == "" {
		cfg.Cascades.DefaultEye = "haarcascade_eye"
	}
	if cfg.Cascades.WorkerCount == 0 {
		cfg.Cascades.WorkerCount = 6
	}
	if cfg.Detector.InitialScale == 0 {
		cfg.Detector.InitialScale = 1.0
	}
	if cfg.Detector.ScaleFactor == 0 {
		cfg.Detector.ScaleFactor = 1.1
	}
	if cfg.Detector.StepSize == 0 {
		cfg.Detector.StepSize = 1.5
	}
	if cfg.Detector.Neighbors == 0 {
		cfg.Detector.Neighbors = 2
	}
	if cfg.Normalizer.OffsetX == 0 {
		cfg.Normalizer.OffsetX = 0.5
	}
	if cfg.Normalizer.OffsetY == 0 {
		cfg.Normalizer.OffsetY = 0.5
	}
	if cfg.Normalizer.DestSize == 0 {
		cfg.Normalizer.DestSize = 150
	}
	if cfg.Dedupe.MaxAge == 0 {
		cfg.Dedupe.MaxAge = 30
	}
	if cfg.Dedupe.MinHits == 0 {
		cfg.Dedupe.MinHits = 1
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FACELINE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FACELINE_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("FACELINE_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("FACELINE_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("FACELINE_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("FACELINE_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("FACELINE_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("FACELINE_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("FACELINE_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("FACELINE_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("FACELINE_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("FACELINE_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
	if v := os.Getenv("FACELINE_CASCADES_DIR"); v != "" {
		cfg.Cascades.Dir = v
	}
	if v := os.Getenv("FACELINE_CASCADES_WORKER_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cascades.WorkerCount = n
		}
	}
	if v := os.Getenv("FACELINE_DETECTOR_NEIGHBORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Detector.Neighbors = n
		}
	}
	if v := os.Getenv("FACELINE_NORMALIZER_DEST_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Normalizer.DestSize = n
		}
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DBTypeSupabase = "supa"
	DBTypePostgres = "postgres"

	AssetBackendDisk = "disk"
	AssetBackendS3   = "s3"
)

// Config is the process configuration, read from the environment (and .env when present).
type Config struct {
	Port                string `env:"PORT" envDefault:"8080"`
	ReadTimeoutSeconds  int    `env:"READ_TIMEOUT_SECONDS" envDefault:"180"`
	WriteTimeoutSeconds int    `env:"WRITE_TIMEOUT_SECONDS" envDefault:"180"`
	IdleTimeoutSeconds  int    `env:"IDLE_TIMEOUT_SECONDS" envDefault:"180"`

	DBType          string   `env:"DB_TYPE" envDefault:"postgres"`
	DatabaseURL     string   `env:"DATABASE_URL"`
	ReplicaDSNs     []string `env:"DB_REPLICA_DSNS" envSeparator:","`
	Supabase        Supabase `envPrefix:"SUPABASE_DB_"`
	AutoMigrate     bool     `env:"AUTO_MIGRATE" envDefault:"false"`
	GenerateModels  bool     `env:"GENERATE_MODELS" envDefault:"false"`
	GenerateReport  bool     `env:"GENERATE_COLUMN_REPORT" envDefault:"false"`
	GeneratedOutDir string   `env:"GENERATED_OUT_DIR" envDefault:"./generated"`

	AssetBackend   string `env:"ASSET_BACKEND" envDefault:"disk"`
	AssetRoot      string `env:"ASSET_ROOT" envDefault:"storage/app"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
	S3AccessKeyID  string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey    string `env:"S3_SECRET_ACCESS_KEY"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"2097152"`

	AcceptedOrigins []string `env:"ACCEPTED_ORIGINS" envSeparator:","`
	DefaultLocale   string   `env:"DEFAULT_LOCALE" envDefault:"it"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string   `env:"LOG_FORMAT" envDefault:"console"`
}

// Supabase holds the discrete connection settings used when DB_TYPE=supa.
type Supabase struct {
	Host     string `env:"HOST"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
	Port     string `env:"PORT" envDefault:"5432"`
}

// Load reads .env (if any) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}
	return Parse(env.Options{})
}

// Parse builds a Config from the environment described by opts.
func Parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBType {
	case DBTypeSupabase, DBTypePostgres:
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}

	switch c.AssetBackend {
	case AssetBackendDisk:
		if c.AssetRoot == "" {
			return fmt.Errorf("ASSET_ROOT is required for the disk asset backend")
		}
	case AssetBackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 asset backend")
		}
	default:
		return fmt.Errorf("unsupported ASSET_BACKEND %q", c.AssetBackend)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// DSN returns the primary connection string for the configured DB_TYPE.
func (c *Config) DSN() string {
	if c.DBType == DBTypeSupabase {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			c.Supabase.Host,
			c.Supabase.User,
			c.Supabase.Password,
			c.Supabase.Name,
			c.Supabase.Port,
		)
	}
	return c.DatabaseURL
}

// Origins returns the non-empty accepted CORS origins.
func (c *Config) Origins() []string {
	out := make([]string, 0, len(c.AcceptedOrigins))
	for _, o := range c.AcceptedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Package config loads projectdash settings from an optional YAML file and
// PROJECTDASH_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"projectdash/internal/blob"
	"projectdash/internal/core"
	"projectdash/internal/logging"
	"projectdash/pkg/domain"
)

// DefaultHTTPAddr is the listen address used by serve.
const DefaultHTTPAddr = ":8080"

// Environment variables read by Load.
const (
	EnvStorageDriver = "PROJECTDASH_STORAGE_DRIVER"
	EnvSQLitePath    = "PROJECTDASH_SQLITE_PATH"
	EnvPostgresDSN   = "PROJECTDASH_POSTGRES_DSN"
	EnvBlobDriver    = "PROJECTDASH_BLOB_DRIVER"
	EnvBlobFSRoot    = "PROJECTDASH_BLOB_FS_ROOT"
	EnvS3Bucket      = "PROJECTDASH_BLOB_S3_BUCKET"
	EnvS3Region      = "PROJECTDASH_BLOB_S3_REGION"
	EnvS3Endpoint    = "PROJECTDASH_BLOB_S3_ENDPOINT"
	EnvS3PathStyle   = "PROJECTDASH_BLOB_S3_PATH_STYLE"
	EnvHTTPAddr      = "PROJECTDASH_HTTP_ADDR"
	EnvLogLevel      = "PROJECTDASH_LOG_LEVEL"
	EnvThresholdDays = "PROJECTDASH_DURATION_THRESHOLD_DAYS"
	EnvSwitchPenalty = "PROJECTDASH_SWITCH_PENALTY_DAYS"
)

var lookupEnv = os.LookupEnv

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the full projectdash configuration.
type Config struct {
	Storage core.StorageConfig `yaml:"storage"`
	Blob    blob.Config        `yaml:"blob"`
	HTTP    HTTPConfig         `yaml:"http"`
	Log     logging.Config     `yaml:"log"`
	Policy  domain.Policy      `yaml:"policy"`
}

// Default returns sqlite project storage, filesystem tables under ./tables
// and the default scheduling policy.
func Default() Config {
	return Config{
		Storage: core.StorageConfig{Driver: core.StorageSQLite, SQLitePath: "projectdash.db"},
		Blob:    blob.Config{Driver: blob.DriverFilesystem, FSRoot: "./tables"},
		HTTP:    HTTPConfig{Addr: DefaultHTTPAddr},
		Log:     logging.Config{Level: "info", Format: logging.FormatJSON},
		Policy:  domain.DefaultPolicy(),
	}
}

// ValidationError names the offending setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Load reads path (skipped when empty or absent), applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := lookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	var storage, driver string
	str(EnvStorageDriver, &storage)
	if storage != "" {
		cfg.Storage.Driver = core.StorageDriver(strings.ToLower(storage))
	}
	str(EnvSQLitePath, &cfg.Storage.SQLitePath)
	str(EnvPostgresDSN, &cfg.Storage.PostgresDSN)
	str(EnvBlobDriver, &driver)
	if driver != "" {
		cfg.Blob.Driver = blob.Driver(strings.ToLower(driver))
	}
	str(EnvBlobFSRoot, &cfg.Blob.FSRoot)
	str(EnvS3Bucket, &cfg.Blob.S3.Bucket)
	str(EnvS3Region, &cfg.Blob.S3.Region)
	str(EnvS3Endpoint, &cfg.Blob.S3.Endpoint)
	str(EnvHTTPAddr, &cfg.HTTP.Addr)
	str(EnvLogLevel, &cfg.Log.Level)

	if v, ok := lookupEnv(EnvS3PathStyle); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ValidationError{Field: EnvS3PathStyle, Message: "must be a boolean"}
		}
		cfg.Blob.S3.PathStyle = b
	}
	for key, dst := range map[string]*float64{
		EnvThresholdDays: &cfg.Policy.ThresholdDays,
		EnvSwitchPenalty: &cfg.Policy.SwitchPenaltyDays,
	} {
		v, ok := lookupEnv(key)
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ValidationError{Field: key, Message: "must be a number"}
		}
		*dst = f
	}
	return nil
}

// Validate rejects unknown drivers and non-positive policy values.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case core.StorageMemory, core.StorageSQLite, core.StoragePostgres:
	default:
		return ValidationError{Field: "storage.driver", Message: fmt.Sprintf("unknown driver %q", c.Storage.Driver)}
	}
	switch c.Blob.Driver {
	case blob.DriverFilesystem, blob.DriverMemory:
	case blob.DriverS3:
		if c.Blob.S3.Bucket == "" {
			return ValidationError{Field: "blob.s3.bucket", Message: "required for the s3 driver"}
		}
	default:
		return ValidationError{Field: "blob.driver", Message: fmt.Sprintf("unknown driver %q", c.Blob.Driver)}
	}
	if c.Policy.ThresholdDays <= 0 {
		return ValidationError{Field: "policy.duration_threshold_days", Message: "must be positive"}
	}
	if c.Policy.SwitchPenaltyDays < 0 {
		return ValidationError{Field: "policy.switch_penalty_days", Message: "must not be negative"}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}
	return nil
}

package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
	"github.com/pht-ctoi/ctoistatus/internal/download"
	"gopkg.in/yaml.v3"
)

// ConfigFormatVersion is the current version of the configuration file format
const ConfigFormatVersion = "0.1.0"

const DefaultConfigFile = "ctoistatus.conf"

// Fixed locations and sources of the status pipeline.
const (
	DefaultDataDir     = "data"
	DefaultDownloadDir = "data/download"
	DefaultTrackedUser = "eisner"
	DefaultPaperTable  = "data/pht_paper_ctois.csv"
	DefaultTOIURL      = "https://exofop.ipac.caltech.edu/tess/download_toi.php?sort=toi&output=csv"
	DefaultCTOIURL     = "https://exofop.ipac.caltech.edu/tess/download_ctoi.php?sort=ctoi&output=csv"
	DefaultMASTURL     = "https://mast.stsci.edu/api/v0/invoke"
)

const (
	CachePolicyTTLInDays = "ttl_in_days"
	CachePolicyAlwaysUse = "always_use"
)

var ErrInvalidConfig apperrors.Error = apperrors.New("invalid configuration").SetStatusCode(http.StatusInternalServerError)

// CacheConfig selects how downloaded catalogs are reused
type CacheConfig struct {
	Policy  string `toml:"policy" yaml:"policy" validate:"required,oneof=ttl_in_days always_use"`
	TTLDays int    `toml:"ttl_days" yaml:"ttl_days" validate:"gte=0"`
}

// CachePolicy converts the configured policy into the value handed to loaders.
func (c CacheConfig) CachePolicy() download.CachePolicy {
	if c.Policy == CachePolicyAlwaysUse {
		return download.AlwaysUse()
	}
	return download.TTLInDays(c.TTLDays)
}

// SourcesConfig holds the remote catalog locations
type SourcesConfig struct {
	TOIURL  string `toml:"toi_url" yaml:"toi_url" validate:"required,url"`
	CTOIURL string `toml:"ctoi_url" yaml:"ctoi_url" validate:"required,url"`
}

// HTTPConfig applies to every remote collaborator
type HTTPConfig struct {
	Timeout       string `toml:"timeout" yaml:"timeout" validate:"required,duration"`
	RetryAttempts uint   `toml:"retry_attempts" yaml:"retry_attempts" validate:"gte=1,lte=10"`
	RetryDelay    string `toml:"retry_delay" yaml:"retry_delay" validate:"required,duration"`
}

func (h HTTPConfig) GetTimeout() time.Duration {
	d, _ := ParseDuration(h.Timeout)
	return d
}

func (h HTTPConfig) GetRetryDelay() time.Duration {
	d, _ := ParseDuration(h.RetryDelay)
	return d
}

// MASTConfig configures the TIC coordinate lookup
type MASTConfig struct {
	URL       string `toml:"url" yaml:"url" validate:"required,url"`
	BatchSize int    `toml:"batch_size" yaml:"batch_size" validate:"gte=1,lte=5000"`
}

// FootprintConfig points to the sector footprint service; only needed when sectors are queried.
type FootprintConfig struct {
	URL string `toml:"url" yaml:"url" validate:"omitempty,url"`
}

// ServerConfig holds settings for the read-only status server
type ServerConfig struct {
	Port       string `toml:"port" yaml:"port" validate:"required,numeric"`
	HandleCORS bool   `toml:"handle_cors" yaml:"handle_cors"`
}

// PublishConfig holds the S3 destination of the status table
type PublishConfig struct {
	Bucket string `toml:"bucket" yaml:"bucket"`
	Region string `toml:"region" yaml:"region"`
	Prefix string `toml:"prefix" yaml:"prefix"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level   string `toml:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Console bool   `toml:"console" yaml:"console"`
}

// ConfigParam holds all configuration parameters of the status pipeline
type ConfigParam struct {
	FormatVersion string `toml:"format_version" yaml:"format_version" validate:"required"`

	DataDir     string `toml:"data_dir" yaml:"data_dir" validate:"required"`
	DownloadDir string `toml:"download_dir" yaml:"download_dir" validate:"required"`
	TrackedUser string `toml:"tracked_user" yaml:"tracked_user" validate:"required"`
	PaperTable  string `toml:"paper_table" yaml:"paper_table" validate:"required"`

	Cache     CacheConfig     `toml:"cache" yaml:"cache"`
	Sources   SourcesConfig   `toml:"sources" yaml:"sources"`
	HTTP      HTTPConfig      `toml:"http" yaml:"http"`
	MAST      MASTConfig      `toml:"mast" yaml:"mast"`
	Footprint FootprintConfig `toml:"footprint" yaml:"footprint"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Publish   PublishConfig   `toml:"publish" yaml:"publish"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *ConfigParam {
	return &ConfigParam{
		FormatVersion: ConfigFormatVersion,
		DataDir:       DefaultDataDir,
		DownloadDir:   DefaultDownloadDir,
		TrackedUser:   DefaultTrackedUser,
		PaperTable:    DefaultPaperTable,
		Cache: CacheConfig{
			Policy:  CachePolicyTTLInDays,
			TTLDays: 7,
		},
		Sources: SourcesConfig{
			TOIURL:  DefaultTOIURL,
			CTOIURL: DefaultCTOIURL,
		},
		HTTP: HTTPConfig{
			Timeout:       "60s",
			RetryAttempts: 3,
			RetryDelay:    "1s",
		},
		MAST: MASTConfig{
			URL:       DefaultMASTURL,
			BatchSize: 500,
		},
		Server: ServerConfig{
			Port: "8190",
		},
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// ParseDuration parses a duration string in the format "<number><unit>" where unit can be:
// - s: seconds
// - m: minutes
// - h: hours
// - d: days
func ParseDuration(input string) (time.Duration, error) {
	if len(input) < 2 {
		return 0, fmt.Errorf("invalid input format")
	}

	unit := input[len(input)-1:]
	valueStr := input[:len(input)-1]
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", err)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative duration: %s", input)
	}

	var duration time.Duration
	switch unit {
	case "s":
		duration = time.Duration(value) * time.Second
	case "m":
		duration = time.Duration(value) * time.Minute
	case "h":
		duration = time.Duration(value) * time.Hour
	case "d":
		duration = time.Duration(value) * 24 * time.Hour
	default:
		return 0, fmt.Errorf("unknown time unit: %s", unit)
	}

	return duration, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := ParseDuration(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateConfig checks if all required configuration values are present and valid
func ValidateConfig(cfg *ConfigParam) error {
	if cfg.FormatVersion != ConfigFormatVersion {
		return ErrInvalidConfig.Msg(fmt.Sprintf("unsupported config file format version: %s", cfg.FormatVersion))
	}
	if err := validate.Struct(cfg); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(ves))
			for _, fe := range ves {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return ErrInvalidConfig.Msg("invalid values: " + strings.Join(fields, ", ")).Err(err)
		}
		return ErrInvalidConfig.Err(err)
	}
	return nil
}

// LoadConfig loads configuration from a file. Values missing from the file keep
// their defaults. An empty filename yields the defaults.
func LoadConfig(filename string) (*ConfigParam, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, ErrInvalidConfig.MsgErr("error parsing config file", err)
		}
	default:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, ErrInvalidConfig.MsgErr("error parsing config file", err)
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes cfg as TOML
func (cfg *ConfigParam) WriteConfig(file string) error {
	if file == "" {
		return fmt.Errorf("file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}
	return nil
}

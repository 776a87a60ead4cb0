package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Catalog  Catalog  `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Matching Matching `json:"matching" yaml:"matching" mapstructure:"matching"`
	Library  Library  `json:"library" yaml:"library" mapstructure:"library"`
	Storage  Storage  `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server   Server   `json:"server" yaml:"server" mapstructure:"server"`
	Manager  Manager  `json:"manager" yaml:"manager" mapstructure:"manager"`
}

// Catalog configures the metadata catalog client
type Catalog struct {
	URI         string        `json:"uri" yaml:"uri" mapstructure:"uri" validate:"required,url"`
	APIKey      string        `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"gte=0"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	CacheTTL    time.Duration `json:"cacheTTL" yaml:"cacheTTL" mapstructure:"cacheTTL" validate:"gte=0"`
}

// Matching holds the tuning of the fuzzy series search
type Matching struct {
	PenaltyFactor   int `json:"penaltyFactor" yaml:"penaltyFactor" mapstructure:"penaltyFactor" validate:"gt=0"`
	AcceptThreshold int `json:"acceptThreshold" yaml:"acceptThreshold" mapstructure:"acceptThreshold" validate:"gte=0,lt=100"`
	YearBonus       int `json:"yearBonus" yaml:"yearBonus" mapstructure:"yearBonus" validate:"gte=0"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
}

type Library struct {
	TVDir string `json:"tv" yaml:"tv" mapstructure:"tv"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath"`
}

// Manager houses configuration related to the manager and reconciliation
type Manager struct {
	Jobs        Jobs `json:"jobs" yaml:"jobs" mapstructure:"jobs"`
	Concurrency int  `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency" validate:"gte=0"`
}

type Jobs struct {
	LibraryReconcile time.Duration `json:"libraryReconcile" yaml:"libraryReconcile" mapstructure:"libraryReconcile" validate:"gte=0"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

// Validate reports every invalid field of the configuration in a single error
func (c Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validation failed: %w", err)
	}

	msgs := make([]string, len(validationErrors))
	for i, fe := range validationErrors {
		msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Anki        AnkiConfig        `mapstructure:"anki" yaml:"anki"`
	Repository  RepositoryConfig  `mapstructure:"repository" yaml:"repository"`
	Interchange InterchangeConfig `mapstructure:"interchange" yaml:"interchange"`
	Media       MediaConfig       `mapstructure:"media" yaml:"media"`
	Outputs     OutputsConfig     `mapstructure:"outputs" yaml:"outputs"`
	Packages    PackagesConfig    `mapstructure:"packages" yaml:"packages"`
	Site        SiteConfig        `mapstructure:"site" yaml:"site"`
}

// AnkiConfig addresses the running flashcard application's remote-control service.
type AnkiConfig struct {
	URL            string `mapstructure:"url" yaml:"url" validate:"required,url"`
	APIKey         string `mapstructure:"api_key" yaml:"-"`
	Version        int    `mapstructure:"version" yaml:"version" validate:"min=1"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" validate:"min=1"`
	RetryAttempts  uint   `mapstructure:"retry_attempts" yaml:"retry_attempts"`
	// MediaDirectory overrides the private media store location reported by the service.
	MediaDirectory string `mapstructure:"media_directory" yaml:"media_directory"`
	ModelName      string `mapstructure:"model_name" yaml:"model_name"`
}

func (c AnkiConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type RepositoryConfig struct {
	DecksDirectory string `mapstructure:"decks_directory" yaml:"decks_directory" validate:"required"`
	MediaDirectory string `mapstructure:"media_directory" yaml:"media_directory" validate:"required"`
	LockFile       string `mapstructure:"lock_file" yaml:"lock_file" validate:"required"`
}

type InterchangeConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter" validate:"required,delimiter"`
	WriteBOM  bool   `mapstructure:"write_bom" yaml:"write_bom"`
}

// DelimiterRune returns the configured field delimiter. Load guarantees a single rune.
func (c InterchangeConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ';'
}

type MediaConfig struct {
	SearchDepth int `mapstructure:"search_depth" yaml:"search_depth" validate:"min=0"`
}

type OutputsConfig struct {
	PackagesDirectory string `mapstructure:"packages_directory" yaml:"packages_directory" validate:"required"`
	PreviewsDirectory string `mapstructure:"previews_directory" yaml:"previews_directory" validate:"required"`
	MediaDirectory    string `mapstructure:"media_directory" yaml:"media_directory" validate:"required"`
}

type PackagesConfig struct {
	ModelID    int64    `mapstructure:"model_id" yaml:"model_id" validate:"required"`
	ModelName  string   `mapstructure:"model_name" yaml:"model_name" validate:"required"`
	FieldNames []string `mapstructure:"field_names" yaml:"field_names" validate:"len=2,dive,required"`
}

type SiteConfig struct {
	BaseURL  string `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	Template string `mapstructure:"template" yaml:"template" validate:"omitempty,file"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ankiptsi")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("anki.url", "http://localhost:8765")
	v.SetDefault("anki.version", 6)
	v.SetDefault("anki.timeout_seconds", 30)
	v.SetDefault("anki.retry_attempts", 0)
	v.SetDefault("anki.media_directory", "")
	v.SetDefault("anki.model_name", "")
	v.SetDefault("repository.decks_directory", "decks")
	v.SetDefault("repository.media_directory", "media")
	v.SetDefault("repository.lock_file", ".ankiptsi.lock")
	v.SetDefault("interchange.delimiter", ";")
	v.SetDefault("interchange.write_bom", true)
	v.SetDefault("media.search_depth", 8)
	v.SetDefault("outputs.packages_directory", "docs")
	v.SetDefault("outputs.previews_directory", filepath.Join("docs", "previews"))
	v.SetDefault("outputs.media_directory", filepath.Join("docs", "media"))
	v.SetDefault("packages.model_id", 1607392319)
	v.SetDefault("packages.model_name", "PTSI Modele Simple")
	v.SetDefault("packages.field_names", []string{"Question", "Reponse"})
	v.SetDefault("site.base_url", "https://cermp.github.io/anki-ptsi/")
	v.SetDefault("site.template", "")

	if err := v.BindEnv("anki.url", "ANKI_CONNECT_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind ANKI_CONNECT_URL environment variable: %w", err)
	}
	// The key is only read from the environment so that it never lands in a committed config file
	if err := v.BindEnv("anki.api_key", "ANKI_CONNECT_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind ANKI_CONNECT_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/cardsage/cardsage/internal/types"
)

type Configuration struct {
	Server       ServerConfig       `validate:"required"`
	Logging      LoggingConfig      `validate:"required"`
	Cards        CardsConfig        `validate:"required"`
	Phrasing     PhrasingConfig     `validate:"required"`
	Conversation ConversationConfig `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// CardsConfig points at the card definition files consumed once at startup.
type CardsConfig struct {
	Dir string `validate:"required"`
}

// PhrasingConfig configures the external text-generation collaborator.
// When APIKey is empty the deterministic template phraser is used instead.
type PhrasingConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ConversationConfig controls the per-conversation entity carry-over store.
type ConversationConfig struct {
	TTL             time.Duration `validate:"required"`
	CleanupInterval time.Duration `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	// Optional .env for local development, same precedence as env vars
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cardsage")

	v.SetEnvPrefix("CARDSAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("cards.dir", "./data/cards")
	v.SetDefault("phrasing.baseurl", "https://api.openai.com/v1")
	v.SetDefault("phrasing.model", "gpt-4o-mini")
	v.SetDefault("phrasing.timeout", "30s")
	v.SetDefault("conversation.ttl", "30m")
	v.SetDefault("conversation.cleanupinterval", "1h")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development.
// This is useful for running scripts or other non-web applications.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server:  ServerConfig{Address: ":8080"},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
		Cards:   CardsConfig{Dir: "./data/cards"},
		Conversation: ConversationConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: time.Hour,
		},
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageDriverMemory = "memory"
	StorageDriverRedis  = "redis"

	LookupErrorOpen   = "open"
	LookupErrorClosed = "closed"
)

type Completion struct {
	APIKey          string        `yaml:"api_key" env:"OPENAI_API_KEY" env-required:"true"`
	BaseURL         string        `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.groq.com/openai/v1"`
	Model           string        `yaml:"model" env:"OPENAI_MODEL" env-default:"llama-3.3-70b-versatile"`
	Temperature     float32       `yaml:"temperature" env:"MODEL_TEMPERATURE" env-default:"0.7"`
	MaxTokens       int           `yaml:"max_tokens" env:"MODEL_MAX_TOKENS" env-default:"2048"`
	MaxPromptTokens int           `yaml:"max_prompt_tokens" env:"MODEL_MAX_PROMPT_TOKENS" env-default:"6000"`
	Timeout         time.Duration `yaml:"timeout" env:"COMPLETION_TIMEOUT" env-default:"90s"`
}

type Telegram struct {
	TelegramAPIToken string `yaml:"api_token" env:"TELEGRAM_APITOKEN" env-required:"true"`
	RequiredChannel  string `yaml:"required_channel" env:"REQUIRED_CHANNEL"`
	PollingTimeout   int    `yaml:"polling_timeout" env:"TELEGRAM_POLLING_TIMEOUT" env-default:"60"`
	Workers          int    `yaml:"workers" env:"TELEGRAM_WORKERS" env-default:"16"`
}

type Membership struct {
	OnLookupError string `yaml:"on_lookup_error" env:"MEMBERSHIP_ON_LOOKUP_ERROR" env-default:"open"`
}

type Branding struct {
	BotName        string `yaml:"bot_name" env:"BOT_NAME" env-default:"Codeninja AI"`
	OwnerContact   string `yaml:"owner_contact" env:"OWNER_CONTACT"`
	OwnerInstagram string `yaml:"owner_instagram" env:"OWNER_INSTAGRAM"`
	OwnerYouTube   string `yaml:"owner_youtube" env:"OWNER_YOUTUBE"`
}

type Render struct {
	Enabled  bool    `yaml:"enabled" env:"RENDER_CODE_IMAGES" env-default:"true"`
	FontSize float64 `yaml:"font_size" env:"RENDER_FONT_SIZE" env-default:"14"`
}

type Redis struct {
	Endpoint  string `yaml:"endpoint" env:"REDIS_ENDPOINT" env-default:"127.0.0.1:6379"`
	Password  string `yaml:"password" env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"codeninja:"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	Redis  Redis  `yaml:"redis"`
}

type HTTP struct {
	ListenAddr string `yaml:"listen_addr" env:"HTTP_LISTEN_ADDR"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type Config struct {
	Telegram   Telegram   `yaml:"telegram"`
	Completion Completion `yaml:"completion"`
	Membership Membership `yaml:"membership"`
	Branding   Branding   `yaml:"branding"`
	Render     Render     `yaml:"render"`
	Storage    Storage    `yaml:"storage"`
	HTTP       HTTP       `yaml:"http"`
	Log        Log        `yaml:"log"`
}

// LoadConfig reads cfgPath, when given, and then the environment, which
// overrides the file.
func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if cfgPath != "" {
		if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
			return nil, err
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverMemory, StorageDriverRedis:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	switch c.Membership.OnLookupError {
	case LookupErrorOpen, LookupErrorClosed:
	default:
		return fmt.Errorf("unsupported membership lookup error policy %q", c.Membership.OnLookupError)
	}
	if c.Telegram.Workers <= 0 {
		return fmt.Errorf("telegram workers must be positive, got %d", c.Telegram.Workers)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Admin    AdminConfig    `yaml:"admin"`
	Telegram TelegramConfig `yaml:"telegram"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Reminder ReminderConfig `yaml:"reminder"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

// AdminConfig holds the single administrator credential. Password is a
// bcrypt hash; a plain value is also accepted for local setups.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// TelegramConfig holds the Bot API endpoint. Credentials live in the
// store, not here; only the base URL is static configuration.
type TelegramConfig struct {
	APIBase string `yaml:"api_base"`
}

type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// ReminderConfig controls the deadline reminder sweep.
type ReminderConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Schedule  string `yaml:"schedule"`   // cron expression
	DaysAhead int    `yaml:"days_ahead"` // notify when deadline is within N days
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.applyDefaults()
	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "studenttrack.db",
		},
		JWT: JWTConfig{
			Secret:     "studenttrack-secret-key-change-in-production",
			ExpireHour: 24,
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin",
		},
		Telegram: TelegramConfig{
			APIBase: "https://api.telegram.org",
		},
		OpenAI: OpenAIConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Reminder: ReminderConfig{
			Enabled:   false,
			Schedule:  "0 9 * * *",
			DaysAhead: 3,
		},
	}
}

// applyDefaults fills zero values on a partially specified file config.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = def.Database.DSN
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = def.JWT.Secret
	}
	if c.JWT.ExpireHour == 0 {
		c.JWT.ExpireHour = def.JWT.ExpireHour
	}
	if c.Admin.Username == "" {
		c.Admin.Username = def.Admin.Username
	}
	if c.Admin.Password == "" {
		c.Admin.Password = def.Admin.Password
	}
	if c.Telegram.APIBase == "" {
		c.Telegram.APIBase = def.Telegram.APIBase
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = def.OpenAI.BaseURL
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = def.OpenAI.Model
	}
	if c.Reminder.Schedule == "" {
		c.Reminder.Schedule = def.Reminder.Schedule
	}
	if c.Reminder.DaysAhead == 0 {
		c.Reminder.DaysAhead = def.Reminder.DaysAhead
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if user := os.Getenv("ADMIN_USERNAME"); user != "" {
		c.Admin.Username = user
	}
	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		c.Admin.Password = pass
	}
	if base := os.Getenv("TELEGRAM_API_BASE"); base != "" {
		c.Telegram.APIBase = base
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		c.OpenAI.BaseURL = baseURL
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		c.OpenAI.APIKey = apiKey
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		c.OpenAI.Model = model
	}
}

func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ganot/signin-mcp/internal/domain/signin"
	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Tenant  string        `yaml:"tenant"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Mapping MappingConfig `yaml:"mapping"`
	PTO     PTOConfig     `yaml:"pto"`
	Policy  PolicyConfig  `yaml:"policy"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// MappingConfig is the default column mapping for sign-in sheets.
type MappingConfig struct {
	Identifier []string `yaml:"identifier"`
	Timestamp  []string `yaml:"timestamp"`
	Date       []string `yaml:"date"`
	Time       []string `yaml:"time"`
	Layouts    []string `yaml:"layouts"`
	TimeZone   string   `yaml:"timezone"`
	WeekScheme string   `yaml:"week_scheme"`
}

// PTOConfig points at the upstream leave calendar. An empty URL disables
// PTO syncing.
type PTOConfig struct {
	URL       string        `yaml:"url"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

type PolicyConfig struct {
	OfficeDays []string `yaml:"office_days"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Tenant: "default",
		DB: DBConfig{
			Path: "signin.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Mapping: MappingConfig{
			TimeZone:   "UTC",
			WeekScheme: string(signin.WeekISO),
		},
		PTO: PTOConfig{
			Timeout:  10 * time.Second,
			CacheTTL: 10 * time.Minute,
		},
		Policy: PolicyConfig{
			OfficeDays: []string{"Tue", "Wed", "Thu"},
		},
	}

	if path := os.Getenv("SIGNIN_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if tenant := os.Getenv("SIGNIN_TENANT"); tenant != "" {
		cfg.Tenant = tenant
	}
	if dbPath := os.Getenv("SIGNIN_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("SIGNIN_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("SIGNIN_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if tz := os.Getenv("SIGNIN_TIMEZONE"); tz != "" {
		cfg.Mapping.TimeZone = tz
	}
	if scheme := os.Getenv("SIGNIN_WEEK_SCHEME"); scheme != "" {
		cfg.Mapping.WeekScheme = scheme
	}
	if url := os.Getenv("SIGNIN_PTO_URL"); url != "" {
		cfg.PTO.URL = url
	}
	if user := os.Getenv("SIGNIN_PTO_USERNAME"); user != "" {
		cfg.PTO.Username = user
	}
	if pass := os.Getenv("SIGNIN_PTO_PASSWORD"); pass != "" {
		cfg.PTO.Password = pass
	}
	if timeoutStr := os.Getenv("SIGNIN_PTO_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SIGNIN_PTO_TIMEOUT: %w", err)
		}
		cfg.PTO.Timeout = timeout
	}
	if ttlStr := os.Getenv("SIGNIN_PTO_CACHE_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SIGNIN_PTO_CACHE_TTL: %w", err)
		}
		cfg.PTO.CacheTTL = ttl
	}
	if days := os.Getenv("SIGNIN_OFFICE_DAYS"); days != "" {
		cfg.Policy.OfficeDays = splitList(days)
	}

	if err := cfg.SigninMapping().Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid mapping config: %w", err)
	}

	return cfg, nil
}

// SigninMapping converts the mapping section, filling gaps with defaults.
func (c Config) SigninMapping() signin.Mapping {
	return signin.Mapping{
		Identifier: c.Mapping.Identifier,
		Timestamp:  c.Mapping.Timestamp,
		Date:       c.Mapping.Date,
		Time:       c.Mapping.Time,
		Layouts:    c.Mapping.Layouts,
		TimeZone:   c.Mapping.TimeZone,
		WeekScheme: signin.WeekScheme(strings.ToLower(c.Mapping.WeekScheme)),
	}.WithDefaults()
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

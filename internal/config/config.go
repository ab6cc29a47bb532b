package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Export ExportConfig `mapstructure:"export"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Ledger LedgerConfig `mapstructure:"ledger"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// ExportConfig controls how the ledger CSV is written.
type ExportConfig struct {
	Encoding  string `mapstructure:"encoding"`
	Separator string `mapstructure:"separator"`
	Extended  bool   `mapstructure:"extended"`
}

// BatchConfig holds batch processing settings.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// LedgerConfig holds transformation settings.
type LedgerConfig struct {
	// ReferenceDate (DD/MM/YYYY) overrides the posting date when set.
	ReferenceDate string `mapstructure:"reference_date"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

const dateLayout = "02/01/2006"

// Load reads configuration from .env, an optional config file and env. Env var overrides use
// prefix CAMARA_ (e.g. CAMARA_SERVER_PORT). envFiles default to ".env"; a missing file is ignored.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// default values
	v.SetDefault("server.port", "8083")
	v.SetDefault("server.mode", "release")
	v.SetDefault("export.encoding", "utf-8")
	v.SetDefault("export.separator", ";")
	v.SetDefault("export.extended", false)
	v.SetDefault("batch.workers", 4)
	v.SetDefault("ledger.reference_date", "")
	v.SetDefault("log.level", "info")

	if cfgPath := os.Getenv("CAMARA_CONFIG"); cfgPath != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(cfgPath)
	} else {
		// sem SetConfigType o viper só procura camara.<ext>, nunca um arquivo "camara" sem extensão
		v.AddConfigPath(".")
		v.SetConfigName("camara")
	}

	v.SetEnvPrefix("CAMARA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values viper cannot type-check.
func (c Config) Validate() error {
	switch strings.ToLower(c.Export.Encoding) {
	case "utf-8", "windows-1252":
	default:
		return fmt.Errorf("export.encoding inválido: %q (use utf-8 ou windows-1252)", c.Export.Encoding)
	}
	if utf8.RuneCountInString(c.Export.Separator) != 1 {
		return fmt.Errorf("export.separator deve ter um único caractere: %q", c.Export.Separator)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch.workers deve ser positivo: %d", c.Batch.Workers)
	}
	if _, err := c.ReferenceDate(); err != nil {
		return err
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level inválido: %w", err)
	}
	return nil
}

// SeparatorRune returns the export separator as a rune.
func (c Config) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Export.Separator)
	return r
}

// ReferenceDate parses ledger.reference_date; the zero time means "derive from the clock".
func (c Config) ReferenceDate() (time.Time, error) {
	s := strings.TrimSpace(c.Ledger.ReferenceDate)
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("ledger.reference_date inválida (use DD/MM/AAAA): %w", err)
	}
	return d, nil
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/weedbox/casinotable"
	"github.com/weedbox/casinotable/card"
	"go.uber.org/zap/zapcore"
)

const (
	Env_File          = "CASINO_ENV_FILE"
	Env_Port          = "PORT"
	Env_StaticDir     = "CASINO_STATIC_DIR"
	Env_StartingChips = "CASINO_STARTING_CHIPS"
	Env_SpinDelay     = "CASINO_SPIN_DELAY"
	Env_LogLevel      = "CASINO_LOG_LEVEL"
	Env_BJDecks       = "CASINO_BJ_DECKS"

	maxBlackjackDecks = 8
)

var (
	ErrInvalidPort          = errors.New("config: invalid port")
	ErrInvalidStartingChips = errors.New("config: starting chips must be positive")
	ErrInvalidSpinDelay     = errors.New("config: spin delay must not be negative")
	ErrInvalidDecks         = errors.New("config: blackjack decks must be between 1 and 8")
)

type Config struct {
	Port           string        `json:"port"`
	StaticDir      string        `json:"static_dir"`
	StartingChips  int64         `json:"starting_chips"`
	SpinDelay      time.Duration `json:"spin_delay"`
	LogLevel       string        `json:"log_level"`
	BlackjackDecks int           `json:"blackjack_decks"`
}

func NewDefaultConfig() Config {
	return Config{
		Port:           "3000",
		StaticDir:      "public",
		StartingChips:  1000,
		SpinDelay:      casinotable.DefaultSpinDelay,
		LogLevel:       "info",
		BlackjackDecks: 6,
	}
}

// Load layers defaults, the optional .env file, the environment and finally args. The environment wins over the file.
func Load(args []string) (Config, error) {
	cfg := NewDefaultConfig()

	envFile := os.Getenv(Env_File)
	if envFile == "" {
		envFile = ".env"
	}

	fileValues, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config: read %s: %w", envFile, err)
		}
		fileValues = map[string]string{}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("casino-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "directory with the browser client")
	fs.Int64Var(&cfg.StartingChips, "chips", cfg.StartingChips, "chips every new player starts with")
	fs.DurationVar(&cfg.SpinDelay, "spin-delay", cfg.SpinDelay, "how long the roulette wheel spins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.IntVar(&cfg.BlackjackDecks, "decks", cfg.BlackjackDecks, "decks in a blackjack shoe")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(Env_Port); ok && v != "" {
		cfg.Port = v
	}
	if v, ok := lookup(Env_StaticDir); ok {
		cfg.StaticDir = v
	}
	if v, ok := lookup(Env_StartingChips); ok && v != "" {
		chips, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", Env_StartingChips, err)
		}
		cfg.StartingChips = chips
	}
	if v, ok := lookup(Env_SpinDelay); ok && v != "" {
		delay, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", Env_SpinDelay, err)
		}
		cfg.SpinDelay = delay
	}
	if v, ok := lookup(Env_LogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(Env_BJDecks); ok && v != "" {
		decks, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", Env_BJDecks, err)
		}
		cfg.BlackjackDecks = decks
	}
	return nil
}

func (cfg Config) Validate() error {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port <= 0 || port > 65535 {
		return ErrInvalidPort
	}
	if cfg.StartingChips <= 0 {
		return ErrInvalidStartingChips
	}
	if cfg.SpinDelay < 0 {
		return ErrInvalidSpinDelay
	}
	if cfg.BlackjackDecks < 1 || cfg.BlackjackDecks > maxBlackjackDecks {
		return ErrInvalidDecks
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (cfg Config) Addr() string {
	return ":" + cfg.Port
}

func (cfg Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// TableSetting derives the rules new tables are created with.
func (cfg Config) TableSetting() casinotable.TableSetting {
	setting := casinotable.NewDefaultTableSetting().WithStartingChips(cfg.StartingChips)
	setting.Blackjack.Decks = cfg.BlackjackDecks
	setting.Blackjack.ReshuffleThreshold = cfg.BlackjackDecks * card.BaseDeckSize / 4
	return setting
}

package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort          = 5000
	DefaultDistDir       = "dist"
	DefaultAllowedOrigin = "http://localhost:5173"
)

var ErrInvalidPort = errors.New("port must be a number between 1 and 65535")

type Config struct {
	Port          int
	DistDir       string
	AllowedOrigin string
}

func DefaultConfig() Config {
	return Config{
		Port:          DefaultPort,
		DistDir:       DefaultDistDir,
		AllowedOrigin: DefaultAllowedOrigin,
	}
}

// LoadConfig loads .env from the working directory when present and reads
// PORT, DIST_DIR and ALLOWED_ORIGIN. Variables already set in the process
// environment take precedence over .env.
func LoadConfig() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("cannot load .env file: %w", err)
	}

	return ConfigFromEnv(os.Getenv)
}

func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if rawPort := getenv("PORT"); rawPort != "" {
		port, err := strconv.Atoi(rawPort)
		if err != nil {
			return Config{}, fmt.Errorf("PORT %q: %w", rawPort, ErrInvalidPort)
		}
		cfg.Port = port
	}

	if distDir := getenv("DIST_DIR"); distDir != "" {
		cfg.DistDir = distDir
	}

	if origin := getenv("ALLOWED_ORIGIN"); origin != "" {
		cfg.AllowedOrigin = origin
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d: %w", c.Port, ErrInvalidPort)
	}

	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

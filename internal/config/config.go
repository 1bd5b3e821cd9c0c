package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	FrontendWeb      = "web"
	FrontendTerminal = "terminal"

	StorageMemory = "memory"
	StorageRedis  = "redis"

	localConfigFile = "config.yml"
	xdgConfigFile   = "tictactoe/config.yml"
)

var (
	ErrUnknownFrontend = errors.New("unknown frontend")
	ErrUnknownStorage  = errors.New("unknown storage")
)

type Config struct {
	LogLevel       string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Frontend       string        `yaml:"frontend" env:"FRONTEND" env-default:"web"`
	HTTPPort       string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort     string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage        string        `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis          Redis         `yaml:"redis"`
	SessionTTL     time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	AllowedOrigins []string      `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-default:"*"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in the config file, panics on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads the config file at path, or only the environment when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Locate - finds the config file in baseDir, then in the XDG config directories.
// Returns an empty path when there is none.
func Locate(baseDir string) string {
	local := filepath.Join(baseDir, localConfigFile)
	if _, err := os.Stat(local); err == nil {
		return local
	}

	if path, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return path
	}

	return ""
}

func (that *Config) Validate() error {
	if !slices.Contains([]string{FrontendWeb, FrontendTerminal}, that.Frontend) {
		return fmt.Errorf("%w: %q", ErrUnknownFrontend, that.Frontend)
	}

	if !slices.Contains([]string{StorageMemory, StorageRedis}, that.Storage) {
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

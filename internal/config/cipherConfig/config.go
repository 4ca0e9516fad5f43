package cipherConfig

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	CONFIG_CIPHER_PATH = "CONFIG_CIPHER_PATH"
)

type Config struct {
	Cipher CipherConfig `yaml:"cipher"`
	Rand   RandConfig   `yaml:"rand"`
	Log    LogConfig    `yaml:"log"`
}

type CipherConfig struct {
	Algorithm string `yaml:"algorithm" env:"HITLS_CIPHER" env-default:"AES-256-CBC"`
	Padding   string `yaml:"padding" env:"HITLS_PADDING" env-default:"PKCS7"`
	ChunkSize int    `yaml:"chunk_size" env:"HITLS_CHUNK_SIZE" env-default:"16384"`
}

type RandConfig struct {
	Algorithm      string `yaml:"algorithm" env:"HITLS_DRBG" env-default:"AES256-CTR-DF"`
	ReseedInterval uint64 `yaml:"reseed_interval" env:"HITLS_RESEED_INTERVAL" env-default:"1048576"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"HITLS_LOG_LEVEL" env-default:"info"`
}

// LoadCipherConfig reads the file named by CONFIG_CIPHER_PATH. Without it
// the configuration comes from the environment and the defaults.
func LoadCipherConfig() (*Config, error) {

	slog.Debug("Loading cipher config")

	var config Config

	configPath := os.Getenv(CONFIG_CIPHER_PATH)
	if configPath == "" {
		if err := cleanenv.ReadEnv(&config); err != nil {
			return nil, fmt.Errorf("cannot read config from environment: %w", err)
		}
		return &config, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s does not exist %s", CONFIG_CIPHER_PATH, configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &config); err != nil {
		return nil, fmt.Errorf("cannot load config file: %w", err)
	}

	return &config, nil
}

// SlogLevel maps Log.Level onto slog levels; unknown names mean info.
func (c LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

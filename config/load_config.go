package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrSecretKeyMissing = errors.New("jwt.secret_key не задан")

// LoadConfig читает .env (если есть), затем yaml файл, затем переменные окружения.
// Переменные окружения перекрывают значения из файла.
func LoadConfig(filePath string) (*Config, error) {
	return LoadConfigWithEnv(filePath, ".env")
}

func LoadConfigWithEnv(filePath string, envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("ошибка чтения %s: %w", envPath, err)
		}
	}

	var cfg Config
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка парсинга .yaml файла: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка чтения переменных окружения: %w", err)
	}

	if cfg.JWT.SecretKey == "" {
		return nil, ErrSecretKeyMissing
	}

	return &cfg, nil
}

package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER" env:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER" env:"DB_USER"`
	DBName     string `yaml:"DB_NAME" env:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD" env:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT" env:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST" env:"DB_HOST"`
	SQLitePath string `yaml:"SQLITE_PATH" env:"SQLITE_PATH"`

	// Application
	AppURL  string `yaml:"APP_URL" env:"APP_URL"`
	AppPort string `yaml:"APP_PORT" env:"APP_PORT"`

	// Languages and message catalogs
	Languages       string `yaml:"LANGUAGES" env:"LANGUAGES"`
	DefaultLanguage string `yaml:"DEFAULT_LANGUAGE" env:"DEFAULT_LANGUAGE"`
	LocaleDir       string `yaml:"LOCALE_DIR" env:"LOCALE_DIR"`

	// DeepL machine translation
	DeepLAuthKey string `yaml:"DEEPL_AUTH_KEY" env:"DEEPL_AUTH_KEY"`
	DeepLAPIURL  string `yaml:"DEEPL_API_URL" env:"DEEPL_API_URL"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET" env:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION" env:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY" env:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY" env:"AWS_SECRET_KEY"`

	// Social links shown on pages
	WhatsAppURL  string `yaml:"WHATSAPP_URL" env:"WHATSAPP_URL"`
	TelegramURL  string `yaml:"TELEGRAM_URL" env:"TELEGRAM_URL"`
	InstagramURL string `yaml:"INSTAGRAM_URL" env:"INSTAGRAM_URL"`
}

var config = withDefaults(Config{})

// LoadConfig reads config.yaml (or the file named by CONFIG_PATH) and
// overlays any matching environment variables on top of it.
func LoadConfig() error {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	var loaded Config
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Warnf("config file %s not found, using environment only", path)
	case err != nil:
		return err
	default:
		if err := yaml.Unmarshal(file, &loaded); err != nil {
			return err
		}
	}

	if err := env.Parse(&loaded); err != nil {
		return err
	}
	config = withDefaults(loaded)
	return nil
}

func withDefaults(c Config) Config {
	if c.DBDriver == "" {
		c.DBDriver = "postgres"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "khadija.db"
	}
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "de"
	}
	if c.Languages == "" {
		c.Languages = "de,en,fr,es,it"
	}
	if c.LocaleDir == "" {
		c.LocaleDir = "locale"
	}
	if c.DeepLAPIURL == "" {
		c.DeepLAPIURL = "https://api-free.deepl.com/v2/translate"
	}
	return c
}

// SetConfig replaces the loaded configuration.
func SetConfig(c Config) {
	config = withDefaults(c)
}

func GetConfig(key string) string {
	switch key {
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "SQLITE_PATH":
		return config.SQLitePath
	case "APP_URL":
		return config.AppURL
	case "APP_PORT":
		return config.AppPort
	case "LANGUAGES":
		return config.Languages
	case "DEFAULT_LANGUAGE":
		return config.DefaultLanguage
	case "LOCALE_DIR":
		return config.LocaleDir
	case "DEEPL_AUTH_KEY":
		return config.DeepLAuthKey
	case "DEEPL_API_URL":
		return config.DeepLAPIURL
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "WHATSAPP_URL":
		return config.WhatsAppURL
	case "TELEGRAM_URL":
		return config.TelegramURL
	case "INSTAGRAM_URL":
		return config.InstagramURL
	default:
		return ""
	}
}

// GetLanguages splits LANGUAGES into trimmed, lower-case codes.
func GetLanguages() []string {
	var langs []string
	for _, l := range strings.Split(config.Languages, ",") {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			langs = append(langs, l)
		}
	}
	return langs
}

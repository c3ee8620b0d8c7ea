package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arslanca/portfolio/internal/models"
)

type Config struct {
	PORT      string
	LOG_LEVEL string

	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	JWT_SECRET     string
	REFRESH_SECRET string

	ADMIN_CREATE   bool
	ADMIN_USERNAME string
	ADMIN_PASSWORD string

	KAFKA_ADDRESS string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	MAIL_HOST     string
	MAIL_PORT     int
	MAIL_USERNAME string
	MAIL_PASSWORD string

	WAKA_KEY        string
	GITHUB_USERNAME string
	GITHUB_TOKEN    string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))

	config := &Config{
		PORT:      envDefault("PORT", "8080"),
		LOG_LEVEL: os.Getenv("LOG_LEVEL"),

		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     os.Getenv("DB_NAME"),

		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),

		ADMIN_CREATE:   os.Getenv("ADMIN_CREATE") == "true",
		ADMIN_USERNAME: os.Getenv("ADMIN_USERNAME"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),

		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),

		ES_URL:      os.Getenv("ES_URL"),
		ES_USER:     os.Getenv("ES_USER"),
		ES_PASSWORD: os.Getenv("ES_PASSWORD"),

		MAIL_HOST:     os.Getenv("MAIL_HOST"),
		MAIL_PORT:     mailPort,
		MAIL_USERNAME: os.Getenv("MAIL_USERNAME"),
		MAIL_PASSWORD: os.Getenv("MAIL_PASSWORD"),

		WAKA_KEY:        os.Getenv("WAKA_KEY"),
		GITHUB_USERNAME: os.Getenv("GITHUB_USERNAME"),
		GITHUB_TOKEN:    os.Getenv("GITHUB_TOKEN"),
	}

	if config.JWT_SECRET == "" || config.REFRESH_SECRET == "" {
		return nil, fmt.Errorf("JWT_SECRET and REFRESH_SECRET must be set")
	}

	return config, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.RevokedToken{},
		&models.BlogPost{},
		&models.PinnedProject{},
		&models.TechStack{},
	)
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

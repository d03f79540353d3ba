package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	BaseURL string
	LogFile string

	// SMTP for transactional mail; leave host empty to disable sending.
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	MailFrom    string
	MailReplyTo string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DBDSN:       getenv("DB_DSN", "pristine.db"),
		BaseURL:     getenv("BASE_URL", "http://localhost:8080"),
		LogFile:     getenv("LOG_FILE", "./pristine.log"),
		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASS"),
		MailFrom:    getenv("MAIL_FROM", "Pristine & Co. <noreply@pristineco.com>"),
		MailReplyTo: getenv("MAIL_REPLY_TO", "hello@pristineco.com"),
	}
	cfg.SMTPPort = 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			cfg.SMTPPort = n
		}
	}

	log.Printf("[config] PORT=%s DB_DSN=%s BASE_URL=%s SMTP=%v", cfg.Port, cfg.DBDSN, cfg.BaseURL, cfg.SMTPHost != "")
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DB                 DBConfig
	RecaptchaSecret    string
	RecaptchaVerifyURL string
	JWTSecret          string
	AdminEmail         string
	AdminPassword      string
	Mail               MailConfig
	RabbitMQURL        string
	Telegram           TelegramConfig
	AllowedOrigins     []string
	MaxPageSize        int
}

type DBConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type MailConfig struct {
	APIKey   string
	APIURL   string
	From     string
	To       []string
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port: getEnv("PORT", "3000"),
		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			URL:      os.Getenv("DATABASE_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getInt("DB_CONNECTION_LIMIT", 10, &errs),
		},
		RecaptchaSecret:    os.Getenv("RECAPTCHA_SECRET"),
		RecaptchaVerifyURL: os.Getenv("RECAPTCHA_VERIFY_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		Mail: MailConfig{
			APIKey:   os.Getenv("EMAIL_API_KEY"),
			APIURL:   os.Getenv("EMAIL_API_URL"),
			From:     getEnv("MAIL_FROM", "no-reply@localhost"),
			To:       splitList(os.Getenv("MAIL_TO")),
			SMTPHost: os.Getenv("MAIL_HOST"),
			SMTPPort: getInt("MAIL_PORT", 587, &errs),
			SMTPUser: os.Getenv("MAIL_USER"),
			SMTPPass: os.Getenv("MAIL_PASS"),
		},
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		Telegram: TelegramConfig{
			BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxPageSize:    getInt("MAX_PAGE_SIZE", 100, &errs),
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err))
		}
		cfg.Telegram.ChatID = id
	}

	for key, val := range map[string]string{
		"RECAPTCHA_SECRET": cfg.RecaptchaSecret,
		"JWT_SECRET":       cfg.JWTSecret,
		"ADMIN_EMAIL":      cfg.AdminEmail,
		"ADMIN_PASSWORD":   cfg.AdminPassword,
	} {
		if val == "" {
			errs = append(errs, fmt.Errorf("%s is required", key))
		}
	}
	if cfg.DB.URL == "" && cfg.DB.Host == "" {
		errs = append(errs, errors.New("DATABASE_URL or DB_HOST is required"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN returns DATABASE_URL verbatim or builds a postgres URL from the parts.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Адрес HTTP-сервера в формате host:port
	RunAddress string `env:"RUN_ADDRESS"`
	// Строка подключения к БД. Пустая — локальный SQLite-файл
	DatabaseDSN string `env:"DATABASE_URI"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Настройки JWT
	AuthSecret         string `env:"AUTH_SECRET"`
	JWTIssuer          string `env:"JWT_ISSUER"`
	JWTAudience        string `env:"JWT_AUDIENCE"`
	TokenExpiryMinutes int    `env:"TOKEN_EXPIRY_MINUTES"`

	// Лимит размера загружаемого изображения, МБ
	ImageMaxSizeMB int `env:"IMAGE_MAX_MB"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "адрес запуска HTTP-сервера")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.JWTIssuer, "jwt-issuer", cfg.JWTIssuer, "issuer для JWT")
	flag.StringVar(&cfg.JWTAudience, "jwt-audience", cfg.JWTAudience, "audience для JWT")
	flag.IntVar(&cfg.TokenExpiryMinutes, "token-expiry", cfg.TokenExpiryMinutes, "время жизни JWT, минут")
	flag.IntVar(&cfg.ImageMaxSizeMB, "image-max-mb", cfg.ImageMaxSizeMB, "максимальный размер изображения, МБ")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "SampleBlog"
	}
	if cfg.JWTAudience == "" {
		cfg.JWTAudience = "SampleBlogUsers"
	}
	if cfg.TokenExpiryMinutes <= 0 {
		cfg.TokenExpiryMinutes = 60
	}
	if cfg.ImageMaxSizeMB <= 0 {
		cfg.ImageMaxSizeMB = 5
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "blog.sqlite"
	}

	// validate RunAddress: должен быть в формате "address:port" (без схемы и пути)
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.RunAddress) {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg
}

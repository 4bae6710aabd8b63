package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug       bool          `yaml:"debug" env:"DEBUG"`
	AppSecret   string        `yaml:"app_secret" env:"APP_SECRET" env-required:"true"`
	TokenTTL    time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"168h"`
	FrontendURL string        `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	UploadsDir  string        `yaml:"uploads_dir" env:"UPLOADS_DIR" env-default:"uploads"`
	Limiter     Limiter       `yaml:"limiter"`
	Cors        Cors          `yaml:"cors"`
	Server      Server        `yaml:"server"`
	DB          DB            `yaml:"db"`
	Clients     ClientsConfig `yaml:"clients"`
	SMTPServer  SMTPServer    `yaml:"smtp"`
}


type Limiter struct {
	Enabled bool    `yaml:"enabled" env:"LIMITER_ENABLED"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
	// auth endpoints get a separate, stricter window
	AuthRequests int           `yaml:"auth_requests" env-default:"10"`
	AuthWindow   time.Duration `yaml:"auth_window" env-default:"1m"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

type ClientsConfig struct {
	TMDB        TMDBClient        `yaml:"tmdb"`
	GoogleBooks GoogleBooksClient `yaml:"google_books"`
}

type TMDBClient struct {
	BaseURL      string        `yaml:"base_url" env-default:"https://api.themoviedb.org/3"`
	ImageBaseURL string        `yaml:"image_base_url" env-default:"https://image.tmdb.org/t/p"`
	ApiKey       string        `yaml:"api_key" env:"TMDB_API_KEY"`
	Language     string        `yaml:"language" env-default:"tr-TR"`
	Timeout      time.Duration `yaml:"timeout" env-default:"10s"`
}

type GoogleBooksClient struct {
	BaseURL string        `yaml:"base_url" env-default:"https://www.googleapis.com/books/v1"`
	ApiKey  string        `yaml:"api_key" env:"GOOGLE_BOOKS_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

type Server struct {
	Port string `yaml:"port" env:"PORT" env-default:"5000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DB struct {
	Dsn             string        `yaml:"dsn" env:"DB_DSN" env-required:"true"`
	MaxConns        int           `yaml:"max_conns" env-default:"10"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type SMTPServer struct {
	Host         string        `yaml:"host" env:"SMTP_HOST"`
	Port         int           `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username     string        `yaml:"username" env:"SMTP_USERNAME"`
	Password     string        `yaml:"password" env:"SMTP_PASSWORD"`
	Sender       string        `yaml:"sender" env:"SMTP_SENDER"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
	RetriesCount int           `yaml:"retries_count" env-default:"1"`
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (s SMTPServer) Enabled() bool {
	return s.Host != "" && s.Username != "" && s.Password != ""
}

func MustLoad(configPath string) *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("loading .env: %w", err))
	}
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic(fmt.Errorf("config file %s not found", configPath))
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic(err)
	}

	return &cfg
}

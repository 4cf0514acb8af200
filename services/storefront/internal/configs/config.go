package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

type ApiClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ListingConfig struct {
	OnError string // fallback | error
	PerPage int
}

// SessionConfig - где хранится сессия и как о ней узнают другие экземпляры.
type SessionConfig struct {
	Backend      string // memory | redis | postgres
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
	JWTSecret    string
	// Пустой RabbitURL - события сессии доставляются только внутри процесса.
	RabbitURL      string
	EventsExchange string
	SweepInterval  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DBconfig struct {
	URL string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию витрины
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	ApiClient    ApiClientConfig
	Listing      ListingConfig
	Session      SessionConfig
	Redis        RedisConfig
	Database     DBconfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Отсутствие .env не ошибка: значения берутся из окружения процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "storefront")

	cfg.Rest.PORT = getEnvAsString("PORT", "3000")
	cfg.Rest.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	cfg.ApiClient.BaseURL = strings.TrimRight(getEnvAsString("API_URL", "http://localhost:8080/api/v1"), "/")
	cfg.ApiClient.Timeout = getEnvAsDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second)

	cfg.Listing.OnError = getEnvAsString("LISTING_ON_ERROR", "fallback")
	cfg.Listing.PerPage = getEnvAsInt("LISTING_PER_PAGE", 12)

	cfg.Session.Backend = strings.ToLower(getEnvAsString("SESSION_BACKEND", "memory"))
	cfg.Session.CookieName = getEnvAsString("SESSION_COOKIE", "sf_session")
	cfg.Session.CookieSecure = getEnvAsBool("SESSION_COOKIE_SECURE", false)
	cfg.Session.TTL = getEnvAsDuration("SESSION_TTL", 7*24*time.Hour)
	cfg.Session.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.Session.RabbitURL = os.Getenv("RABBITMQ_URL")
	cfg.Session.EventsExchange = getEnvAsString("SESSION_EVENTS_EXCHANGE", "storefront.session.events")
	cfg.Session.SweepInterval = getEnvAsDuration("LISTING_SWEEP_INTERVAL", 10*time.Minute)

	switch cfg.Session.Backend {
	case "redis":
		cfg.Redis.Addr = getEnvAsString("REDIS_ADDR", "localhost:6379")
		cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
		cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	case "postgres":
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			log.Println("WARNING: SESSION_BACKEND is postgres, but DATABASE_URL is not set. Falling back to memory.")
			cfg.Session.Backend = "memory"
		}
	case "memory":
	default:
		log.Printf("WARNING: Unknown SESSION_BACKEND '%s'. Falling back to memory.\n", cfg.Session.Backend)
		cfg.Session.Backend = "memory"
	}

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	if d <= 0 {
		log.Printf("Warning: Environment variable %s (value: %s) must be a positive duration. Using default value: %s\n", key, valStr, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList: "a, b,c" -> [a b c].
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

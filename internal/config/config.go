package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Server
	Port                string
	CORSOrigins         string
	RateLimitPerMin     int
	AuthRateLimitPerMin int
	LogRetentionDays    int
	LogLevel            string
	AppEnv              string
	SentryDSN           string

	// Notification fan-out (disabled when AMQPURL is empty)
	AMQPURL              string
	NotificationExchange string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first; variables already set win.
func Load() *Config {
	_ = godotenv.Load()

	driver := getEnv("DB_DRIVER", "postgres")
	defaultPort := "5432"
	if driver == "mysql" {
		defaultPort = "3306"
	}

	return &Config{
		DBDriver:       driver,
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", defaultPort),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "pashudrishti"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 10),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),

		Port:                getEnv("PORT", "5000"),
		CORSOrigins:         getEnv("CORS_ORIGINS", "*"),
		RateLimitPerMin:     getInt("RATE_LIMIT_PER_MIN", 120),
		AuthRateLimitPerMin: getInt("AUTH_RATE_LIMIT_PER_MIN", 20),
		LogRetentionDays:    getInt("LOG_RETENTION_DAYS", 30),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		AppEnv:              getEnv("APP_ENV", "development"),
		SentryDSN:           getEnv("SENTRY_DSN", ""),

		AMQPURL:              getEnv("AMQP_URL", ""),
		NotificationExchange: getEnv("NOTIFICATION_EXCHANGE", "notifications"),
	}
}

// DSN renders the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "mysql" {
		mc := mysql.NewConfig()
		mc.User = c.DBUser
		mc.Passwd = c.DBPassword
		mc.Net = "tcp"
		mc.Addr = c.DBHost + ":" + c.DBPort
		mc.DBName = c.DBName
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	}

	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

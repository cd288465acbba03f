package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// MongoDB is the default document store
	MongoDB MongoDBConfig `json:"mongodb"`

	// Database is the MySQL store used when Store.Driver is "mysql"
	Database DatabaseConfig `json:"database"`

	Store StoreConfig `json:"store"`

	Auth AuthConfig `json:"auth"`

	Chat ChatConfig `json:"chat"`

	Notification NotificationConfig `json:"notification"`

	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	AdminPort    string `json:"admin_port"` // gRPC health and reflection
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

type MongoDBConfig struct {
	URI      string `json:"uri"` // full connection string, wins over the fields below
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// DatabaseConfig contains MySQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type StoreConfig struct {
	Driver string `json:"driver"` // mongo or mysql
}

type AuthConfig struct {
	Enabled   bool   `json:"enabled"`
	JWTSecret string `json:"-"`
}

type ChatConfig struct {
	PingInterval   int      `json:"ping_interval"`  // seconds
	LookupTimeout  int      `json:"lookup_timeout"` // seconds, bounds every store call made for one event
	SendBuffer     int      `json:"send_buffer"`    // outgoing frames queued per connection
	MaxMessageSize int64    `json:"max_message_size"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// NotificationConfig contains notification dispatch configuration
type NotificationConfig struct {
	Workers           int  `json:"workers"`             // Number of worker goroutines
	ChannelBufferSize int  `json:"channel_buffer_size"` // Channel buffer size
	Enabled           bool `json:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, console
	OutputPath string `json:"output_path"` // stdout, stderr, or file path
}

const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvOrDefault("PORT", "5000"),
			AdminPort:    getEnvOrDefault("ADMIN_PORT", "7005"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnvOrDefault("DB_CONNECTION", ""),
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USERNAME", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DATABASE", "tradeforce"),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("MYSQL_HOST", "localhost"),
			Port:         getEnvOrDefault("MYSQL_PORT", "3306"),
			Username:     getEnvOrDefault("MYSQL_USERNAME", "tradeforce"),
			Password:     getEnvOrDefault("MYSQL_PASSWORD", ""),
			DatabaseName: getEnvOrDefault("MYSQL_DATABASE", "tradeforce"),
			MaxOpenConns: getEnvAsInt("MYSQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("MYSQL_MAX_IDLE_CONNS", 5),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverMongo)),
		},
		Auth: AuthConfig{
			Enabled:   getEnvAsBool("AUTH_ENABLED", false),
			JWTSecret: getEnvOrDefault("TOKEN_SECRET", ""),
		},
		Chat: ChatConfig{
			PingInterval:   getEnvAsInt("CHAT_PING_INTERVAL", 15),
			LookupTimeout:  getEnvAsInt("CHAT_LOOKUP_TIMEOUT", 5),
			SendBuffer:     getEnvAsInt("CHAT_SEND_BUFFER", 64),
			MaxMessageSize: int64(getEnvAsInt("CHAT_MAX_MESSAGE_SIZE", 64*1024)),
			AllowedOrigins: getEnvAsList("CHAT_ALLOWED_ORIGINS", []string{"*"}),
		},
		Notification: NotificationConfig{
			Workers:           getEnvAsInt("NOTIF_WORKERS", 4),
			ChannelBufferSize: getEnvAsInt("NOTIF_BUFFER", 256),
			Enabled:           getEnvAsBool("NOTIF_ENABLED", true),
		},
		Logging: LoggingConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
		},
	}
}

// Validate reports settings the service cannot start with.
func (cfg *Config) Validate() error {
	switch cfg.Store.Driver {
	case DriverMongo, DriverMySQL:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("TOKEN_SECRET is required when AUTH_ENABLED is set")
	}
	return nil
}

func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.URI != "" {
		return cfg.MongoDB.URI
	}
	if cfg.MongoDB.Username != "" && cfg.MongoDB.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
			cfg.MongoDB.Username,
			cfg.MongoDB.Password,
			cfg.MongoDB.Host,
			cfg.MongoDB.Port,
			cfg.MongoDB.Database,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", cfg.MongoDB.Host, cfg.MongoDB.Port, cfg.MongoDB.Database)
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (c ChatConfig) PingEvery() time.Duration {
	return time.Duration(c.PingInterval) * time.Second
}

func (c ChatConfig) LookupDeadline() time.Duration {
	return time.Duration(c.LookupTimeout) * time.Second
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

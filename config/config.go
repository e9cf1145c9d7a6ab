package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Dosada05/sports-management/db"
)

const (
	ServiceCoach  = "coach"
	ServicePlayer = "player"
)

// Config holds every setting of the process.
type Config struct {
	StoreDriver db.Driver

	MongoHost     string
	MongoPort     string
	MongoDatabase string

	DatabaseURL string
	BoltPath    string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoEndpoint     string
	DynamoTablePrefix  string

	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration

	CoachPort  int
	PlayerPort int
	Services   []string

	LogLevel       slog.Level
	AllowedOrigins []string
}

// Load reads the configuration from the environment. A .env file, when
// present, is loaded first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StoreDriver:            db.Driver(strings.ToLower(getEnv("STORE_DRIVER", string(db.DriverMongo)))),
		MongoHost:              getEnv("MONGODB_HOST", "mongodb"),
		MongoPort:              getEnv("MONGODB_PORT", "27017"),
		MongoDatabase:          getEnv("MONGODB_DATABASE", "sportsmanagement"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		BoltPath:               getEnv("BOLT_PATH", "sportsmanagement.db"),
		AWSRegion:              getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:         os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
		DynamoEndpoint:         os.Getenv("DYNAMODB_ENDPOINT"),
		DynamoTablePrefix:      os.Getenv("DYNAMODB_TABLE_PREFIX"),
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		Services:               splitList(getEnv("SERVICES", ServiceCoach+","+ServicePlayer)),
		AllowedOrigins:         splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.CoachPort, err = getPort("COACH_PORT", 5002); err != nil {
		return nil, err
	}
	if cfg.PlayerPort, err = getPort("PLAYER_PORT", 5003); err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combinations Load cannot check field by field.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case db.DriverMongo, db.DriverDynamo, db.DriverBolt:
	case db.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of mongo, postgres, dynamodb or bolt, got %q", c.StoreDriver)
	}

	if (c.AWSAccessKeyID == "") != (c.AWSSecretAccessKey == "") {
		return fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together")
	}

	if len(c.Services) == 0 {
		return fmt.Errorf("SERVICES must name at least one of %s, %s", ServiceCoach, ServicePlayer)
	}
	for _, s := range c.Services {
		if s != ServiceCoach && s != ServicePlayer {
			return fmt.Errorf("unknown service %q in SERVICES", s)
		}
	}
	if c.Runs(ServiceCoach) && c.Runs(ServicePlayer) && c.CoachPort == c.PlayerPort {
		return fmt.Errorf("COACH_PORT and PLAYER_PORT must differ, both are %d", c.CoachPort)
	}

	return nil
}

// Runs reports whether the named service should be started.
func (c *Config) Runs(service string) bool {
	return slices.Contains(c.Services, service)
}

// StoreOptions translates the configuration for db.Open.
func (c *Config) StoreOptions() db.Options {
	return db.Options{
		Driver:                 c.StoreDriver,
		MongoURI:               db.MongoURI(c.MongoHost, c.MongoPort),
		MongoDatabase:          c.MongoDatabase,
		PostgresDSN:            c.DatabaseURL,
		BoltPath:               c.BoltPath,
		AWSRegion:              c.AWSRegion,
		AWSAccessKeyID:         c.AWSAccessKeyID,
		AWSSecretAccessKey:     c.AWSSecretAccessKey,
		DynamoEndpoint:         c.DynamoEndpoint,
		DynamoTablePrefix:      c.DynamoTablePrefix,
		ConnectTimeout:         c.ConnectTimeout,
		ServerSelectionTimeout: c.ServerSelectionTimeout,
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getPort(key string, defaultValue int) (int, error) {
	portStr := os.Getenv(key)
	if portStr == "" {
		return defaultValue, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be between 1 and 65535, got %d", key, port)
	}
	return port, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

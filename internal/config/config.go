package config // package config loads application configuration from environment variables

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config holds all runtime configuration values.  It is built once in main
// and handed by pointer to every component that needs a setting, so nothing
// below cmd/ reads the environment on its own.
type Config struct {
	Env               string        // application environment (e.g. "dev", "prod")
	Port              string        // HTTP port to listen on
	JWTSecret         string        // secret used to sign identity tokens
	TokenTTL          time.Duration // lifetime of an identity token
	BcryptCost        int           // bcrypt cost for password hashing
	StorageDriver     string        // "mongo" or "memory"
	MongoURI          string        // MongoDB connection string
	MongoDB           string        // MongoDB database name
	RabbitURL         string        // AMQP URL for the recipe link queue; empty disables it
	ReconcileInterval time.Duration // period of the owner-list repair sweep; 0 disables it
	Log               LogConfig
	Redis             RedisConfig
	RateLimit         RateLimitConfig
	Cache             CacheConfig
}

// LogConfig controls the logrus logger built in internal/logger.
type LogConfig struct {
	Level  string // panic|fatal|error|warn|info|debug|trace
	Format string // json|text
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables that are unset, and values that fail to
// parse, are reported as an error; main treats that as fatal.
func Load() (*Config, error) {
	var problems []string

	secret, ok := lookup("JWT_SECRET")
	if !ok {
		problems = append(problems, "missing required env var: JWT_SECRET")
	}

	ttl, err := durationOr("TOKEN_TTL", time.Hour)
	if err != nil {
		problems = append(problems, err.Error())
	}
	cost, err := intOr("BCRYPT_COST", 10)
	if err != nil {
		problems = append(problems, err.Error())
	} else if cost < 4 || cost > 31 {
		problems = append(problems, fmt.Sprintf("BCRYPT_COST %d out of range [4, 31]", cost))
	}
	interval, err := durationOr("RECONCILE_INTERVAL", 10*time.Minute)
	if err != nil {
		problems = append(problems, err.Error())
	}

	driver := strings.ToLower(getenv("STORAGE_DRIVER", StorageMongo))
	uri, hasURI := lookup("MONGODB_URI")
	switch driver {
	case StorageMongo:
		if !hasURI {
			problems = append(problems, "missing required env var: MONGODB_URI")
		}
	case StorageMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid STORAGE_DRIVER %q", driver))
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = getenv("PORT", "8000")
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}

	return &Config{
		Env:               getenv("APP_ENV", "dev"),
		Port:              port,
		JWTSecret:         secret,
		TokenTTL:          ttl,
		BcryptCost:        cost,
		StorageDriver:     driver,
		MongoURI:          uri,
		MongoDB:           getenv("MONGODB_DB", "recipes"),
		RabbitURL:         os.Getenv("RABBITMQ_URL"),
		ReconcileInterval: interval,
		Log: LogConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "json"),
		},
		Redis:     LoadRedisConfig(),
		RateLimit: LoadRateLimitConfig(),
		Cache:     LoadCacheConfig(),
	}, nil
}

// lookup retrieves a variable and reports whether it is set and non-empty.
func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// intOr is like getenv but converts the value into an integer.  Unlike the
// lenient helpers used by the rate limit and cache settings, a value that
// does not parse is an error here.
func intOr(key string, def int) (int, error) {
	s, ok := lookup(key)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q", key, s)
	}
	return n, nil
}

func durationOr(key string, def time.Duration) (time.Duration, error) {
	s, ok := lookup(key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, s)
	}
	return d, nil
}

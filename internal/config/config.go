package config // package config loads application configuration from environment variables

import (
    "log"  // log is used to report configuration errors and halt execution
    "os"   // os provides access to environment variables
    "time" // time parses duration values
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Strings for identifiers and
// endpoints, durations for timeouts.
type Config struct {
    Env             string        // application environment (e.g. "dev", "prod")
    Port            string        // HTTP port to listen on
    UpstreamBaseURL string        // base URL of the ticketing backend API
    UpstreamTimeout time.Duration // per-request timeout for upstream calls
    DBUser          string        // database username (order archive)
    DBPass          string        // database password (optional)
    DBHost          string        // database host address
    DBPort          string        // database port number
    DBName          string        // database name
    RabbitURL       string        // RabbitMQ URL for order events (optional)
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:             must("APP_ENV"),                                    // environment (dev/test/prod)
        Port:            must("APP_PORT"),                                   // port to bind the HTTP server
        UpstreamBaseURL: must("TICKETING_BASE_URL"),                         // ticketing backend base URL
        UpstreamTimeout: getDuration("TICKETING_TIMEOUT", 10*time.Second),   // upstream request timeout
        DBUser:          must("DB_USER"),                                    // database user
        DBPass:          os.Getenv("DB_PASS"),                               // database password (empty allowed)
        DBHost:          must("DB_HOST"),                                    // database host
        DBPort:          must("DB_PORT"),                                    // database port
        DBName:          must("DB_NAME"),                                    // database name
        RabbitURL:       getEnv("RABBITMQ_URL", ""),                         // broker URL; empty disables publishing
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// getEnv returns the variable's value or the default when unset.
func getEnv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// getDuration parses the variable as a time.Duration, falling back to
// the default on absence or parse failure.
func getDuration(key string, def time.Duration) time.Duration {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    d, err := time.ParseDuration(s)
    if err != nil {
        log.Fatalf("invalid duration for %s: %q", key, s)
    }
    return d
}

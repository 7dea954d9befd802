package config

import (
	"flag"
	"os"
	"time"
)

// Config holds the application configuration.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	GatewayAddress  string
	RedisAddress    string
	JWTSecret       string
	TokenExpiration time.Duration
	WorkerInterval  time.Duration
}

// Load reads configuration from command-line flags and environment
// variables. Environment variables win over flags over defaults.
func Load() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port to run the service")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "PostgreSQL connection string")
	flag.StringVar(&cfg.GatewayAddress, "g", "", "payment gateway address")
	flag.StringVar(&cfg.RedisAddress, "r", "", "redis address for the order details cache")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		cfg.RunAddress = envRunAddr
	}
	if envDBURI := os.Getenv("DATABASE_URI"); envDBURI != "" {
		cfg.DatabaseURI = envDBURI
	}
	if envGateway := os.Getenv("GATEWAY_ADDRESS"); envGateway != "" {
		cfg.GatewayAddress = envGateway
	}
	if envRedis := os.Getenv("REDIS_ADDR"); envRedis != "" {
		cfg.RedisAddress = envRedis
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "default-secret-change-in-production"
	}

	cfg.TokenExpiration = 24 * time.Hour

	cfg.WorkerInterval = time.Minute
	if envInterval := os.Getenv("WORKER_INTERVAL"); envInterval != "" {
		if d, err := time.ParseDuration(envInterval); err == nil && d > 0 {
			cfg.WorkerInterval = d
		}
	}

	return cfg
}

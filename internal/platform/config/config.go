package config

import (
	"os"
	"strings"
	"time"
)

// Backend selects where engine records live.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	Backend         Backend
	PostgresDSN     string
	RedisURL        string
	KafkaBrokers    []string
	KafkaTopic      string
	JWTSigningKey   string
	JWTIssuer       string
	OutboxInterval  time.Duration
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PAWLEDGER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	backend := Backend(os.Getenv("PAWLEDGER_BACKEND"))
	switch backend {
	case BackendPostgres, BackendRedis, BackendMemory:
	default:
		backend = BackendMemory
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default, override in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}
	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "pawledger"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:            addr,
		Backend:         backend,
		PostgresDSN:     os.Getenv("PAWLEDGER_POSTGRES_DSN"),
		RedisURL:        os.Getenv("PAWLEDGER_REDIS_URL"),
		KafkaBrokers:    brokers,
		KafkaTopic:      os.Getenv("KAFKA_TOPIC"),
		JWTSigningKey:   jwtSigningKey,
		JWTIssuer:       jwtIssuer,
		OutboxInterval:  5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string

	TokenSecret   string
	TokenTTL      time.Duration
	SecureCookies bool

	GatewayBaseURL       string
	GatewayKeyID         string
	GatewayKeySecret     string
	GatewayWebhookSecret string

	ObjectStoreAddress string
	ObjectStoreKey     string
	ObjectStoreBucket  string
	SignedURLTTL       time.Duration

	ReconcilePollInterval time.Duration
	WorkerPoolSize        int
	MaxSessionsBatch      int
	SessionMaxAge         time.Duration
	ShutdownTimeout       time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultTokenSecret       = "change-me-in-production"
	defaultTokenTTL          = 24 * time.Hour
	defaultSecureCookies     = true
	defaultObjectStoreBucket = "quotation-files"
	defaultSignedURLTTL      = 60 * time.Second
	defaultPollInterval      = 30 * time.Second
	defaultWorkerPoolSize    = 4
	defaultMaxSessionsBatch  = 32
	defaultSessionMaxAge     = 24 * time.Hour
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		TokenSecret:           getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenTTL:              getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		SecureCookies:         getBool(lookup, "SECURE_COOKIES", defaultSecureCookies),
		GatewayBaseURL:        getString(lookup, "GATEWAY_BASE_URL", ""),
		GatewayKeyID:          getString(lookup, "GATEWAY_KEY_ID", ""),
		GatewayKeySecret:      getString(lookup, "GATEWAY_KEY_SECRET", ""),
		GatewayWebhookSecret:  getString(lookup, "GATEWAY_WEBHOOK_SECRET", ""),
		ObjectStoreAddress:    getString(lookup, "OBJECT_STORE_ADDRESS", ""),
		ObjectStoreKey:        getString(lookup, "OBJECT_STORE_KEY", ""),
		ObjectStoreBucket:     getString(lookup, "OBJECT_STORE_BUCKET", defaultObjectStoreBucket),
		SignedURLTTL:          getDuration(lookup, "SIGNED_URL_TTL", defaultSignedURLTTL),
		ReconcilePollInterval: getDuration(lookup, "RECONCILE_POLL_INTERVAL", defaultPollInterval),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxSessionsBatch:      getInt(lookup, "RECONCILE_BATCH_SIZE", defaultMaxSessionsBatch),
		SessionMaxAge:         getDuration(lookup, "SESSION_MAX_AGE", defaultSessionMaxAge),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("quoteportal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.ReconcilePollInterval.String()
		signedURLTTLStr    = cfg.SignedURLTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayBaseURL, "gateway-url", cfg.GatewayBaseURL, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewayKeyID, "gateway-key-id", cfg.GatewayKeyID, "Payment gateway API key id")
	fs.StringVar(&cfg.ObjectStoreAddress, "object-store-url", cfg.ObjectStoreAddress, "Object store base URL")
	fs.StringVar(&cfg.ObjectStoreBucket, "object-store-bucket", cfg.ObjectStoreBucket, "Object store bucket for quotation files")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing session tokens")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "Mark session cookies Secure")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconciliation workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between reconciliation polls")
	fs.StringVar(&signedURLTTLStr, "signed-url-ttl", signedURLTTLStr, "Lifetime of issued signed URLs")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxSessionsBatch, "poll-batch", cfg.MaxSessionsBatch, "Maximum checkout sessions per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ReconcilePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.SignedURLTTL, err = time.ParseDuration(signedURLTTLStr); err != nil {
		return nil, fmt.Errorf("invalid signed url ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	for env, target := range map[string]*string{
		"TOKEN_SECRET_FILE":           &cfg.TokenSecret,
		"GATEWAY_KEY_SECRET_FILE":     &cfg.GatewayKeySecret,
		"GATEWAY_WEBHOOK_SECRET_FILE": &cfg.GatewayWebhookSecret,
		"OBJECT_STORE_KEY_FILE":       &cfg.ObjectStoreKey,
	} {
		if secretFile, ok := lookup(env); ok && secretFile != "" {
			content, err := os.ReadFile(secretFile)
			if err != nil {
				return nil, fmt.Errorf("read secret file %s: %w", env, err)
			}
			*target = string(content)
		}
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxSessionsBatch <= 0 {
		cfg.MaxSessionsBatch = defaultMaxSessionsBatch
	}

	if cfg.ReconcilePollInterval <= 0 {
		cfg.ReconcilePollInterval = defaultPollInterval
	}

	if cfg.SignedURLTTL <= 0 {
		cfg.SignedURLTTL = defaultSignedURLTTL
	}

	if cfg.SessionMaxAge <= 0 {
		cfg.SessionMaxAge = defaultSessionMaxAge
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayBaseURL == "" {
		return nil, fmt.Errorf("payment gateway base URL must be provided")
	}

	if cfg.GatewayKeyID == "" || cfg.GatewayKeySecret == "" {
		return nil, fmt.Errorf("payment gateway credentials must be provided")
	}

	if cfg.GatewayWebhookSecret == "" {
		return nil, fmt.Errorf("payment gateway webhook secret must be provided")
	}

	if cfg.ObjectStoreAddress == "" {
		return nil, fmt.Errorf("object store address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

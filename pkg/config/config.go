package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"securebook/pkg/client"
	"securebook/pkg/logger"
)

var (
	mongoURIRegex   = regexp.MustCompile(`^mongodb(\+srv)?://`)
	credentialRegex = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	cookieNameRegex = regexp.MustCompile("^[A-Za-z0-9!#$%&'*+.^_`|~-]+$")
)

type Config struct {
	Port     string
	LogLevel string

	AuthURL           string
	TimeZone          string
	Location          *time.Location
	SessionCookieName string

	DraftStore string
	DraftTTL   time.Duration

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Submitter         string
	BookingBackendURL string
	SubmitTimeout     time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the environment, validates it and exits on invalid settings.
func Load(serviceName string) *Config {
	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		AddSource: true,
		Service:   serviceName,
	})
	cfg.Client = client.NewClient()

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv reads every setting with its default. It neither validates nor
// builds the logger.
func FromEnv() *Config {
	return &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		AuthURL:           getEnvStr(EnvAuthURL, DefaultAuthURL),
		TimeZone:          getEnvStr(EnvTimeZone, DefaultTimeZone),
		SessionCookieName: getEnvStr(EnvSessionCookieName, DefaultSessionCookieName),

		DraftStore: strings.ToLower(getEnvStr(EnvDraftStore, DefaultDraftStore)),
		DraftTTL:   getEnvDuration(EnvDraftTTL, DefaultDraftTTL),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Submitter:         strings.ToLower(getEnvStr(EnvSubmitter, DefaultSubmitter)),
		BookingBackendURL: getEnvStr(EnvBookingBackendURL, ""),
		SubmitTimeout:     getEnvDuration(EnvSubmitTimeout, DefaultSubmitTimeout),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}
}

// Validate checks every setting and resolves Location. All problems are
// reported together.
func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.AuthURL == "" {
		errors = append(errors, "AuthURL cannot be empty")
	} else if u, err := url.Parse(cfg.AuthURL); err != nil || (!u.IsAbs() && !strings.HasPrefix(cfg.AuthURL, "/")) {
		errors = append(errors, fmt.Sprintf("AuthURL must be an absolute URL or a path starting with '/', got: %s", cfg.AuthURL))
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		errors = append(errors, fmt.Sprintf("TimeZone must be an IANA zone name, got: %s", cfg.TimeZone))
	} else {
		cfg.Location = loc
	}

	if !cookieNameRegex.MatchString(cfg.SessionCookieName) {
		errors = append(errors, fmt.Sprintf("SessionCookieName must be a valid cookie name, got: %q", cfg.SessionCookieName))
	}

	switch cfg.DraftStore {
	case DraftStoreMemory:
	case DraftStoreMongo:
		if !mongoURIRegex.MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	default:
		errors = append(errors, fmt.Sprintf("DraftStore must be one of [%s, %s], got: %s", DraftStoreMemory, DraftStoreMongo, cfg.DraftStore))
	}
	if cfg.DraftTTL <= 0 {
		errors = append(errors, fmt.Sprintf("DraftTTL must be positive, got: %s", cfg.DraftTTL))
	}

	switch cfg.Submitter {
	case SubmitterLog, SubmitterKafka:
	case SubmitterHTTP:
		if u, err := url.Parse(cfg.BookingBackendURL); err != nil || !u.IsAbs() || u.Host == "" {
			errors = append(errors, fmt.Sprintf("BookingBackendURL must be an absolute URL when Submitter is http, got: %q", cfg.BookingBackendURL))
		}
	default:
		errors = append(errors, fmt.Sprintf("Submitter must be one of [%s, %s, %s], got: %s", SubmitterLog, SubmitterHTTP, SubmitterKafka, cfg.Submitter))
	}
	if cfg.SubmitTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("SubmitTimeout must be positive, got: %s", cfg.SubmitTimeout))
	}

	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.RequestTimeout > 0 && cfg.SubmitTimeout > cfg.RequestTimeout {
		errors = append(errors, fmt.Sprintf("SubmitTimeout (%s) must not exceed RequestTimeout (%s)", cfg.SubmitTimeout, cfg.RequestTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"auth_url", cfg.AuthURL,
		"time_zone", cfg.TimeZone,
		"session_cookie_name", cfg.SessionCookieName,
		"draft_store", cfg.DraftStore,
		"draft_ttl", cfg.DraftTTL,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"submitter", cfg.Submitter,
		"booking_backend_url", cfg.BookingBackendURL,
		"submit_timeout", cfg.SubmitTimeout,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

// Today is the current calendar day in the configured zone.
func (cfg *Config) Today() time.Time {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func redactMongoURI(uri string) string {
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

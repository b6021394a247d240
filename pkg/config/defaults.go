package config

import "time"

const (
	DraftStoreMemory = "memory"
	DraftStoreMongo  = "mongo"

	SubmitterLog   = "log"
	SubmitterHTTP  = "http"
	SubmitterKafka = "kafka"
)

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultAuthURL           = "/auth"
	DefaultTimeZone          = "Asia/Kolkata"
	DefaultSessionCookieName = "securebook_session"

	DefaultDraftStore = DraftStoreMemory
	DefaultDraftTTL   = 24 * time.Hour

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "securebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultSubmitter     = SubmitterLog
	DefaultSubmitTimeout = 10 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

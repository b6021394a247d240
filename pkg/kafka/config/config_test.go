package kafka_config

import (
	"strings"
	"testing"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != "localhost:9092" {
		t.Errorf("unexpected brokers %v", cfg.Brokers)
	}
	if cfg.BookingTopic != DefaultBookingTopic || cfg.ResultsTopic != DefaultResultsTopic {
		t.Errorf("unexpected topics %s, %s", cfg.BookingTopic, cfg.ResultsTopic)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestFromEnv_Brokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "kafka-1:9092, kafka-2:9092 ")

	cfg := FromEnv()
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "kafka-2:9092" {
		t.Errorf("expected trimmed brokers, got %v", cfg.Brokers)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty broker",
			mutate:  func(c *Config) { c.Brokers = []string{"kafka:9092", ""} },
			wantErr: "Broker 1 cannot be empty",
		},
		{
			name:    "same topics",
			mutate:  func(c *Config) { c.ResultsTopic = c.BookingTopic },
			wantErr: "BookingTopic and ResultsTopic must differ",
		},
		{
			name:    "no consumer group",
			mutate:  func(c *Config) { c.ConsumerGroup = "" },
			wantErr: "ConsumerGroup cannot be empty",
		},
		{
			name:    "unknown compression",
			mutate:  func(c *Config) { c.ProducerCompression = "brotli" },
			wantErr: "ProducerCompression must be one of",
		},
		{
			name:    "bad acks",
			mutate:  func(c *Config) { c.ProducerRequireAcks = 2 },
			wantErr: "ProducerRequireAcks must be -1, 0, or 1",
		},
		{
			name:    "session shorter than heartbeat",
			mutate:  func(c *Config) { c.ConsumerSessionTimeout = c.ConsumerHeartbeatInterval },
			wantErr: "must exceed ConsumerHeartbeatInterval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromEnv()
			tt.mutate(cfg)

			_, err := cfg, cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

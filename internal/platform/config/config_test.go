package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.Equal(t, "@hourly", cfg.ScanCronSpec)
	assert.Equal(t, "notifications.audit", cfg.KafkaAuditTopic)
	assert.Zero(t, cfg.ScanIntervalHours, "scanner disabled unless configured")
	assert.False(t, cfg.NotificationsDisabled)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("NFTPAWN_ADDR", ":9999")
	t.Setenv("DATABASE_URL", "postgres://localhost/nftpawn")
	t.Setenv("SUBGRAPH_URL", "https://api.example.com/subgraph")
	t.Setenv("NOTIFICATIONS_FREQUENCY_HOURS", "6")
	t.Setenv("NOTIFICATIONS_KILLSWITCH", "on")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "postgres://localhost/nftpawn", cfg.PostgresURL)
	assert.Equal(t, "https://api.example.com/subgraph", cfg.SubgraphURL)
	assert.Equal(t, 6, cfg.ScanIntervalHours)
	assert.True(t, cfg.NotificationsDisabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("NOTIFICATIONS_FREQUENCY_HOURS", "six")

	cfg := FromEnv()
	assert.Zero(t, cfg.ScanIntervalHours)
}

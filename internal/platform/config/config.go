package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the service reads from the environment so main
// stays lean. Zero values mean "not configured" and the wiring in main decides
// which fallback (memory store, disabled channel) to use.
type Config struct {
	Addr string

	// PostgresURL backs the subscription and watermark stores. Empty falls
	// back to in-memory stores (dev/tests only).
	PostgresURL string

	Redis RedisConfig

	// SubgraphURL points at the nft-backed-loans subgraph; the indexer source
	// and the scanner both query it.
	SubgraphURL string

	// ChainRPCURL is the JSON-RPC endpoint of the authoritative node, used
	// only when the subgraph has not indexed a loan yet.
	ChainRPCURL string
	Contracts   ContractDirectory

	SMTP       SMTPConfig
	WebhookURL string

	// ScanIntervalHours is the liquidation scan cadence. Zero disables the
	// scanner entirely (kill switch semantics, watermark untouched).
	ScanIntervalHours     int
	NotificationsDisabled bool
	ScanCronSpec          string
	ScanTriggerSecret     string

	KafkaBrokers    []string
	KafkaAuditTopic string
}

// ContractDirectory holds the protocol contract addresses the node source
// reads against.
type ContractDirectory struct {
	LoanFacilitator string
	LendTicket      string
	BorrowTicket    string
}

// RedisConfig configures the optional token-metadata cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SMTPConfig configures the email channel. An empty host disables it.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:        envOr("NFTPAWN_ADDR", ":8080"),
		PostgresURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		SubgraphURL: os.Getenv("SUBGRAPH_URL"),
		ChainRPCURL: os.Getenv("CHAIN_RPC_URL"),
		Contracts: ContractDirectory{
			LoanFacilitator: os.Getenv("CONTRACT_LOAN_FACILITATOR"),
			LendTicket:      os.Getenv("CONTRACT_LEND_TICKET"),
			BorrowTicket:    os.Getenv("CONTRACT_BORROW_TICKET"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envOr("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			Sender:   os.Getenv("SMTP_SENDER"),
		},
		WebhookURL:            os.Getenv("CHAT_WEBHOOK_URL"),
		ScanIntervalHours:     envInt("NOTIFICATIONS_FREQUENCY_HOURS", 0),
		NotificationsDisabled: os.Getenv("NOTIFICATIONS_KILLSWITCH") != "",
		ScanCronSpec:          envOr("SCAN_CRON_SPEC", "@hourly"),
		ScanTriggerSecret:     os.Getenv("SCAN_TRIGGER_SECRET"),
		KafkaAuditTopic:       envOr("KAFKA_AUDIT_TOPIC", "notifications.audit"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

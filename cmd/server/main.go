package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"nftpawn/internal/audit"
	"nftpawn/internal/loans"
	"nftpawn/internal/loans/cache"
	"nftpawn/internal/loans/node"
	"nftpawn/internal/loans/subgraph"
	"nftpawn/internal/notifications"
	"nftpawn/internal/notifications/channels"
	"nftpawn/internal/platform/config"
	"nftpawn/internal/platform/httpserver"
	"nftpawn/internal/platform/logger"
	"nftpawn/internal/platform/metrics"
	platformredis "nftpawn/internal/platform/redis"
	httptransport "nftpawn/internal/transport/http"
)

const metadataCacheTTL = 24 * time.Hour

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	if cfg.SubgraphURL == "" {
		log.Error("SUBGRAPH_URL is required")
		os.Exit(1)
	}
	indexer := subgraph.New(cfg.SubgraphURL)

	// Stores: Postgres when configured, memory otherwise.
	var (
		subscriptions notifications.SubscriptionStore = notifications.NewInMemorySubscriptionStore()
		watermarks    notifications.WatermarkStore    = notifications.NewInMemoryWatermarkStore()
	)
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		if err := notifications.Migrate(context.Background(), db); err != nil {
			log.Error("migrate postgres", "error", err)
			os.Exit(1)
		}
		subscriptions = notifications.NewPostgresSubscriptionStore(db)
		watermarks = notifications.NewPostgresWatermarkStore(db)
	} else {
		log.Warn("no DATABASE_URL configured, using in-memory stores")
	}

	// Token-metadata cache: Redis when configured, bounded memory otherwise.
	var meta cache.Store = cache.NewMemory(1024)
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		meta = cache.NewRedis(redisClient.Client, metadataCacheTTL)
		defer redisClient.Close()
	}

	// Resolution chain: subgraph first, node fallback when configured.
	sources := []loans.Source{indexer}
	if cfg.ChainRPCURL != "" {
		eth, err := ethclient.Dial(cfg.ChainRPCURL)
		if err != nil {
			log.Error("dial chain rpc", "error", err)
			os.Exit(1)
		}
		nodeSource, err := node.New(eth, node.Directory{
			LoanFacilitator: common.HexToAddress(cfg.Contracts.LoanFacilitator),
			LendTicket:      common.HexToAddress(cfg.Contracts.LendTicket),
			BorrowTicket:    common.HexToAddress(cfg.Contracts.BorrowTicket),
		}, meta)
		if err != nil {
			log.Error("build node source", "error", err)
			os.Exit(1)
		}
		sources = append(sources, nodeSource)
	} else {
		log.Warn("no CHAIN_RPC_URL configured, resolving from subgraph only")
	}
	resolver, err := loans.NewResolver(log, m, sources...)
	if err != nil {
		log.Error("build resolver", "error", err)
		os.Exit(1)
	}

	// Audit trail: Kafka when configured, memory otherwise. A queue plus a
	// drain worker sits in front of the broker so a slow broker never slows a
	// notification send.
	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()
	var sink audit.Sink = audit.NewInMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()

		queue := audit.NewQueue(1024)
		go func() {
			_ = audit.NewWorker(kafkaSink, queue.Inbox(), log).Run(rootCtx)
		}()
		sink = queue
	}
	auditPub := audit.NewPublisher(sink)

	var senders []notifications.Sender
	if cfg.SMTP.Host != "" {
		senders = append(senders, channels.NewEmailSender(cfg.SMTP, log))
	}
	senders = append(senders, channels.NewWebhookSender(log))

	dispatcher := notifications.NewDispatcher(subscriptions, indexer, senders, auditPub, log, m)
	scanner := notifications.NewScanner(
		watermarks,
		indexer,
		dispatcher,
		int64(cfg.ScanIntervalHours)*3600,
		cfg.NotificationsDisabled,
		log,
		m,
	)

	// In-process schedule. cron never overlaps runs of the same job, which is
	// the single-flight guarantee the watermark needs.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ScanCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := scanner.Run(ctx, time.Now().Unix()); err != nil {
			log.Error("scheduled liquidation scan failed", "error", err)
		}
	}); err != nil {
		log.Error("bad scan cron spec", "spec", cfg.ScanCronSpec, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := httptransport.NewHandler(log, m, resolver, indexer, dispatcher, scanner, cfg.ScanTriggerSecret)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	log.Info("starting nftpawn notifier", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

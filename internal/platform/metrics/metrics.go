package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	ResolverHits       *prometheus.CounterVec
	ResolverMisses     prometheus.Counter
	NotificationsSent  *prometheus.CounterVec
	NotificationsError *prometheus.CounterVec
	ScansRun           prometheus.Counter
	ScansFailed        prometheus.Counter
	IngressEnvelopes   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ResolverHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nftpawn_resolver_hits_total",
			Help: "Loan resolutions by serving source (subgraph or node)",
		}, []string{"source"}),
		ResolverMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nftpawn_resolver_misses_total",
			Help: "Loan resolutions that ended in not-found",
		}),
		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nftpawn_notifications_sent_total",
			Help: "Notifications delivered, by channel",
		}, []string{"channel"}),
		NotificationsError: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nftpawn_notifications_failed_total",
			Help: "Notification sends that failed, by channel",
		}, []string{"channel"}),
		ScansRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nftpawn_liquidation_scans_total",
			Help: "Liquidation scans that completed and advanced the watermark",
		}),
		ScansFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nftpawn_liquidation_scans_failed_total",
			Help: "Liquidation scans aborted without touching the watermark",
		}),
		IngressEnvelopes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nftpawn_ingress_envelopes_total",
			Help: "Inbound event envelopes by outcome (dispatched, handshake, dropped, malformed, failed)",
		}, []string{"outcome"}),
	}
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	KafkaProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kafka",
			Name:      "message_processing_duration_seconds",
			Help:      "Order message processing duration in seconds, retries included",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"topic", "consumer_group", "status"},
	)

	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka",
			Name:      "messages_processed_total",
			Help:      "Order messages handled, by final status",
		},
		[]string{"topic", "consumer_group", "status"},
	)

	KafkaRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka",
			Name:      "retries_total",
			Help:      "Handler attempts repeated after a transient failure",
		},
		[]string{"topic"},
	)

	KafkaDeadLetteredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kafka",
			Name:      "dead_lettered_total",
			Help:      "Messages written to a dead letter topic",
		},
		[]string{"topic"},
	)

	KafkaConsumerLag = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "kafka",
			Name:      "consumer_lag",
			Help:      "Messages behind the partition high watermark at last fetch",
		},
		[]string{"topic", "partition"},
	)
)

func init() {
	Registry.MustRegister(
		KafkaProcessingDuration,
		KafkaMessagesProcessed,
		KafkaRetriesTotal,
		KafkaDeadLetteredTotal,
		KafkaConsumerLag,
	)
}

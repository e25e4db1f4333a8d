package health

import (
	"context"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaChecker checks that a broker is reachable and reports the state of
// the orders topic.
type KafkaChecker struct {
	brokers []string
	topic   string
}

func NewKafkaChecker(brokers []string, topic string) *KafkaChecker {
	return &KafkaChecker{brokers: brokers, topic: topic}
}

func (c *KafkaChecker) Name() string {
	return "kafka"
}

// Check succeeds on the first broker that answers a metadata request.
// A topic that does not exist yet is not an error: the publisher creates
// it with the first webhook.
func (c *KafkaChecker) Check(ctx context.Context) Result {
	var lastErr error
	for _, broker := range c.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}

		partitions, err := conn.ReadPartitions(c.topic)
		_ = conn.Close()

		switch {
		case errors.Is(err, kafka.UnknownTopicOrPartition):
			return Result{Status: StatusUp, Message: fmt.Sprintf("topic %s not created yet", c.topic)}
		case err != nil:
			lastErr = err
		default:
			return Result{Status: StatusUp, Message: fmt.Sprintf("topic %s: %d partitions", c.topic, len(partitions))}
		}
	}

	if lastErr == nil {
		return Result{Status: StatusDown, Message: "no brokers configured"}
	}
	return Result{Status: StatusDown, Message: lastErr.Error()}
}

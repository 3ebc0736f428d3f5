// Package kafka holds broker configuration shared by the producer and health checks.
package kafka

import (
	"strings"
	"time"
)

// ProducerConfig holds configuration for the Kafka producer.
type ProducerConfig struct {
	Brokers         string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
}

// DefaultProducerConfig returns the production defaults. Brokers stay empty until configured.
func DefaultProducerConfig() ProducerConfig {
	return ProducerConfig{
		Acks:            "all",
		Retries:         3,
		DeliveryTimeout: 30 * time.Second,
	}
}

// Enabled reports whether any broker is configured.
func (c ProducerConfig) Enabled() bool {
	return len(c.BrokerList()) > 0
}

// BrokerList splits the comma separated broker string, dropping blanks.
func (c ProducerConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrokerList(t *testing.T) {
	cfg := DefaultProducerConfig()
	assert.False(t, cfg.Enabled())
	assert.Empty(t, cfg.BrokerList())

	cfg.Brokers = " a:9092, ,b:9092 "
	assert.True(t, cfg.Enabled())
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.BrokerList())
	assert.Equal(t, "all", cfg.Acks)
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLookup(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveLookup("mock", "nin", true, "", 0.01)
	m.ObserveLookup("mono", "phone", false, "logic", 0.02)
	m.ObserveLookup("mono", "phone", false, "logic", 0.02)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("mock", "nin", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupsTotal.WithLabelValues("mono", "phone", "failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LookupFailuresTotal.WithLabelValues("mono", "logic")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.LookupDurationSeconds))
}

func TestCacheCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordCacheMiss()
	m.RecordEventPublishFailure()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHitsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMissesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventPublishFailuresTotal))
}

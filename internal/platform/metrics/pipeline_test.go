package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPipeline_ObserveSnapshot(t *testing.T) {
	t.Parallel()

	p := NewPipeline()
	p.ObserveSnapshot("csv", 20*time.Millisecond, 42, map[string]int{"invalid_location": 3, "unapproved_team": 0}, nil)
	p.ObserveSnapshot("csv", time.Millisecond, 0, nil, errors.New("boom"))

	require.Equal(t, 1.0, testutil.ToFloat64(p.snapshots.WithLabelValues("csv", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(p.snapshots.WithLabelValues("csv", "error")))
	require.Equal(t, 42.0, testutil.ToFloat64(p.eventsKept.WithLabelValues("csv")))
	require.Equal(t, 3.0, testutil.ToFloat64(p.rowsDropped.WithLabelValues("csv", "invalid_location")))
}

func TestPipeline_CacheLookups(t *testing.T) {
	t.Parallel()

	p := NewPipeline()
	p.CacheHit("k")
	p.CacheHit("k")
	p.CacheMiss("k")

	require.Equal(t, 2.0, testutil.ToFloat64(p.cacheLookups.WithLabelValues("hit")))
	require.Equal(t, 1.0, testutil.ToFloat64(p.cacheLookups.WithLabelValues("miss")))
}

func TestPipeline_NilIsNoop(t *testing.T) {
	t.Parallel()

	var p *Pipeline
	p.CacheHit("k")
	p.ObserveSnapshot("csv", time.Second, 1, nil, nil)
	require.NotNil(t, p.Handler())
}

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpstream(t *testing.T) {
	okBefore := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("weather", "ok"))
	errBefore := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("weather", "error"))

	ObserveUpstream("weather", nil, 20*time.Millisecond)
	ObserveUpstream("weather", errors.New("boom"), 5*time.Millisecond)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("weather", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("weather", "error")))
}

package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.Recommendations.WithLabelValues("ai").Inc()
	a.HazardsActive.WithLabelValues("flood").Set(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.Recommendations.WithLabelValues("ai")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Recommendations.WithLabelValues("ai")))
	assert.Equal(t, 3.0, testutil.ToFloat64(a.HazardsActive.WithLabelValues("flood")))
}

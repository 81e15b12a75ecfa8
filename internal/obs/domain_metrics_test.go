package obs_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/kitabghor/storefront-api/internal/obs"
)

func TestDomainMetricsObserve(t *testing.T) {
	registry := prometheus.NewRegistry()
	obs.MustRegisterDomainMetrics("kitabghor", registry)

	obs.ObserveShippingQuote("free")
	obs.ObserveShippingQuote("free")
	obs.ObserveCouponEvaluation("expired")
	obs.ObserveStockAdjustment("initial stock")
	obs.ObserveLowStockAlert()

	require.Equal(t, float64(2), testutil.ToFloat64(obs.ShippingQuotesTotal.WithLabelValues("free")))
	require.Equal(t, float64(1), testutil.ToFloat64(obs.CouponEvaluationsTotal.WithLabelValues("expired")))
	require.Equal(t, float64(1), testutil.ToFloat64(obs.StockAdjustmentsTotal.WithLabelValues("initial stock")))
	require.Equal(t, float64(1), testutil.ToFloat64(obs.LowStockAlertsTotal))
}
